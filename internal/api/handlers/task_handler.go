package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskflow-dev/taskflow/internal/api/dto"
	"github.com/taskflow-dev/taskflow/internal/domain/assignment"
	"github.com/taskflow-dev/taskflow/internal/domain/comment"
	"github.com/taskflow-dev/taskflow/internal/domain/project"
	"github.com/taskflow-dev/taskflow/internal/domain/task"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

// TaskHandler handles HTTP requests for task operations
type TaskHandler struct {
	service        task.Service
	assignmentSvc  assignment.Service
	commentService comment.Service
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(service task.Service, assignmentSvc assignment.Service, commentService comment.Service) *TaskHandler {
	return &TaskHandler{
		service:        service,
		assignmentSvc:  assignmentSvc,
		commentService: commentService,
	}
}

func taskErrorStatus(err error) int {
	switch {
	case errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, task.ErrInvalidInput),
		errors.Is(err, task.ErrInvalidStatus),
		errors.Is(err, task.ErrInvalidPriority),
		errors.Is(err, task.ErrCompletedAfterDue):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateTask godoc
// @Summary Create a new task
// @Description Create a new task inside an existing project
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse "Task created successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Project or assignee not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	validatedModel, exists := c.Get("validated_model")

	if exists {
		if validatedPtr, ok := validatedModel.(*dto.CreateTaskRequest); ok {
			req = *validatedPtr
		} else {
			log.Errorf("Invalid model type: %T, expected *dto.CreateTaskRequest", validatedModel)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	created, err := h.service.CreateTask(c.Request.Context(), task.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      task.TaskStatus(req.Status),
		Priority:    task.TaskPriority(req.Priority),
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	})
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": TaskToResponse(created)})
}

// GetTask godoc
// @Summary Get a task by ID
// @Description Get a task with its project, assignee, tags, assignments and comments
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID" format(uuid)
// @Success 200 {object} dto.TaskDetailResponse "Task details"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	tsk, err := h.service.GetTaskDetails(c.Request.Context(), id)
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	assignments, err := h.assignmentSvc.GetTaskAssignments(c.Request.Context(), id)
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	comments, err := h.commentService.GetTaskComments(c.Request.Context(), id)
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToDetailResponse(tsk, assignments, comments)})
}

func taskListResponse(tasks []task.Task, total int64, page, pageSize int) dto.TaskListResponse {
	return dto.TaskListResponse{
		Tasks:      TasksToResponse(tasks),
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}
}

// ListTasks godoc
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param page query int false "Page number (0-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.TaskListResponse "Paginated tasks"
// @Router /api/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "100"))

	tasks, total, err := h.service.ListTasks(c.Request.Context(), task.TaskFilter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taskListResponse(tasks, total, page, pageSize)})
}

// FilterTasks godoc
// @Summary Filter tasks
// @Description Filter tasks by project, status, priority and assignee
// @Tags tasks
// @Produce json
// @Param project_id query string false "Project ID" format(uuid)
// @Param status query string false "Task status"
// @Param priority query string false "Task priority"
// @Param assigned_to query string false "Assignee ID" format(uuid)
// @Param page query int false "Page number (0-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.TaskListResponse "Matching tasks"
// @Failure 400 {object} map[string]string "Invalid filter values"
// @Router /api/tasks/filter [post]
func (h *TaskHandler) FilterTasks(c *gin.Context) {
	var req dto.TaskFilterRequest
	if validatedQuery, exists := c.Get("validated_query"); exists {
		if validatedPtr, ok := validatedQuery.(*dto.TaskFilterRequest); ok {
			req = *validatedPtr
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := task.TaskFilter{Page: req.Page, PageSize: req.PageSize}
	if req.ProjectID != "" {
		id, err := uuid.Parse(req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}
		filter.ProjectID = &id
	}
	if req.AssignedTo != "" {
		id, err := uuid.Parse(req.AssignedTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assigned_to"})
			return
		}
		filter.AssignedTo = &id
	}
	if req.Status != "" {
		status := task.TaskStatus(req.Status)
		filter.Status = &status
	}
	if req.Priority != "" {
		priority := task.TaskPriority(req.Priority)
		filter.Priority = &priority
	}

	tasks, total, err := h.service.ListTasks(c.Request.Context(), filter)
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taskListResponse(tasks, total, req.Page, req.PageSize)})
}

// GetProjectTasks godoc
// @Summary List tasks in a project
// @Tags tasks
// @Produce json
// @Param project_id path string true "Project ID" format(uuid)
// @Success 200 {object} dto.TaskListResponse "Project tasks"
// @Router /api/tasks/project/{project_id} [get]
func (h *TaskHandler) GetProjectTasks(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	tasks, total, err := h.service.GetTasksByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taskListResponse(tasks, total, 0, len(tasks))})
}

// GetAssigneeTasks godoc
// @Summary List tasks assigned to a user
// @Tags tasks
// @Produce json
// @Param user_id path string true "User ID" format(uuid)
// @Success 200 {object} dto.TaskListResponse "Assigned tasks"
// @Router /api/tasks/assignee/{user_id} [get]
func (h *TaskHandler) GetAssigneeTasks(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	tasks, total, err := h.service.GetTasksByAssignee(c.Request.Context(), userID)
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taskListResponse(tasks, total, 0, len(tasks))})
}

// GetTasksByStatus godoc
// @Summary List tasks with a given status
// @Tags tasks
// @Produce json
// @Param status path string true "Task status" Enums(pending, in_progress, completed, cancelled, on_hold)
// @Success 200 {object} dto.TaskListResponse "Matching tasks"
// @Failure 400 {object} map[string]string "Invalid status"
// @Router /api/tasks/status/{status} [get]
func (h *TaskHandler) GetTasksByStatus(c *gin.Context) {
	status := task.TaskStatus(c.Param("status"))

	tasks, total, err := h.service.GetTasksByStatus(c.Request.Context(), status)
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taskListResponse(tasks, total, 0, len(tasks))})
}

// GetTasksByPriority godoc
// @Summary List tasks with a given priority
// @Tags tasks
// @Produce json
// @Param priority path string true "Task priority" Enums(low, medium, high, critical)
// @Success 200 {object} dto.TaskListResponse "Matching tasks"
// @Failure 400 {object} map[string]string "Invalid priority"
// @Router /api/tasks/priority/{priority} [get]
func (h *TaskHandler) GetTasksByPriority(c *gin.Context) {
	priority := task.TaskPriority(c.Param("priority"))

	tasks, total, err := h.service.GetTasksByPriority(c.Request.Context(), priority)
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taskListResponse(tasks, total, 0, len(tasks))})
}

// GetOverdueTasks godoc
// @Summary List overdue tasks
// @Description List open tasks whose due date has passed
// @Tags tasks
// @Produce json
// @Success 200 {object} dto.TaskListResponse "Overdue tasks"
// @Router /api/tasks/list/overdue [get]
func (h *TaskHandler) GetOverdueTasks(c *gin.Context) {
	tasks, err := h.service.GetOverdueTasks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taskListResponse(tasks, int64(len(tasks)), 0, len(tasks))})
}

// GetUpcomingTasks godoc
// @Summary List upcoming tasks
// @Description List open tasks due within the next N days (default 7)
// @Tags tasks
// @Produce json
// @Param days query int false "Window in days" default(7)
// @Success 200 {object} dto.TaskListResponse "Upcoming tasks"
// @Router /api/tasks/list/upcoming [get]
func (h *TaskHandler) GetUpcomingTasks(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	tasks, err := h.service.GetUpcomingTasks(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taskListResponse(tasks, int64(len(tasks)), 0, len(tasks))})
}

// UpdateTask godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID" format(uuid)
// @Param task body dto.UpdateTaskRequest true "Task update request"
// @Success 200 {object} dto.TaskResponse "Updated task"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.UpdateTaskRequest
	validatedModel, exists := c.Get("validated_model")
	if exists {
		if validatedPtr, ok := validatedModel.(*dto.UpdateTaskRequest); ok {
			req = *validatedPtr
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	input := task.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status := task.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := task.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	updated, err := h.service.UpdateTask(c.Request.Context(), id, input)
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(updated)})
}

// CompleteTask godoc
// @Summary Mark a task as completed
// @Description Set the task status to completed and stamp the completion time
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID" format(uuid)
// @Success 200 {object} dto.TaskResponse "Completed task"
// @Failure 400 {object} map[string]string "Completion would violate the due date bound"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /api/tasks/{id}/complete [patch]
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	completed, err := h.service.CompleteTask(c.Request.Context(), id)
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(completed)})
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID" format(uuid)
// @Success 204 "Task deleted"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), id); err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
