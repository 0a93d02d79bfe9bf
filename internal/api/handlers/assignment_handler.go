package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskflow-dev/taskflow/internal/api/dto"
	"github.com/taskflow-dev/taskflow/internal/domain/assignment"
	"github.com/taskflow-dev/taskflow/internal/domain/task"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

// AssignmentHandler handles HTTP requests for task assignment operations
type AssignmentHandler struct {
	service assignment.Service
}

// NewAssignmentHandler creates a new AssignmentHandler instance
func NewAssignmentHandler(service assignment.Service) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

func assignmentErrorStatus(err error) int {
	switch {
	case errors.Is(err, assignment.ErrAssignmentNotFound),
		errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, assignment.ErrAlreadyAssigned):
		return http.StatusConflict
	case errors.Is(err, assignment.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateAssignment godoc
// @Summary Assign a user to a task
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignment body dto.CreateAssignmentRequest true "Assignment creation request"
// @Success 201 {object} dto.AssignmentResponse "Assignment created"
// @Failure 404 {object} map[string]string "Task or user not found"
// @Failure 409 {object} map[string]string "User already assigned to task"
// @Router /api/assignments [post]
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	validatedModel, exists := c.Get("validated_model")

	if exists {
		if validatedPtr, ok := validatedModel.(*dto.CreateAssignmentRequest); ok {
			req = *validatedPtr
		} else {
			log.Errorf("Invalid model type: %T, expected *dto.CreateAssignmentRequest", validatedModel)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	created, err := h.service.AssignUser(c.Request.Context(), assignment.AssignInput{
		TaskID:         req.TaskID,
		UserID:         req.UserID,
		AssignedBy:     req.AssignedBy,
		HoursAllocated: req.HoursAllocated,
	})
	if err != nil {
		c.JSON(assignmentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": AssignmentToResponse(created)})
}

// GetTaskAssignments godoc
// @Summary List assignments for a task
// @Tags assignments
// @Produce json
// @Param task_id path string true "Task ID" format(uuid)
// @Success 200 {object} []dto.AssignmentResponse "Task assignments"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /api/assignments/task/{task_id} [get]
func (h *AssignmentHandler) GetTaskAssignments(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	assignments, err := h.service.GetTaskAssignments(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(assignmentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": AssignmentsToResponse(assignments)})
}

// GetUserAssignments godoc
// @Summary List assignments for a user
// @Tags assignments
// @Produce json
// @Param user_id path string true "User ID" format(uuid)
// @Success 200 {object} []dto.AssignmentResponse "User assignments"
// @Failure 404 {object} map[string]string "User not found"
// @Router /api/assignments/user/{user_id} [get]
func (h *AssignmentHandler) GetUserAssignments(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	assignments, err := h.service.GetUserAssignments(c.Request.Context(), userID)
	if err != nil {
		c.JSON(assignmentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": AssignmentsToResponse(assignments)})
}

// RemoveAssignment godoc
// @Summary Remove a user from a task
// @Tags assignments
// @Produce json
// @Param task_id path string true "Task ID" format(uuid)
// @Param user_id path string true "User ID" format(uuid)
// @Success 204 "Assignment removed"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Router /api/assignments/task/{task_id}/user/{user_id} [delete]
func (h *AssignmentHandler) RemoveAssignment(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	if err := h.service.RemoveAssignment(c.Request.Context(), taskID, userID); err != nil {
		c.JSON(assignmentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
