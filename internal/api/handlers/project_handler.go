package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskflow-dev/taskflow/internal/api/dto"
	"github.com/taskflow-dev/taskflow/internal/domain/project"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	service project.Service
}

// NewProjectHandler creates a new ProjectHandler instance
func NewProjectHandler(service project.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func projectErrorStatus(err error) int {
	switch {
	case errors.Is(err, project.ErrProjectNotFound), errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, project.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateProject godoc
// @Summary Create a new project
// @Description Create a project owned by an existing user
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project creation request"
// @Success 201 {object} dto.ProjectResponse "Project created successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Owner not found"
// @Router /api/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	validatedModel, exists := c.Get("validated_model")

	if exists {
		if validatedPtr, ok := validatedModel.(*dto.CreateProjectRequest); ok {
			req = *validatedPtr
		} else {
			log.Errorf("Invalid model type: %T, expected *dto.CreateProjectRequest", validatedModel)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	created, err := h.service.CreateProject(c.Request.Context(), project.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		c.JSON(projectErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": ProjectToResponse(created)})
}

// GetProject godoc
// @Summary Get a project by ID
// @Description Get a project together with its owner
// @Tags projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} dto.ProjectResponse "Project details"
// @Failure 404 {object} map[string]string "Project not found"
// @Router /api/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	proj, err := h.service.GetProject(c.Request.Context(), id)
	if err != nil {
		c.JSON(projectErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ProjectToResponse(proj)})
}

// GetProjectStats godoc
// @Summary Get project task statistics
// @Tags projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} dto.ProjectStatsResponse "Project with task count"
// @Failure 404 {object} map[string]string "Project not found"
// @Router /api/projects/{id}/stats [get]
func (h *ProjectHandler) GetProjectStats(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	details, err := h.service.GetProjectDetails(c.Request.Context(), id)
	if err != nil {
		c.JSON(projectErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	resp := dto.ProjectStatsResponse{
		ProjectResponse: *ProjectToResponse(&details.Project),
		TaskCount:       details.TaskCount,
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *ProjectHandler) listProjects(c *gin.Context, activeOnly bool) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "100"))
	filter := project.ProjectFilter{Page: page, PageSize: pageSize}

	var (
		projects []project.Project
		total    int64
		err      error
	)
	if activeOnly {
		projects, total, err = h.service.ListActiveProjects(c.Request.Context(), filter)
	} else {
		projects, total, err = h.service.ListProjects(c.Request.Context(), filter)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := dto.ProjectListResponse{
		Projects:   make([]dto.ProjectResponse, 0, len(projects)),
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}
	for i := range projects {
		resp.Projects = append(resp.Projects, *ProjectToResponse(&projects[i]))
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ListProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Param page query int false "Page number (0-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.ProjectListResponse "Paginated projects"
// @Router /api/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	h.listProjects(c, false)
}

// ListActiveProjects godoc
// @Summary List active projects
// @Tags projects
// @Produce json
// @Success 200 {object} dto.ProjectListResponse "Active projects"
// @Router /api/projects/list/active [get]
func (h *ProjectHandler) ListActiveProjects(c *gin.Context) {
	h.listProjects(c, true)
}

// GetProjectsByOwner godoc
// @Summary List projects owned by a user
// @Tags projects
// @Produce json
// @Param owner_id path string true "Owner ID" format(uuid)
// @Success 200 {object} dto.ProjectListResponse "Owner's projects"
// @Router /api/projects/owner/{owner_id} [get]
func (h *ProjectHandler) GetProjectsByOwner(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("owner_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "100"))

	projects, total, err := h.service.GetProjectsByOwner(c.Request.Context(), ownerID, project.ProjectFilter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		c.JSON(projectErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	resp := dto.ProjectListResponse{
		Projects:   make([]dto.ProjectResponse, 0, len(projects)),
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}
	for i := range projects {
		resp.Projects = append(resp.Projects, *ProjectToResponse(&projects[i]))
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param project body dto.UpdateProjectRequest true "Project update request"
// @Success 200 {object} dto.ProjectResponse "Updated project"
// @Failure 404 {object} map[string]string "Project not found"
// @Router /api/projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var req dto.UpdateProjectRequest
	validatedModel, exists := c.Get("validated_model")
	if exists {
		if validatedPtr, ok := validatedModel.(*dto.UpdateProjectRequest); ok {
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

	updated, err := h.service.UpdateProject(c.Request.Context(), id, project.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		c.JSON(projectErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ProjectToResponse(updated)})
}

// DeactivateProject godoc
// @Summary Deactivate a project
// @Description Mark the project inactive without deleting it
// @Tags projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} dto.ProjectResponse "Deactivated project"
// @Failure 404 {object} map[string]string "Project not found"
// @Router /api/projects/{id}/deactivate [patch]
func (h *ProjectHandler) DeactivateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	proj, err := h.service.DeactivateProject(c.Request.Context(), id)
	if err != nil {
		c.JSON(projectErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ProjectToResponse(proj)})
}

// DeleteProject godoc
// @Summary Delete a project
// @Description Permanently delete the project and cascade to its tasks
// @Tags projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 204 "Project deleted"
// @Failure 404 {object} map[string]string "Project not found"
// @Router /api/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	if err := h.service.DeleteProject(c.Request.Context(), id); err != nil {
		c.JSON(projectErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
