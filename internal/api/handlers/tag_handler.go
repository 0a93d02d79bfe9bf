package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskflow-dev/taskflow/internal/api/dto"
	"github.com/taskflow-dev/taskflow/internal/domain/tag"
)

// TagHandler handles HTTP requests for tag operations
type TagHandler struct {
	service tag.Service
}

// NewTagHandler creates a new TagHandler instance
func NewTagHandler(service tag.Service) *TagHandler {
	return &TagHandler{service: service}
}

func tagErrorStatus(err error) int {
	switch {
	case errors.Is(err, tag.ErrTagNotFound), errors.Is(err, tag.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, tag.ErrTagNameTaken):
		return http.StatusConflict
	case errors.Is(err, tag.ErrInvalidInput), errors.Is(err, tag.ErrInvalidColor):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateTag godoc
// @Summary Create a new tag
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body dto.CreateTagRequest true "Tag creation request"
// @Success 201 {object} dto.TagResponse "Tag created successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Tag name already exists"
// @Router /api/tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	validatedModel, exists := c.Get("validated_model")

	if exists {
		if validatedPtr, ok := validatedModel.(*dto.CreateTagRequest); ok {
			req = *validatedPtr
		} else {
			log.Errorf("Invalid model type: %T, expected *dto.CreateTagRequest", validatedModel)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	created, err := h.service.CreateTag(c.Request.Context(), tag.CreateTagInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		c.JSON(tagErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": TagToResponse(created)})
}

// GetTag godoc
// @Summary Get a tag by ID
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID" format(uuid)
// @Success 200 {object} dto.TagResponse "Tag details"
// @Failure 404 {object} map[string]string "Tag not found"
// @Router /api/tags/{id} [get]
func (h *TagHandler) GetTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag ID"})
		return
	}

	t, err := h.service.GetTag(c.Request.Context(), id)
	if err != nil {
		c.JSON(tagErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TagToResponse(t)})
}

// GetTagByName godoc
// @Summary Get a tag by name
// @Tags tags
// @Produce json
// @Param name path string true "Tag name"
// @Success 200 {object} dto.TagResponse "Tag details"
// @Failure 404 {object} map[string]string "Tag not found"
// @Router /api/tags/name/{name} [get]
func (h *TagHandler) GetTagByName(c *gin.Context) {
	t, err := h.service.GetTagByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.JSON(tagErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TagToResponse(t)})
}

// ListTags godoc
// @Summary List tags
// @Tags tags
// @Produce json
// @Param page query int false "Page number (0-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.TagListResponse "Paginated tags"
// @Router /api/tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "100"))

	tags, total, err := h.service.ListTags(c.Request.Context(), tag.TagFilter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		c.JSON(tagErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.TagListResponse{
		Tags:       TagsToResponse(tags),
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}})
}

// UpdateTag godoc
// @Summary Update a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID" format(uuid)
// @Param tag body dto.UpdateTagRequest true "Tag update request"
// @Success 200 {object} dto.TagResponse "Updated tag"
// @Failure 404 {object} map[string]string "Tag not found"
// @Failure 409 {object} map[string]string "Tag name already exists"
// @Router /api/tags/{id} [put]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag ID"})
		return
	}

	var req dto.UpdateTagRequest
	validatedModel, exists := c.Get("validated_model")
	if exists {
		if validatedPtr, ok := validatedModel.(*dto.UpdateTagRequest); ok {
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

	updated, err := h.service.UpdateTag(c.Request.Context(), id, tag.UpdateTagInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		c.JSON(tagErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TagToResponse(updated)})
}

// DeleteTag godoc
// @Summary Delete a tag
// @Description Delete a tag and remove it from every task it was attached to
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID" format(uuid)
// @Success 204 "Tag deleted"
// @Failure 404 {object} map[string]string "Tag not found"
// @Router /api/tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag ID"})
		return
	}

	if err := h.service.DeleteTag(c.Request.Context(), id); err != nil {
		c.JSON(tagErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// AttachTag godoc
// @Summary Attach a tag to a task
// @Description Attach a tag to a task; attaching an already attached tag is a no-op
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID" format(uuid)
// @Param task_id path string true "Task ID" format(uuid)
// @Success 200 {object} map[string]string "Tag attached"
// @Failure 404 {object} map[string]string "Tag or task not found"
// @Router /api/tags/{id}/attach/{task_id} [post]
func (h *TagHandler) AttachTag(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag ID"})
		return
	}
	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	if err := h.service.AttachTag(c.Request.Context(), tagID, taskID); err != nil {
		c.JSON(tagErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "tag attached"}})
}

// DetachTag godoc
// @Summary Detach a tag from a task
// @Description Detach a tag from a task; detaching an unattached tag is a no-op
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID" format(uuid)
// @Param task_id path string true "Task ID" format(uuid)
// @Success 200 {object} map[string]string "Tag detached"
// @Failure 404 {object} map[string]string "Tag or task not found"
// @Router /api/tags/{id}/detach/{task_id} [delete]
func (h *TagHandler) DetachTag(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag ID"})
		return
	}
	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	if err := h.service.DetachTag(c.Request.Context(), tagID, taskID); err != nil {
		c.JSON(tagErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "tag detached"}})
}
