package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskflow-dev/taskflow/internal/api/dto"
	"github.com/taskflow-dev/taskflow/internal/domain/comment"
	"github.com/taskflow-dev/taskflow/internal/domain/task"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

// CommentHandler handles HTTP requests for task comment operations
type CommentHandler struct {
	service comment.Service
}

// NewCommentHandler creates a new CommentHandler instance
func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

func commentErrorStatus(err error) int {
	switch {
	case errors.Is(err, comment.ErrCommentNotFound),
		errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, comment.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateComment godoc
// @Summary Add a comment to a task
// @Tags comments
// @Accept json
// @Produce json
// @Param comment body dto.CreateCommentRequest true "Comment creation request"
// @Success 201 {object} dto.CommentResponse "Comment created"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Task or author not found"
// @Router /api/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	validatedModel, exists := c.Get("validated_model")

	if exists {
		if validatedPtr, ok := validatedModel.(*dto.CreateCommentRequest); ok {
			req = *validatedPtr
		} else {
			log.Errorf("Invalid model type: %T, expected *dto.CreateCommentRequest", validatedModel)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	created, err := h.service.CreateComment(c.Request.Context(), comment.CreateCommentInput{
		TaskID:    req.TaskID,
		CreatedBy: req.CreatedBy,
		Content:   req.Content,
	})
	if err != nil {
		c.JSON(commentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": CommentToResponse(created)})
}

// GetComment godoc
// @Summary Get a comment by ID
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID" format(uuid)
// @Success 200 {object} dto.CommentResponse "Comment details"
// @Failure 404 {object} map[string]string "Comment not found"
// @Router /api/comments/{id} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment ID"})
		return
	}

	cm, err := h.service.GetComment(c.Request.Context(), id)
	if err != nil {
		c.JSON(commentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": CommentToResponse(cm)})
}

// GetTaskComments godoc
// @Summary List comments on a task
// @Description List comments on a task, newest first, with author details
// @Tags comments
// @Produce json
// @Param task_id path string true "Task ID" format(uuid)
// @Success 200 {object} []dto.CommentResponse "Task comments"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /api/comments/task/{task_id} [get]
func (h *CommentHandler) GetTaskComments(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	comments, err := h.service.GetTaskComments(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(commentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": CommentsToResponse(comments)})
}

// GetUserComments godoc
// @Summary List comments written by a user
// @Tags comments
// @Produce json
// @Param user_id path string true "User ID" format(uuid)
// @Success 200 {object} []dto.CommentResponse "User comments"
// @Failure 404 {object} map[string]string "User not found"
// @Router /api/comments/user/{user_id} [get]
func (h *CommentHandler) GetUserComments(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	comments, err := h.service.GetUserComments(c.Request.Context(), userID)
	if err != nil {
		c.JSON(commentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": CommentsToResponse(comments)})
}

// UpdateComment godoc
// @Summary Update a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID" format(uuid)
// @Param comment body dto.UpdateCommentRequest true "Comment update request"
// @Success 200 {object} dto.CommentResponse "Updated comment"
// @Failure 404 {object} map[string]string "Comment not found"
// @Router /api/comments/{id} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment ID"})
		return
	}

	var req dto.UpdateCommentRequest
	validatedModel, exists := c.Get("validated_model")
	if exists {
		if validatedPtr, ok := validatedModel.(*dto.UpdateCommentRequest); ok {
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

	updated, err := h.service.UpdateComment(c.Request.Context(), id, req.Content)
	if err != nil {
		c.JSON(commentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": CommentToResponse(updated)})
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID" format(uuid)
// @Success 204 "Comment deleted"
// @Failure 404 {object} map[string]string "Comment not found"
// @Router /api/comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment ID"})
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), id); err != nil {
		c.JSON(commentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
