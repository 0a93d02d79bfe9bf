package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCommentRequest represents the request body for commenting on a task
// @Description Request body for creating a new task comment
type CreateCommentRequest struct {
	TaskID    uuid.UUID `json:"task_id" binding:"required"`
	CreatedBy uuid.UUID `json:"created_by" binding:"required"`
	Content   string    `json:"content" binding:"required"`
}

// UpdateCommentRequest represents the request body for editing a comment
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse represents a task comment in API responses
type CommentResponse struct {
	ID        uuid.UUID     `json:"id"`
	TaskID    uuid.UUID     `json:"task_id"`
	CreatedBy uuid.UUID     `json:"created_by"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Author    *UserResponse `json:"author,omitempty"`
}
