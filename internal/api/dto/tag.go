package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTagRequest represents the request body for creating a tag
// @Description Request body for creating a new tag
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color,omitempty" binding:"omitempty,hexcolor"`
}

// UpdateTagRequest represents the request body for updating a tag
type UpdateTagRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,max=50"`
	Color *string `json:"color,omitempty" binding:"omitempty,hexcolor"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagListResponse represents a paginated list of tags with metadata
type TagListResponse struct {
	Tags       []TagResponse `json:"tags"`
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
}
