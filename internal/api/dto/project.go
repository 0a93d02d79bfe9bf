package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateProjectRequest represents the request body for creating a project
// @Description Request body for creating a new project
type CreateProjectRequest struct {
	Name        string    `json:"name" binding:"required,max=200"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id" binding:"required"`
	IsActive    *bool     `json:"is_active,omitempty"`
}

// UpdateProjectRequest represents the request body for updating a project
// @Description Request body for updating project information
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	OwnerID     uuid.UUID     `json:"owner_id"`
	IsActive    bool          `json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Owner       *UserResponse `json:"owner,omitempty"`
}

// ProjectListResponse represents a paginated list of projects with metadata
type ProjectListResponse struct {
	Projects   []ProjectResponse `json:"projects"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

// ProjectStatsResponse represents task statistics for a project
type ProjectStatsResponse struct {
	ProjectResponse
	TaskCount int64 `json:"task_count"`
}
