package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTaskRequest represents the request body for creating a task
// @Description Request body for creating a new task in the system
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	ProjectID   uuid.UUID  `json:"project_id" binding:"required"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents the request body for updating a task
// @Description Request body for updating task information
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty" binding:"omitempty,max=200"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// TaskFilterRequest represents the query parameters for filtering tasks
type TaskFilterRequest struct {
	ProjectID  string `form:"project_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Status     string `form:"status" binding:"omitempty,oneof=pending in_progress completed cancelled on_hold" example:"pending"`
	Priority   string `form:"priority" binding:"omitempty,oneof=low medium high critical" example:"high"`
	AssignedTo string `form:"assigned_to" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
	Page       int    `form:"page" binding:"omitempty,min=0" example:"0"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=500" example:"20"`
}

// TaskResponse represents a task in API responses
// @Description Detailed task information returned in API responses
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	ProjectID   uuid.UUID  `json:"project_id"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskDetailResponse is a task together with its loaded relations
type TaskDetailResponse struct {
	TaskResponse
	Project     *ProjectResponse     `json:"project,omitempty"`
	Assignee    *UserResponse        `json:"assignee,omitempty"`
	Tags        []TagResponse        `json:"tags"`
	Assignments []AssignmentResponse `json:"assignments"`
	Comments    []CommentResponse    `json:"comments"`
}

// TaskListResponse represents a paginated list of tasks with metadata
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}
