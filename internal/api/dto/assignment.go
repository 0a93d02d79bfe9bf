package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateAssignmentRequest represents the request body for assigning a user to a task
// @Description Request body for assigning a user to a task
type CreateAssignmentRequest struct {
	TaskID         uuid.UUID  `json:"task_id" binding:"required"`
	UserID         uuid.UUID  `json:"user_id" binding:"required"`
	AssignedBy     *uuid.UUID `json:"assigned_by,omitempty"`
	HoursAllocated *int       `json:"hours_allocated,omitempty" binding:"omitempty,min=0"`
}

// AssignmentResponse represents a task assignment in API responses
type AssignmentResponse struct {
	ID             uuid.UUID     `json:"id"`
	TaskID         uuid.UUID     `json:"task_id"`
	UserID         uuid.UUID     `json:"user_id"`
	AssignedBy     *uuid.UUID    `json:"assigned_by,omitempty"`
	AssignedAt     time.Time     `json:"assigned_at"`
	HoursAllocated *int          `json:"hours_allocated,omitempty"`
	User           *UserResponse `json:"user,omitempty"`
	Task           *TaskResponse `json:"task,omitempty"`
}
