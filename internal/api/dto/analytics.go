package dto

import (
	"github.com/google/uuid"
)

// ProjectAnalyticsResponse summarises task progress inside one project
type ProjectAnalyticsResponse struct {
	ProjectID            uuid.UUID `json:"project_id"`
	ProjectName          string    `json:"project_name"`
	TotalTasks           int64     `json:"total_tasks"`
	CompletedTasks       int64     `json:"completed_tasks"`
	PendingTasks         int64     `json:"pending_tasks"`
	InProgressTasks      int64     `json:"in_progress_tasks"`
	OverdueTasks         int64     `json:"overdue_tasks"`
	CompletionPercentage float64   `json:"completion_percentage"`
}

// UserWorkloadResponse summarises the tasks assigned to one user
type UserWorkloadResponse struct {
	UserID              uuid.UUID `json:"user_id"`
	Username            string    `json:"username"`
	AssignedTasks       int64     `json:"assigned_tasks"`
	CompletedTasks      int64     `json:"completed_tasks"`
	PendingTasks        int64     `json:"pending_tasks"`
	InProgressTasks     int64     `json:"in_progress_tasks"`
	TotalHoursAllocated int64     `json:"total_hours_allocated"`
}

// DashboardResponse is the cross-project task overview
type DashboardResponse struct {
	PendingCount    int64            `json:"pending_count"`
	InProgressCount int64            `json:"in_progress_count"`
	CompletedCount  int64            `json:"completed_count"`
	OverdueCount    int64            `json:"overdue_count"`
	TotalByPriority map[string]int64 `json:"total_by_priority"`
	TotalByProject  map[string]int64 `json:"total_by_project"`
	UpcomingTasks   []TaskResponse   `json:"upcoming_tasks"`
}

// TrendPointResponse is one day of the completion trend
type TrendPointResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
