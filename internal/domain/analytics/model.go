package analytics

import (
	"github.com/google/uuid"

	"github.com/taskflow-dev/taskflow/internal/domain/task"
)

// ProjectAnalytics summarises task progress inside a single project
type ProjectAnalytics struct {
	ProjectID            uuid.UUID `json:"project_id"`
	ProjectName          string    `json:"project_name"`
	TotalTasks           int64     `json:"total_tasks"`
	CompletedTasks       int64     `json:"completed_tasks"`
	PendingTasks         int64     `json:"pending_tasks"`
	InProgressTasks      int64     `json:"in_progress_tasks"`
	OverdueTasks         int64     `json:"overdue_tasks"`
	CompletionPercentage float64   `json:"completion_percentage"`
}

// UserWorkload summarises the tasks currently on a user's plate
type UserWorkload struct {
	UserID              uuid.UUID `json:"user_id"`
	Username            string    `json:"username"`
	AssignedTasks       int64     `json:"assigned_tasks"`
	CompletedTasks      int64     `json:"completed_tasks"`
	PendingTasks        int64     `json:"pending_tasks"`
	InProgressTasks     int64     `json:"in_progress_tasks"`
	TotalHoursAllocated int64     `json:"total_hours_allocated"`
}

// TaskDashboard is the cross-project overview shown on the landing page
type TaskDashboard struct {
	PendingCount    int64            `json:"pending_count"`
	InProgressCount int64            `json:"in_progress_count"`
	CompletedCount  int64            `json:"completed_count"`
	OverdueCount    int64            `json:"overdue_count"`
	TotalByPriority map[string]int64 `json:"total_by_priority"`
	TotalByProject  map[string]int64 `json:"total_by_project"`
	UpcomingTasks   []task.Task      `json:"upcoming_tasks"`
}

// TrendPoint is one day's worth of completed tasks
type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
