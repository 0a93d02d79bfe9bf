package task

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/domain/project"
	"github.com/taskflow-dev/taskflow/internal/domain/tag"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
	StatusOnHold     TaskStatus = "on_hold"
)

// TaskPriority represents how urgent a task is
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// ValidStatus reports whether s is a recognised task status
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusOnHold:
		return true
	}
	return false
}

// ValidPriority reports whether p is a recognised task priority
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Task is a unit of work inside a project. It may be assigned to a
// user directly and carry any number of tags.
type Task struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status" gorm:"not null;default:'pending';index:idx_tasks_status"`
	Priority    TaskPriority `json:"priority" gorm:"not null;default:'medium';index:idx_tasks_priority"`
	ProjectID   uuid.UUID    `json:"project_id" gorm:"type:uuid;not null;index:idx_tasks_project"`
	AssignedTo  *uuid.UUID   `json:"assigned_to" gorm:"type:uuid;index:idx_tasks_assignee"`
	DueDate     *time.Time   `json:"due_date"`
	CompletedAt *time.Time   `json:"completed_at"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null;default:current_timestamp"`

	Project  *project.Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Assignee *user.User       `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL"`
	Tags     []tag.Tag        `json:"tags,omitempty" gorm:"many2many:task_tags;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// Validate checks if the task data is valid
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrInvalidInput
	}
	if t.ProjectID == uuid.Nil {
		return ErrInvalidInput
	}
	if t.Status != "" && !ValidStatus(t.Status) {
		return ErrInvalidStatus
	}
	if t.Priority != "" && !ValidPriority(t.Priority) {
		return ErrInvalidPriority
	}
	if t.CompletedAt != nil && t.DueDate != nil && t.CompletedAt.After(*t.DueDate) {
		return ErrCompletedAfterDue
	}
	return nil
}

// BeforeCreate is called before creating a new task record
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// BeforeUpdate is called before updating a task record
func (t *Task) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// IsOverdue reports whether the task is past due and still open
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == StatusCompleted || t.Status == StatusCancelled {
		return false
	}
	return t.DueDate.Before(now)
}
