package assignment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/domain/task"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

// TaskAssignment links a task to a user beyond the single direct
// assignee on the task itself. A user can be assigned to a task at
// most once.
type TaskAssignment struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TaskID         uuid.UUID  `json:"task_id" gorm:"type:uuid;not null;index:idx_assignments_task;uniqueIndex:uq_task_user_assignment"`
	UserID         uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index:idx_assignments_user;uniqueIndex:uq_task_user_assignment"`
	AssignedBy     *uuid.UUID `json:"assigned_by" gorm:"type:uuid"`
	AssignedAt     time.Time  `json:"assigned_at" gorm:"not null;default:current_timestamp"`
	HoursAllocated *int       `json:"hours_allocated"`
	CreatedAt      time.Time  `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"not null;default:current_timestamp"`

	Task     *task.Task `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	User     *user.User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Assigner *user.User `json:"assigner,omitempty" gorm:"foreignKey:AssignedBy;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for the TaskAssignment model
func (TaskAssignment) TableName() string {
	return "task_assignments"
}

// Validate checks if the assignment data is valid
func (a *TaskAssignment) Validate() error {
	if a.TaskID == uuid.Nil || a.UserID == uuid.Nil {
		return ErrInvalidInput
	}
	if a.HoursAllocated != nil && *a.HoursAllocated < 0 {
		return ErrInvalidInput
	}
	return nil
}

// BeforeCreate is called before creating a new assignment record
func (a *TaskAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now()
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	return a.Validate()
}
