package comment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/domain/task"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

// TaskComment is a free-form note left on a task by a user
type TaskComment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TaskID    uuid.UUID `json:"task_id" gorm:"type:uuid;not null;index:idx_comments_task"`
	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null;index:idx_comments_author"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:current_timestamp;index:idx_comments_created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:current_timestamp"`

	Task   *task.Task `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Author *user.User `json:"author,omitempty" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the TaskComment model
func (TaskComment) TableName() string {
	return "task_comments"
}

// Validate checks if the comment data is valid
func (c *TaskComment) Validate() error {
	if c.TaskID == uuid.Nil || c.CreatedBy == uuid.Nil || c.Content == "" {
		return ErrInvalidInput
	}
	return nil
}

// BeforeCreate is called before creating a new comment record
func (c *TaskComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	return c.Validate()
}

// BeforeUpdate is called before updating a comment record
func (c *TaskComment) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return c.Validate()
}
