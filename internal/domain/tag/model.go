package tag

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultColor = "#808080"

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Tag is a label that can be attached to any number of tasks
type Tag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex:idx_tags_name"`
	Color     string    `json:"color" gorm:"not null;default:'#808080'"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the Tag model
func (Tag) TableName() string {
	return "tags"
}

// Validate checks if the tag data is valid
func (t *Tag) Validate() error {
	if t.Name == "" {
		return ErrInvalidInput
	}
	if t.Color != "" && !hexColorPattern.MatchString(t.Color) {
		return ErrInvalidColor
	}
	return nil
}

// BeforeCreate is called before creating a new tag record
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Color == "" {
		t.Color = DefaultColor
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// BeforeUpdate is called before updating a tag record
func (t *Tag) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}
