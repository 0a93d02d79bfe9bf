package tag

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrTagNotFound  = errors.New("tag not found")
	ErrTagNameTaken = errors.New("tag name already exists")
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidColor = errors.New("color must be a hex value like #1A2B3C")
)

// TagFilter defines criteria for listing tags
type TagFilter struct {
	Page     int
	PageSize int
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	Create(ctx context.Context, tag *Tag) error
	FindByID(ctx context.Context, id uuid.UUID) (*Tag, error)
	FindByName(ctx context.Context, name string) (*Tag, error)
	FindAll(ctx context.Context, filter TagFilter) ([]Tag, int64, error)
	Update(ctx context.Context, tag *Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	AttachToTask(ctx context.Context, tagID, taskID uuid.UUID) error
	DetachFromTask(ctx context.Context, tagID, taskID uuid.UUID) error
	TaskExists(ctx context.Context, taskID uuid.UUID) (bool, error)
}

type gormTagRepository struct {
	db *connection.Database
}

// NewTagRepository creates a new tag repository backed by Postgres
func NewTagRepository(db *connection.Database) TagRepository {
	return &gormTagRepository{db: db}
}

func (r *gormTagRepository) Create(ctx context.Context, tag *Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *gormTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*Tag, error) {
	var tag Tag
	err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *gormTagRepository) FindByName(ctx context.Context, name string) (*Tag, error) {
	var tag Tag
	err := r.db.WithContext(ctx).First(&tag, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *gormTagRepository) FindAll(ctx context.Context, filter TagFilter) ([]Tag, int64, error) {
	var tags []Tag
	var total int64

	query := r.db.WithContext(ctx).Model(&Tag{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	if err := query.Order("name ASC").Offset(page * pageSize).Limit(pageSize).Find(&tags).Error; err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

func (r *gormTagRepository) Update(ctx context.Context, tag *Tag) error {
	// Save writes every column so cleared fields persist
	result := r.db.WithContext(ctx).Save(tag)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (r *gormTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Tag{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

// AttachToTask links a tag to a task. Attaching twice is a no-op.
func (r *gormTagRepository) AttachToTask(ctx context.Context, tagID, taskID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		taskID, tagID,
	).Error
}

func (r *gormTagRepository) DetachFromTask(ctx context.Context, tagID, taskID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM task_tags WHERE task_id = ? AND tag_id = ?",
		taskID, tagID,
	).Error
}

func (r *gormTagRepository) TaskExists(ctx context.Context, taskID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("tasks").Where("id = ?", taskID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
