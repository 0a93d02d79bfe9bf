package comment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *TaskComment) error
	FindByID(ctx context.Context, id uuid.UUID) (*TaskComment, error)
	FindByTask(ctx context.Context, taskID uuid.UUID) ([]TaskComment, error)
	FindByAuthor(ctx context.Context, userID uuid.UUID) ([]TaskComment, error)
	Update(ctx context.Context, comment *TaskComment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormCommentRepository struct {
	db *connection.Database
}

// NewCommentRepository creates a new comment repository backed by Postgres
func NewCommentRepository(db *connection.Database) CommentRepository {
	return &gormCommentRepository{db: db}
}

func (r *gormCommentRepository) Create(ctx context.Context, comment *TaskComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *gormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*TaskComment, error) {
	var comment TaskComment
	err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *gormCommentRepository) FindByTask(ctx context.Context, taskID uuid.UUID) ([]TaskComment, error) {
	var comments []TaskComment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *gormCommentRepository) FindByAuthor(ctx context.Context, userID uuid.UUID) ([]TaskComment, error) {
	var comments []TaskComment
	err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *gormCommentRepository) Update(ctx context.Context, comment *TaskComment) error {
	result := r.db.WithContext(ctx).Save(comment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *gormCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&TaskComment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
