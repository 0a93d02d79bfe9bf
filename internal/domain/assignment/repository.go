package assignment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAlreadyAssigned    = errors.New("user already assigned to task")
	ErrInvalidInput       = errors.New("invalid input")
)

// AssignmentRepository defines the interface for assignment data access
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *TaskAssignment) error
	FindByTaskAndUser(ctx context.Context, taskID, userID uuid.UUID) (*TaskAssignment, error)
	FindByTask(ctx context.Context, taskID uuid.UUID) ([]TaskAssignment, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]TaskAssignment, error)
	Delete(ctx context.Context, taskID, userID uuid.UUID) error
}

type gormAssignmentRepository struct {
	db *connection.Database
}

// NewAssignmentRepository creates a new assignment repository backed by Postgres
func NewAssignmentRepository(db *connection.Database) AssignmentRepository {
	return &gormAssignmentRepository{db: db}
}

func (r *gormAssignmentRepository) Create(ctx context.Context, assignment *TaskAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *gormAssignmentRepository) FindByTaskAndUser(ctx context.Context, taskID, userID uuid.UUID) (*TaskAssignment, error) {
	var assignment TaskAssignment
	err := r.db.WithContext(ctx).
		First(&assignment, "task_id = ? AND user_id = ?", taskID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *gormAssignmentRepository) FindByTask(ctx context.Context, taskID uuid.UUID) ([]TaskAssignment, error) {
	var assignments []TaskAssignment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("task_id = ?", taskID).
		Order("assigned_at ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *gormAssignmentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]TaskAssignment, error) {
	var assignments []TaskAssignment
	err := r.db.WithContext(ctx).
		Preload("Task").
		Where("user_id = ?", userID).
		Order("assigned_at ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *gormAssignmentRepository) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&TaskAssignment{}, "task_id = ? AND user_id = ?", taskID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}
