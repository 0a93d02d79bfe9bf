package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrCompletedAfterDue = errors.New("completion date cannot be after due date")
)

// TaskFilter defines criteria for listing tasks
type TaskFilter struct {
	ProjectID  *uuid.UUID
	Status     *TaskStatus
	Priority   *TaskPriority
	AssignedTo *uuid.UUID
	Page       int
	PageSize   int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindByIDDetailed(ctx context.Context, id uuid.UUID) (*Task, error)
	FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	FindOverdue(ctx context.Context, now time.Time) ([]Task, error)
	FindUpcoming(ctx context.Context, now time.Time, days int) ([]Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormTaskRepository struct {
	db *connection.Database
}

// NewTaskRepository creates a new task repository backed by Postgres
func NewTaskRepository(db *connection.Database) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *gormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	var task Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// FindByIDDetailed loads the task together with its project, assignee
// and tags in one round trip.
func (r *gormTaskRepository) FindByIDDetailed(ctx context.Context, id uuid.UUID) (*Task, error) {
	var task Task
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Assignee").
		Preload("Tags").
		First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskRepository) FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	var tasks []Task
	var total int64

	query := r.db.WithContext(ctx).Model(&Task{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	if err := query.Order("created_at ASC").Offset(page * pageSize).Limit(pageSize).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// FindOverdue returns open tasks whose due date has passed. Completed
// and cancelled tasks never count as overdue.
func (r *gormTaskRepository) FindOverdue(ctx context.Context, now time.Time) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("due_date < ?", now).
		Where("status NOT IN ?", []TaskStatus{StatusCompleted, StatusCancelled}).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindUpcoming returns open tasks due within the next `days` days.
func (r *gormTaskRepository) FindUpcoming(ctx context.Context, now time.Time, days int) ([]Task, error) {
	var tasks []Task
	horizon := now.AddDate(0, 0, days)
	err := r.db.WithContext(ctx).
		Where("due_date BETWEEN ? AND ?", now, horizon).
		Where("status <> ?", StatusCompleted).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *gormTaskRepository) Update(ctx context.Context, task *Task) error {
	// Save writes every column so cleared fields persist
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *gormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
