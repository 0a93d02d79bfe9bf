package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskflow-dev/taskflow/internal/domain/project"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

// DefaultUpcomingDays is the horizon used when no explicit window is given
const DefaultUpcomingDays = 7

// Service defines the task business operations
type Service interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	GetTaskDetails(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	GetTasksByProject(ctx context.Context, projectID uuid.UUID) ([]Task, int64, error)
	GetTasksByAssignee(ctx context.Context, userID uuid.UUID) ([]Task, int64, error)
	GetTasksByStatus(ctx context.Context, status TaskStatus) ([]Task, int64, error)
	GetTasksByPriority(ctx context.Context, priority TaskPriority) ([]Task, int64, error)
	GetOverdueTasks(ctx context.Context) ([]Task, error)
	GetUpcomingTasks(ctx context.Context, days int) ([]Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*Task, error)
	CompleteTask(ctx context.Context, id uuid.UUID) (*Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// CreateTaskInput carries the fields accepted when creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	ProjectID   uuid.UUID
	AssignedTo  *uuid.UUID
	DueDate     *time.Time
}

// UpdateTaskInput carries the fields accepted when updating a task.
// Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	AssignedTo  *uuid.UUID
	DueDate     *time.Time
}

type service struct {
	repo        TaskRepository
	projectRepo project.ProjectRepository
	userRepo    user.UserRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a new task service
func NewService(repo TaskRepository, projectRepo project.ProjectRepository, userRepo user.UserRepository, logger *zap.Logger) Service {
	return &service{
		repo:        repo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if input.Title == "" || input.ProjectID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if input.Status != "" && !ValidStatus(input.Status) {
		return nil, ErrInvalidStatus
	}
	if input.Priority != "" && !ValidPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	if _, err := s.projectRepo.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}
	if input.AssignedTo != nil {
		if _, err := s.userRepo.FindByID(ctx, *input.AssignedTo); err != nil {
			return nil, err
		}
	}

	task := &Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		ProjectID:   input.ProjectID,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task created",
		zap.String("task_id", task.ID.String()),
		zap.String("project_id", task.ProjectID.String()),
		zap.String("title", task.Title))
	return task, nil
}

func (s *service) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetTaskDetails(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.repo.FindByIDDetailed(ctx, id)
}

func (s *service) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	if filter.Status != nil && !ValidStatus(*filter.Status) {
		return nil, 0, ErrInvalidStatus
	}
	if filter.Priority != nil && !ValidPriority(*filter.Priority) {
		return nil, 0, ErrInvalidPriority
	}
	return s.repo.FindAll(ctx, filter)
}

func (s *service) GetTasksByProject(ctx context.Context, projectID uuid.UUID) ([]Task, int64, error) {
	return s.repo.FindAll(ctx, TaskFilter{ProjectID: &projectID})
}

func (s *service) GetTasksByAssignee(ctx context.Context, userID uuid.UUID) ([]Task, int64, error) {
	return s.repo.FindAll(ctx, TaskFilter{AssignedTo: &userID})
}

func (s *service) GetTasksByStatus(ctx context.Context, status TaskStatus) ([]Task, int64, error) {
	if !ValidStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.FindAll(ctx, TaskFilter{Status: &status})
}

func (s *service) GetTasksByPriority(ctx context.Context, priority TaskPriority) ([]Task, int64, error) {
	if !ValidPriority(priority) {
		return nil, 0, ErrInvalidPriority
	}
	return s.repo.FindAll(ctx, TaskFilter{Priority: &priority})
}

func (s *service) GetOverdueTasks(ctx context.Context) ([]Task, error) {
	return s.repo.FindOverdue(ctx, s.now())
}

func (s *service) GetUpcomingTasks(ctx context.Context, days int) ([]Task, error) {
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	return s.repo.FindUpcoming(ctx, s.now(), days)
}

func (s *service) UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !ValidStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !ValidPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.AssignedTo != nil {
		if _, err := s.userRepo.FindByID(ctx, *input.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = input.AssignedTo
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// CompleteTask marks the task completed and stamps the completion time.
func (s *service) CompleteTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	task.Status = StatusCompleted
	task.CompletedAt = &now

	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task completed", zap.String("task_id", task.ID.String()))
	return task, nil
}

func (s *service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("task deleted", zap.String("task_id", id.String()))
	return nil
}
