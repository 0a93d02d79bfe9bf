package assignment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/taskflow-dev/taskflow/internal/domain/task"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

// Service defines the assignment business operations
type Service interface {
	AssignUser(ctx context.Context, input AssignInput) (*TaskAssignment, error)
	GetTaskAssignments(ctx context.Context, taskID uuid.UUID) ([]TaskAssignment, error)
	GetUserAssignments(ctx context.Context, userID uuid.UUID) ([]TaskAssignment, error)
	RemoveAssignment(ctx context.Context, taskID, userID uuid.UUID) error
}

// AssignInput carries the fields accepted when assigning a user to a task
type AssignInput struct {
	TaskID         uuid.UUID
	UserID         uuid.UUID
	AssignedBy     *uuid.UUID
	HoursAllocated *int
}

type service struct {
	repo     AssignmentRepository
	taskRepo task.TaskRepository
	userRepo user.UserRepository
	logger   *zap.Logger
}

// NewService creates a new assignment service
func NewService(repo AssignmentRepository, taskRepo task.TaskRepository, userRepo user.UserRepository, logger *zap.Logger) Service {
	return &service{repo: repo, taskRepo: taskRepo, userRepo: userRepo, logger: logger}
}

func (s *service) AssignUser(ctx context.Context, input AssignInput) (*TaskAssignment, error) {
	if input.TaskID == uuid.Nil || input.UserID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	if _, err := s.taskRepo.FindByID(ctx, input.TaskID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		return nil, err
	}
	if input.AssignedBy != nil {
		if _, err := s.userRepo.FindByID(ctx, *input.AssignedBy); err != nil {
			return nil, err
		}
	}

	if _, err := s.repo.FindByTaskAndUser(ctx, input.TaskID, input.UserID); err == nil {
		return nil, ErrAlreadyAssigned
	} else if !errors.Is(err, ErrAssignmentNotFound) {
		return nil, err
	}

	assignment := &TaskAssignment{
		TaskID:         input.TaskID,
		UserID:         input.UserID,
		AssignedBy:     input.AssignedBy,
		HoursAllocated: input.HoursAllocated,
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		if isUniqueViolation(err) {
			// Concurrent insert can slip past the lookup above
			return nil, ErrAlreadyAssigned
		}
		return nil, err
	}

	s.logger.Info("user assigned to task",
		zap.String("task_id", input.TaskID.String()),
		zap.String("user_id", input.UserID.String()))
	return assignment, nil
}

func (s *service) GetTaskAssignments(ctx context.Context, taskID uuid.UUID) ([]TaskAssignment, error) {
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.repo.FindByTask(ctx, taskID)
}

func (s *service) GetUserAssignments(ctx context.Context, userID uuid.UUID) ([]TaskAssignment, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.FindByUser(ctx, userID)
}

func (s *service) RemoveAssignment(ctx context.Context, taskID, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, taskID, userID); err != nil {
		return err
	}
	s.logger.Info("assignment removed",
		zap.String("task_id", taskID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
