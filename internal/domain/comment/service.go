package comment

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskflow-dev/taskflow/internal/domain/task"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

// Service defines the comment business operations
type Service interface {
	CreateComment(ctx context.Context, input CreateCommentInput) (*TaskComment, error)
	GetComment(ctx context.Context, id uuid.UUID) (*TaskComment, error)
	GetTaskComments(ctx context.Context, taskID uuid.UUID) ([]TaskComment, error)
	GetUserComments(ctx context.Context, userID uuid.UUID) ([]TaskComment, error)
	UpdateComment(ctx context.Context, id uuid.UUID, content string) (*TaskComment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

// CreateCommentInput carries the fields accepted when creating a comment
type CreateCommentInput struct {
	TaskID    uuid.UUID
	CreatedBy uuid.UUID
	Content   string
}

type service struct {
	repo     CommentRepository
	taskRepo task.TaskRepository
	userRepo user.UserRepository
	logger   *zap.Logger
}

// NewService creates a new comment service
func NewService(repo CommentRepository, taskRepo task.TaskRepository, userRepo user.UserRepository, logger *zap.Logger) Service {
	return &service{repo: repo, taskRepo: taskRepo, userRepo: userRepo, logger: logger}
}

func (s *service) CreateComment(ctx context.Context, input CreateCommentInput) (*TaskComment, error) {
	if input.TaskID == uuid.Nil || input.CreatedBy == uuid.Nil || input.Content == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.taskRepo.FindByID(ctx, input.TaskID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, input.CreatedBy); err != nil {
		return nil, err
	}

	comment := &TaskComment{
		TaskID:    input.TaskID,
		CreatedBy: input.CreatedBy,
		Content:   input.Content,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("task_id", comment.TaskID.String()))
	return comment, nil
}

func (s *service) GetComment(ctx context.Context, id uuid.UUID) (*TaskComment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetTaskComments(ctx context.Context, taskID uuid.UUID) ([]TaskComment, error) {
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.repo.FindByTask(ctx, taskID)
}

func (s *service) GetUserComments(ctx context.Context, userID uuid.UUID) ([]TaskComment, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.FindByAuthor(ctx, userID)
}

func (s *service) UpdateComment(ctx context.Context, id uuid.UUID, content string) (*TaskComment, error) {
	if content == "" {
		return nil, ErrInvalidInput
	}

	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *service) DeleteComment(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
