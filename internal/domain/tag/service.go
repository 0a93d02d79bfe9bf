package tag

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the tag business operations
type Service interface {
	CreateTag(ctx context.Context, input CreateTagInput) (*Tag, error)
	GetTag(ctx context.Context, id uuid.UUID) (*Tag, error)
	GetTagByName(ctx context.Context, name string) (*Tag, error)
	ListTags(ctx context.Context, filter TagFilter) ([]Tag, int64, error)
	UpdateTag(ctx context.Context, id uuid.UUID, input UpdateTagInput) (*Tag, error)
	DeleteTag(ctx context.Context, id uuid.UUID) error
	AttachTag(ctx context.Context, tagID, taskID uuid.UUID) error
	DetachTag(ctx context.Context, tagID, taskID uuid.UUID) error
}

// CreateTagInput carries the fields accepted when creating a tag
type CreateTagInput struct {
	Name  string
	Color string
}

// UpdateTagInput carries the fields accepted when updating a tag
type UpdateTagInput struct {
	Name  *string
	Color *string
}

type service struct {
	repo   TagRepository
	logger *zap.Logger
}

// NewService creates a new tag service
func NewService(repo TagRepository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) CreateTag(ctx context.Context, input CreateTagInput) (*Tag, error) {
	if input.Name == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.repo.FindByName(ctx, input.Name); err == nil {
		return nil, ErrTagNameTaken
	} else if !errors.Is(err, ErrTagNotFound) {
		return nil, err
	}

	tag := &Tag{
		Name:  input.Name,
		Color: input.Color,
	}
	if err := s.repo.Create(ctx, tag); err != nil {
		if isUniqueViolation(err) {
			// Concurrent insert can slip past the lookup above
			return nil, ErrTagNameTaken
		}
		return nil, err
	}

	s.logger.Info("tag created",
		zap.String("tag_id", tag.ID.String()),
		zap.String("name", tag.Name))
	return tag, nil
}

func (s *service) GetTag(ctx context.Context, id uuid.UUID) (*Tag, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetTagByName(ctx context.Context, name string) (*Tag, error) {
	return s.repo.FindByName(ctx, name)
}

func (s *service) ListTags(ctx context.Context, filter TagFilter) ([]Tag, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateTag(ctx context.Context, id uuid.UUID, input UpdateTagInput) (*Tag, error) {
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != tag.Name {
		if _, err := s.repo.FindByName(ctx, *input.Name); err == nil {
			return nil, ErrTagNameTaken
		} else if !errors.Is(err, ErrTagNotFound) {
			return nil, err
		}
		tag.Name = *input.Name
	}
	if input.Color != nil {
		tag.Color = *input.Color
	}

	if err := tag.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, tag); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTagNameTaken
		}
		return nil, err
	}
	return tag, nil
}

func (s *service) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) AttachTag(ctx context.Context, tagID, taskID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, tagID); err != nil {
		return err
	}
	exists, err := s.repo.TaskExists(ctx, taskID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTaskNotFound
	}
	if err := s.repo.AttachToTask(ctx, tagID, taskID); err != nil {
		return err
	}
	s.logger.Info("tag attached",
		zap.String("tag_id", tagID.String()),
		zap.String("task_id", taskID.String()))
	return nil
}

func (s *service) DetachTag(ctx context.Context, tagID, taskID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, tagID); err != nil {
		return err
	}
	exists, err := s.repo.TaskExists(ctx, taskID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTaskNotFound
	}
	return s.repo.DetachFromTask(ctx, tagID, taskID)
}
