package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
	"go.uber.org/zap"
)

type Service interface {
	CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	GetProjectDetails(ctx context.Context, id uuid.UUID) (*ProjectDetails, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, int64, error)
	ListActiveProjects(ctx context.Context, filter ProjectFilter) ([]Project, int64, error)
	GetProjectsByOwner(ctx context.Context, ownerID uuid.UUID, filter ProjectFilter) ([]Project, int64, error)
	UpdateProject(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*Project, error)
	DeactivateProject(ctx context.Context, id uuid.UUID) (*Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type CreateProjectInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
	IsActive    *bool     `json:"is_active,omitempty"`
}

type UpdateProjectInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ProjectDetails bundles a project with its owner and task count
type ProjectDetails struct {
	Project
	TaskCount int64 `json:"task_count"`
}

type service struct {
	repo     ProjectRepository
	userRepo user.UserRepository
	logger   *zap.Logger
}

func NewService(repo ProjectRepository, userRepo user.UserRepository, logger *zap.Logger) Service {
	return &service{repo: repo, userRepo: userRepo, logger: logger}
}

func (s *service) CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error) {
	if input.Name == "" || input.OwnerID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	if _, err := s.userRepo.FindByID(ctx, input.OwnerID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	project := &Project{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
		IsActive:    isActive,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("owner_id", project.OwnerID.String()))

	return project, nil
}

func (s *service) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetProjectDetails(ctx context.Context, id uuid.UUID) (*ProjectDetails, error) {
	project, err := s.repo.FindByIDWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}

	taskCount, err := s.repo.CountTasks(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ProjectDetails{
		Project:   *project,
		TaskCount: taskCount,
	}, nil
}

func (s *service) ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) ListActiveProjects(ctx context.Context, filter ProjectFilter) ([]Project, int64, error) {
	active := true
	filter.IsActive = &active
	return s.repo.FindAll(ctx, filter)
}

func (s *service) GetProjectsByOwner(ctx context.Context, ownerID uuid.UUID, filter ProjectFilter) ([]Project, int64, error) {
	filter.OwnerID = &ownerID
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateProject(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrInvalidInput
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.IsActive != nil {
		project.IsActive = *input.IsActive
	}

	project.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *service) DeactivateProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project.IsActive = false
	project.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("Project deactivated", zap.String("project_id", id.String()))

	return project, nil
}

func (s *service) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
