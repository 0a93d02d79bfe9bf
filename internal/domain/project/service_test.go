package project

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
	"go.uber.org/zap"
)

// Mock repositories for testing
type mockRepository struct {
	projects  map[uuid.UUID]*Project
	taskCount map[uuid.UUID]int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		projects:  make(map[uuid.UUID]*Project),
		taskCount: make(map[uuid.UUID]int64),
	}
}

func (m *mockRepository) Create(ctx context.Context, project *Project) error {
	m.projects[project.ID] = project
	return nil
}

func (m *mockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	if p, ok := m.projects[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, ErrProjectNotFound
}

func (m *mockRepository) FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*Project, error) {
	return m.FindByID(ctx, id)
}

func (m *mockRepository) FindAll(ctx context.Context, filter ProjectFilter) ([]Project, int64, error) {
	var out []Project
	for _, p := range m.projects {
		if filter.OwnerID != nil && p.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.IsActive != nil && p.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (m *mockRepository) CountTasks(ctx context.Context, projectID uuid.UUID) (int64, error) {
	return m.taskCount[projectID], nil
}

func (m *mockRepository) Update(ctx context.Context, project *Project) error {
	if _, ok := m.projects[project.ID]; !ok {
		return ErrProjectNotFound
	}
	m.projects[project.ID] = project
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.projects[id]; !ok {
		return ErrProjectNotFound
	}
	delete(m.projects, id)
	return nil
}

type mockUserRepository struct {
	users map[uuid.UUID]*user.User
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) FindAll(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func newTestService() (Service, *mockRepository, *user.User) {
	repo := newMockRepository()
	owner := &user.User{ID: uuid.New(), Email: "owner@example.com", Username: "owner", IsActive: true}
	userRepo := &mockUserRepository{users: map[uuid.UUID]*user.User{owner.ID: owner}}
	return NewService(repo, userRepo, zap.NewNop()), repo, owner
}

func TestCreateProject(t *testing.T) {
	svc, _, owner := newTestService()

	created, err := svc.CreateProject(context.Background(), CreateProjectInput{
		Name:        "Website Redesign",
		Description: "Refresh the marketing site",
		OwnerID:     owner.ID,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, owner.ID, created.OwnerID)
}

func TestCreateProjectUnknownOwner(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateProject(context.Background(), CreateProjectInput{
		Name:    "Orphan",
		OwnerID: uuid.New(),
	})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestCreateProjectMissingName(t *testing.T) {
	svc, _, owner := newTestService()

	_, err := svc.CreateProject(context.Background(), CreateProjectInput{OwnerID: owner.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetProjectDetails(t *testing.T) {
	svc, repo, owner := newTestService()
	ctx := context.Background()

	created, err := svc.CreateProject(ctx, CreateProjectInput{Name: "Counted", OwnerID: owner.ID})
	require.NoError(t, err)
	repo.taskCount[created.ID] = 7

	details, err := svc.GetProjectDetails(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), details.TaskCount)
	assert.Equal(t, "Counted", details.Name)
}

func TestDeactivateProject(t *testing.T) {
	svc, repo, owner := newTestService()
	ctx := context.Background()

	created, err := svc.CreateProject(ctx, CreateProjectInput{Name: "Soft", OwnerID: owner.ID})
	require.NoError(t, err)

	deactivated, err := svc.DeactivateProject(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
	assert.Contains(t, repo.projects, created.ID, "soft delete must keep the row")
}

func TestDeleteProject(t *testing.T) {
	svc, repo, owner := newTestService()
	ctx := context.Background()

	created, err := svc.CreateProject(ctx, CreateProjectInput{Name: "Hard", OwnerID: owner.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProject(ctx, created.ID))
	assert.NotContains(t, repo.projects, created.ID)

	err = svc.DeleteProject(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestListActiveProjects(t *testing.T) {
	svc, _, owner := newTestService()
	ctx := context.Background()

	a, err := svc.CreateProject(ctx, CreateProjectInput{Name: "Active", OwnerID: owner.ID})
	require.NoError(t, err)
	b, err := svc.CreateProject(ctx, CreateProjectInput{Name: "Inactive", OwnerID: owner.ID})
	require.NoError(t, err)

	_, err = svc.DeactivateProject(ctx, b.ID)
	require.NoError(t, err)

	projects, total, err := svc.ListActiveProjects(ctx, ProjectFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, projects, 1)
	assert.Equal(t, a.ID, projects[0].ID)
}
