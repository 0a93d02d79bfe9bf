package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taskflow-dev/taskflow/internal/domain/project"
	"github.com/taskflow-dev/taskflow/internal/domain/task"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

type mockRepository struct {
	statusByProject  map[uuid.UUID]map[task.TaskStatus]int64
	statusByAssignee map[uuid.UUID]map[task.TaskStatus]int64
	statusGlobal     map[task.TaskStatus]int64
	byPriority       map[string]int64
	byProjectName    map[string]int64
	overdueGlobal    int64
	overdueByProject map[uuid.UUID]int64
	hoursByUser      map[uuid.UUID]int64
	upcoming         []task.Task
	overdueTasks     []task.Task
	trend            []TrendPoint
}

func (m *mockRepository) CountByStatusForProject(_ context.Context, projectID uuid.UUID) (map[task.TaskStatus]int64, error) {
	return m.statusByProject[projectID], nil
}

func (m *mockRepository) CountByStatusForAssignee(_ context.Context, userID uuid.UUID) (map[task.TaskStatus]int64, error) {
	return m.statusByAssignee[userID], nil
}

func (m *mockRepository) CountByStatus(_ context.Context) (map[task.TaskStatus]int64, error) {
	return m.statusGlobal, nil
}

func (m *mockRepository) CountByPriority(_ context.Context) (map[string]int64, error) {
	return m.byPriority, nil
}

func (m *mockRepository) CountByProjectName(_ context.Context) (map[string]int64, error) {
	return m.byProjectName, nil
}

func (m *mockRepository) CountOverdue(_ context.Context, _ time.Time, projectID *uuid.UUID) (int64, error) {
	if projectID != nil {
		return m.overdueByProject[*projectID], nil
	}
	return m.overdueGlobal, nil
}

func (m *mockRepository) SumHoursAllocated(_ context.Context, userID uuid.UUID) (int64, error) {
	return m.hoursByUser[userID], nil
}

func (m *mockRepository) FindUpcomingDetailed(_ context.Context, _ time.Time, _, limit int) ([]task.Task, error) {
	if len(m.upcoming) > limit {
		return m.upcoming[:limit], nil
	}
	return m.upcoming, nil
}

func (m *mockRepository) FindOverdueDetailed(_ context.Context, _ time.Time) ([]task.Task, error) {
	return m.overdueTasks, nil
}

func (m *mockRepository) FindCreatedBetween(_ context.Context, _, _ time.Time) ([]task.Task, error) {
	return nil, nil
}

func (m *mockRepository) CompletionCountsByDay(_ context.Context, _ time.Time) ([]TrendPoint, error) {
	return m.trend, nil
}

type mockProjectRepository struct {
	projects map[uuid.UUID]*project.Project
}

func (m *mockProjectRepository) Create(_ context.Context, p *project.Project) error {
	m.projects[p.ID] = p
	return nil
}

func (m *mockProjectRepository) FindByID(_ context.Context, id uuid.UUID) (*project.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, project.ErrProjectNotFound
	}
	return p, nil
}

func (m *mockProjectRepository) FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	return m.FindByID(ctx, id)
}

func (m *mockProjectRepository) FindAll(_ context.Context, _ project.ProjectFilter) ([]project.Project, int64, error) {
	return nil, 0, nil
}

func (m *mockProjectRepository) CountTasks(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (m *mockProjectRepository) Update(_ context.Context, _ *project.Project) error {
	return nil
}

func (m *mockProjectRepository) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

type mockUserRepository struct {
	users map[uuid.UUID]*user.User
}

func (m *mockUserRepository) Create(_ context.Context, u *user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) FindByEmail(_ context.Context, _ string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) FindByUsername(_ context.Context, _ string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) FindAll(_ context.Context, _ user.UserFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepository) Update(_ context.Context, _ *user.User) error {
	return nil
}

func (m *mockUserRepository) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func newTestService(repo *mockRepository, projectRepo *mockProjectRepository, userRepo *mockUserRepository) Service {
	return &service{
		repo:        repo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		logger:      zap.NewNop(),
		now:         func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestGetProjectAnalytics(t *testing.T) {
	projectID := uuid.New()
	repo := &mockRepository{
		statusByProject: map[uuid.UUID]map[task.TaskStatus]int64{
			projectID: {
				task.StatusCompleted:  3,
				task.StatusPending:    5,
				task.StatusInProgress: 2,
			},
		},
		overdueByProject: map[uuid.UUID]int64{projectID: 4},
	}
	projectRepo := &mockProjectRepository{projects: map[uuid.UUID]*project.Project{
		projectID: {ID: projectID, Name: "Apollo"},
	}}
	userRepo := &mockUserRepository{users: make(map[uuid.UUID]*user.User)}
	svc := newTestService(repo, projectRepo, userRepo)

	stats, err := svc.GetProjectAnalytics(context.Background(), projectID)
	require.NoError(t, err)
	assert.Equal(t, "Apollo", stats.ProjectName)
	assert.EqualValues(t, 10, stats.TotalTasks)
	assert.EqualValues(t, 3, stats.CompletedTasks)
	assert.EqualValues(t, 5, stats.PendingTasks)
	assert.EqualValues(t, 2, stats.InProgressTasks)
	assert.EqualValues(t, 4, stats.OverdueTasks)
	assert.InDelta(t, 30.0, stats.CompletionPercentage, 0.001)
}

func TestGetProjectAnalyticsEmptyProject(t *testing.T) {
	projectID := uuid.New()
	repo := &mockRepository{
		statusByProject:  map[uuid.UUID]map[task.TaskStatus]int64{},
		overdueByProject: map[uuid.UUID]int64{},
	}
	projectRepo := &mockProjectRepository{projects: map[uuid.UUID]*project.Project{
		projectID: {ID: projectID, Name: "Empty"},
	}}
	userRepo := &mockUserRepository{users: make(map[uuid.UUID]*user.User)}
	svc := newTestService(repo, projectRepo, userRepo)

	stats, err := svc.GetProjectAnalytics(context.Background(), projectID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.TotalTasks)
	assert.Equal(t, 0.0, stats.CompletionPercentage)
}

func TestGetProjectAnalyticsUnknownProject(t *testing.T) {
	repo := &mockRepository{}
	projectRepo := &mockProjectRepository{projects: make(map[uuid.UUID]*project.Project)}
	userRepo := &mockUserRepository{users: make(map[uuid.UUID]*user.User)}
	svc := newTestService(repo, projectRepo, userRepo)

	_, err := svc.GetProjectAnalytics(context.Background(), uuid.New())
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestGetUserWorkload(t *testing.T) {
	userID := uuid.New()
	repo := &mockRepository{
		statusByAssignee: map[uuid.UUID]map[task.TaskStatus]int64{
			userID: {
				task.StatusCompleted:  2,
				task.StatusInProgress: 1,
			},
		},
		hoursByUser: map[uuid.UUID]int64{userID: 24},
	}
	projectRepo := &mockProjectRepository{projects: make(map[uuid.UUID]*project.Project)}
	userRepo := &mockUserRepository{users: map[uuid.UUID]*user.User{
		userID: {ID: userID, Username: "dev"},
	}}
	svc := newTestService(repo, projectRepo, userRepo)

	workload, err := svc.GetUserWorkload(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "dev", workload.Username)
	assert.EqualValues(t, 3, workload.AssignedTasks)
	assert.EqualValues(t, 2, workload.CompletedTasks)
	assert.EqualValues(t, 24, workload.TotalHoursAllocated)
}

func TestGetTaskDashboard(t *testing.T) {
	repo := &mockRepository{
		statusGlobal: map[task.TaskStatus]int64{
			task.StatusPending:    4,
			task.StatusInProgress: 2,
			task.StatusCompleted:  6,
		},
		byPriority:    map[string]int64{"high": 3, "medium": 9},
		byProjectName: map[string]int64{"Apollo": 12},
		overdueGlobal: 1,
		upcoming:      []task.Task{{Title: "Soon"}},
	}
	projectRepo := &mockProjectRepository{projects: make(map[uuid.UUID]*project.Project)}
	userRepo := &mockUserRepository{users: make(map[uuid.UUID]*user.User)}
	svc := newTestService(repo, projectRepo, userRepo)

	dashboard, err := svc.GetTaskDashboard(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, dashboard.PendingCount)
	assert.EqualValues(t, 2, dashboard.InProgressCount)
	assert.EqualValues(t, 6, dashboard.CompletedCount)
	assert.EqualValues(t, 1, dashboard.OverdueCount)
	assert.EqualValues(t, 3, dashboard.TotalByPriority["high"])
	assert.EqualValues(t, 12, dashboard.TotalByProject["Apollo"])
	require.Len(t, dashboard.UpcomingTasks, 1)
}

func TestGetCompletionTrendDefaultWindow(t *testing.T) {
	repo := &mockRepository{
		trend: []TrendPoint{{Date: "2025-05-30", Count: 2}, {Date: "2025-05-31", Count: 5}},
	}
	projectRepo := &mockProjectRepository{projects: make(map[uuid.UUID]*project.Project)}
	userRepo := &mockUserRepository{users: make(map[uuid.UUID]*user.User)}
	svc := newTestService(repo, projectRepo, userRepo)

	trend, err := svc.GetCompletionTrend(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, "2025-05-30", trend[0].Date)
	assert.EqualValues(t, 5, trend[1].Count)
}
