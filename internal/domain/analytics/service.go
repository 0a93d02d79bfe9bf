package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskflow-dev/taskflow/internal/domain/project"
	"github.com/taskflow-dev/taskflow/internal/domain/task"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

const (
	// DefaultTrendDays is the completion trend window when none is given
	DefaultTrendDays = 30

	upcomingWindowDays = 7
	upcomingLimit      = 10
)

// Service defines the reporting operations
type Service interface {
	GetTaskDashboard(ctx context.Context) (*TaskDashboard, error)
	GetProjectAnalytics(ctx context.Context, projectID uuid.UUID) (*ProjectAnalytics, error)
	GetUserWorkload(ctx context.Context, userID uuid.UUID) (*UserWorkload, error)
	GetOverdueTasks(ctx context.Context) ([]task.Task, error)
	GetTasksByDateRange(ctx context.Context, start, end time.Time) ([]task.Task, error)
	GetCompletionTrend(ctx context.Context, days int) ([]TrendPoint, error)
}

type service struct {
	repo        AnalyticsRepository
	projectRepo project.ProjectRepository
	userRepo    user.UserRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a new analytics service
func NewService(repo AnalyticsRepository, projectRepo project.ProjectRepository, userRepo user.UserRepository, logger *zap.Logger) Service {
	return &service{
		repo:        repo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *service) GetTaskDashboard(ctx context.Context) (*TaskDashboard, error) {
	now := s.now()

	statusCounts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	priorityCounts, err := s.repo.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}
	projectCounts, err := s.repo.CountByProjectName(ctx)
	if err != nil {
		return nil, err
	}
	overdue, err := s.repo.CountOverdue(ctx, now, nil)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.repo.FindUpcomingDetailed(ctx, now, upcomingWindowDays, upcomingLimit)
	if err != nil {
		return nil, err
	}

	return &TaskDashboard{
		PendingCount:    statusCounts[task.StatusPending],
		InProgressCount: statusCounts[task.StatusInProgress],
		CompletedCount:  statusCounts[task.StatusCompleted],
		OverdueCount:    overdue,
		TotalByPriority: priorityCounts,
		TotalByProject:  projectCounts,
		UpcomingTasks:   upcoming,
	}, nil
}

func (s *service) GetProjectAnalytics(ctx context.Context, projectID uuid.UUID) (*ProjectAnalytics, error) {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	statusCounts, err := s.repo.CountByStatusForProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	overdue, err := s.repo.CountOverdue(ctx, s.now(), &projectID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range statusCounts {
		total += count
	}
	completed := statusCounts[task.StatusCompleted]

	var completion float64
	if total > 0 {
		completion = float64(completed) / float64(total) * 100
	}

	return &ProjectAnalytics{
		ProjectID:            projectID,
		ProjectName:          proj.Name,
		TotalTasks:           total,
		CompletedTasks:       completed,
		PendingTasks:         statusCounts[task.StatusPending],
		InProgressTasks:      statusCounts[task.StatusInProgress],
		OverdueTasks:         overdue,
		CompletionPercentage: completion,
	}, nil
}

func (s *service) GetUserWorkload(ctx context.Context, userID uuid.UUID) (*UserWorkload, error) {
	usr, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	statusCounts, err := s.repo.CountByStatusForAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}
	hours, err := s.repo.SumHoursAllocated(ctx, userID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range statusCounts {
		total += count
	}

	return &UserWorkload{
		UserID:              userID,
		Username:            usr.Username,
		AssignedTasks:       total,
		CompletedTasks:      statusCounts[task.StatusCompleted],
		PendingTasks:        statusCounts[task.StatusPending],
		InProgressTasks:     statusCounts[task.StatusInProgress],
		TotalHoursAllocated: hours,
	}, nil
}

func (s *service) GetOverdueTasks(ctx context.Context) ([]task.Task, error) {
	return s.repo.FindOverdueDetailed(ctx, s.now())
}

func (s *service) GetTasksByDateRange(ctx context.Context, start, end time.Time) ([]task.Task, error) {
	return s.repo.FindCreatedBetween(ctx, start, end)
}

func (s *service) GetCompletionTrend(ctx context.Context, days int) ([]TrendPoint, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}
	since := s.now().AddDate(0, 0, -days)
	return s.repo.CompletionCountsByDay(ctx, since)
}
