package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow-dev/taskflow/internal/domain/task"
	"github.com/taskflow-dev/taskflow/internal/infrastructure/persistence/postgres/connection"
)

// AnalyticsRepository defines the aggregate queries behind the reporting endpoints
type AnalyticsRepository interface {
	CountByStatusForProject(ctx context.Context, projectID uuid.UUID) (map[task.TaskStatus]int64, error)
	CountByStatusForAssignee(ctx context.Context, userID uuid.UUID) (map[task.TaskStatus]int64, error)
	CountByStatus(ctx context.Context) (map[task.TaskStatus]int64, error)
	CountByPriority(ctx context.Context) (map[string]int64, error)
	CountByProjectName(ctx context.Context) (map[string]int64, error)
	CountOverdue(ctx context.Context, now time.Time, projectID *uuid.UUID) (int64, error)
	SumHoursAllocated(ctx context.Context, userID uuid.UUID) (int64, error)
	FindUpcomingDetailed(ctx context.Context, now time.Time, days, limit int) ([]task.Task, error)
	FindOverdueDetailed(ctx context.Context, now time.Time) ([]task.Task, error)
	FindCreatedBetween(ctx context.Context, start, end time.Time) ([]task.Task, error)
	CompletionCountsByDay(ctx context.Context, since time.Time) ([]TrendPoint, error)
}

type statusCount struct {
	Status task.TaskStatus
	Count  int64
}

type labelCount struct {
	Label string
	Count int64
}

type gormAnalyticsRepository struct {
	db *connection.Database
}

// NewAnalyticsRepository creates a new analytics repository backed by Postgres
func NewAnalyticsRepository(db *connection.Database) AnalyticsRepository {
	return &gormAnalyticsRepository{db: db}
}

func (r *gormAnalyticsRepository) countByStatus(ctx context.Context, where string, args ...interface{}) (map[task.TaskStatus]int64, error) {
	var rows []statusCount
	query := r.db.WithContext(ctx).Model(&task.Task{}).
		Select("status, count(id) as count").
		Group("status")
	if where != "" {
		query = query.Where(where, args...)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[task.TaskStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *gormAnalyticsRepository) CountByStatusForProject(ctx context.Context, projectID uuid.UUID) (map[task.TaskStatus]int64, error) {
	return r.countByStatus(ctx, "project_id = ?", projectID)
}

func (r *gormAnalyticsRepository) CountByStatusForAssignee(ctx context.Context, userID uuid.UUID) (map[task.TaskStatus]int64, error) {
	return r.countByStatus(ctx, "assigned_to = ?", userID)
}

func (r *gormAnalyticsRepository) CountByStatus(ctx context.Context) (map[task.TaskStatus]int64, error) {
	return r.countByStatus(ctx, "")
}

func (r *gormAnalyticsRepository) CountByPriority(ctx context.Context) (map[string]int64, error) {
	var rows []labelCount
	err := r.db.WithContext(ctx).Model(&task.Task{}).
		Select("priority as label, count(id) as count").
		Group("priority").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Label] = row.Count
	}
	return out, nil
}

func (r *gormAnalyticsRepository) CountByProjectName(ctx context.Context) (map[string]int64, error) {
	var rows []labelCount
	err := r.db.WithContext(ctx).Model(&task.Task{}).
		Select("projects.name as label, count(tasks.id) as count").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Group("projects.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Label] = row.Count
	}
	return out, nil
}

func (r *gormAnalyticsRepository) CountOverdue(ctx context.Context, now time.Time, projectID *uuid.UUID) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&task.Task{}).
		Where("due_date < ?", now).
		Where("status NOT IN ?", []task.TaskStatus{task.StatusCompleted, task.StatusCancelled})
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *gormAnalyticsRepository) SumHoursAllocated(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).Table("task_assignments").
		Select("sum(hours_allocated)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *gormAnalyticsRepository) FindUpcomingDetailed(ctx context.Context, now time.Time, days, limit int) ([]task.Task, error) {
	var tasks []task.Task
	horizon := now.AddDate(0, 0, days)
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Assignee").
		Where("due_date BETWEEN ? AND ?", now, horizon).
		Where("status <> ?", task.StatusCompleted).
		Order("due_date ASC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *gormAnalyticsRepository) FindOverdueDetailed(ctx context.Context, now time.Time) ([]task.Task, error) {
	var tasks []task.Task
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Assignee").
		Where("due_date < ?", now).
		Where("status NOT IN ?", []task.TaskStatus{task.StatusCompleted, task.StatusCancelled}).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *gormAnalyticsRepository) FindCreatedBetween(ctx context.Context, start, end time.Time) ([]task.Task, error) {
	var tasks []task.Task
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Assignee").
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *gormAnalyticsRepository) CompletionCountsByDay(ctx context.Context, since time.Time) ([]TrendPoint, error) {
	var rows []TrendPoint
	err := r.db.WithContext(ctx).Model(&task.Task{}).
		Select("to_char(date(completed_at), 'YYYY-MM-DD') as date, count(id) as count").
		Where("completed_at IS NOT NULL").
		Where("completed_at >= ?", since).
		Group("date(completed_at)").
		Order("date(completed_at)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
