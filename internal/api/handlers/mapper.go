package handlers

import (
	"github.com/taskflow-dev/taskflow/internal/api/dto"
	"github.com/taskflow-dev/taskflow/internal/domain/analytics"
	"github.com/taskflow-dev/taskflow/internal/domain/assignment"
	"github.com/taskflow-dev/taskflow/internal/domain/comment"
	"github.com/taskflow-dev/taskflow/internal/domain/project"
	"github.com/taskflow-dev/taskflow/internal/domain/tag"
	"github.com/taskflow-dev/taskflow/internal/domain/task"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

// Users
func UserToResponse(u *user.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Projects
func ProjectToResponse(p *project.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	return &dto.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Owner:       UserToResponse(p.Owner),
	}
}

// Tasks
func TaskToResponse(t *task.Task) *dto.TaskResponse {
	if t == nil {
		return nil
	}
	return &dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		ProjectID:   t.ProjectID,
		AssignedTo:  t.AssignedTo,
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func TasksToResponse(tasks []task.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, *TaskToResponse(&tasks[i]))
	}
	return out
}

// TaskToDetailResponse maps a task with preloaded relations plus its
// assignments and comments fetched separately.
func TaskToDetailResponse(t *task.Task, assignments []assignment.TaskAssignment, comments []comment.TaskComment) *dto.TaskDetailResponse {
	if t == nil {
		return nil
	}
	detail := &dto.TaskDetailResponse{
		TaskResponse: *TaskToResponse(t),
		Project:      ProjectToResponse(t.Project),
		Assignee:     UserToResponse(t.Assignee),
		Tags:         make([]dto.TagResponse, 0, len(t.Tags)),
		Assignments:  make([]dto.AssignmentResponse, 0, len(assignments)),
		Comments:     make([]dto.CommentResponse, 0, len(comments)),
	}
	for i := range t.Tags {
		detail.Tags = append(detail.Tags, *TagToResponse(&t.Tags[i]))
	}
	for i := range assignments {
		detail.Assignments = append(detail.Assignments, *AssignmentToResponse(&assignments[i]))
	}
	for i := range comments {
		detail.Comments = append(detail.Comments, *CommentToResponse(&comments[i]))
	}
	return detail
}

// Tags
func TagToResponse(t *tag.Tag) *dto.TagResponse {
	if t == nil {
		return nil
	}
	return &dto.TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func TagsToResponse(tags []tag.Tag) []dto.TagResponse {
	out := make([]dto.TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, *TagToResponse(&tags[i]))
	}
	return out
}

// Assignments
func AssignmentToResponse(a *assignment.TaskAssignment) *dto.AssignmentResponse {
	if a == nil {
		return nil
	}
	return &dto.AssignmentResponse{
		ID:             a.ID,
		TaskID:         a.TaskID,
		UserID:         a.UserID,
		AssignedBy:     a.AssignedBy,
		AssignedAt:     a.AssignedAt,
		HoursAllocated: a.HoursAllocated,
		User:           UserToResponse(a.User),
		Task:           TaskToResponse(a.Task),
	}
}

func AssignmentsToResponse(assignments []assignment.TaskAssignment) []dto.AssignmentResponse {
	out := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, *AssignmentToResponse(&assignments[i]))
	}
	return out
}

// Comments
func CommentToResponse(c *comment.TaskComment) *dto.CommentResponse {
	if c == nil {
		return nil
	}
	return &dto.CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		CreatedBy: c.CreatedBy,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Author:    UserToResponse(c.Author),
	}
}

func CommentsToResponse(comments []comment.TaskComment) []dto.CommentResponse {
	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, *CommentToResponse(&comments[i]))
	}
	return out
}

// Analytics
func ProjectAnalyticsToResponse(a *analytics.ProjectAnalytics) *dto.ProjectAnalyticsResponse {
	if a == nil {
		return nil
	}
	return &dto.ProjectAnalyticsResponse{
		ProjectID:            a.ProjectID,
		ProjectName:          a.ProjectName,
		TotalTasks:           a.TotalTasks,
		CompletedTasks:       a.CompletedTasks,
		PendingTasks:         a.PendingTasks,
		InProgressTasks:      a.InProgressTasks,
		OverdueTasks:         a.OverdueTasks,
		CompletionPercentage: a.CompletionPercentage,
	}
}

func UserWorkloadToResponse(w *analytics.UserWorkload) *dto.UserWorkloadResponse {
	if w == nil {
		return nil
	}
	return &dto.UserWorkloadResponse{
		UserID:              w.UserID,
		Username:            w.Username,
		AssignedTasks:       w.AssignedTasks,
		CompletedTasks:      w.CompletedTasks,
		PendingTasks:        w.PendingTasks,
		InProgressTasks:     w.InProgressTasks,
		TotalHoursAllocated: w.TotalHoursAllocated,
	}
}

func DashboardToResponse(d *analytics.TaskDashboard) *dto.DashboardResponse {
	if d == nil {
		return nil
	}
	return &dto.DashboardResponse{
		PendingCount:    d.PendingCount,
		InProgressCount: d.InProgressCount,
		CompletedCount:  d.CompletedCount,
		OverdueCount:    d.OverdueCount,
		TotalByPriority: d.TotalByPriority,
		TotalByProject:  d.TotalByProject,
		UpcomingTasks:   TasksToResponse(d.UpcomingTasks),
	}
}

func TrendToResponse(points []analytics.TrendPoint) []dto.TrendPointResponse {
	out := make([]dto.TrendPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.TrendPointResponse{Date: p.Date, Count: p.Count})
	}
	return out
}
