package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskflow-dev/taskflow/internal/domain/analytics"
	"github.com/taskflow-dev/taskflow/internal/domain/project"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

// AnalyticsHandler handles HTTP requests for reporting endpoints
type AnalyticsHandler struct {
	service analytics.Service
}

// NewAnalyticsHandler creates a new AnalyticsHandler instance
func NewAnalyticsHandler(service analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func analyticsErrorStatus(err error) int {
	switch {
	case errors.Is(err, project.ErrProjectNotFound), errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetDashboard godoc
// @Summary Task dashboard
// @Description Aggregate task counts by status, priority and project, plus overdue count and the next upcoming tasks
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.DashboardResponse "Dashboard data"
// @Router /api/analytics/dashboard [get]
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.GetTaskDashboard(c.Request.Context())
	if err != nil {
		c.JSON(analyticsErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": DashboardToResponse(dashboard)})
}

// GetProjectAnalytics godoc
// @Summary Project analytics
// @Description Per-project task totals, status breakdown, overdue count and completion percentage
// @Tags analytics
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} dto.ProjectAnalyticsResponse "Project analytics"
// @Failure 404 {object} map[string]string "Project not found"
// @Router /api/analytics/project/{id} [get]
func (h *AnalyticsHandler) GetProjectAnalytics(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	result, err := h.service.GetProjectAnalytics(c.Request.Context(), id)
	if err != nil {
		c.JSON(analyticsErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ProjectAnalyticsToResponse(result)})
}

// GetUserWorkload godoc
// @Summary User workload
// @Description Assigned task counts by status and total allocated hours for a user
// @Tags analytics
// @Produce json
// @Param id path string true "User ID" format(uuid)
// @Success 200 {object} dto.UserWorkloadResponse "User workload"
// @Failure 404 {object} map[string]string "User not found"
// @Router /api/analytics/user/{id} [get]
func (h *AnalyticsHandler) GetUserWorkload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	workload, err := h.service.GetUserWorkload(c.Request.Context(), id)
	if err != nil {
		c.JSON(analyticsErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": UserWorkloadToResponse(workload)})
}

// GetOverdueTasks godoc
// @Summary Overdue task report
// @Description Overdue tasks with their project and assignee loaded
// @Tags analytics
// @Produce json
// @Success 200 {object} []dto.TaskResponse "Overdue tasks"
// @Router /api/analytics/overdue-tasks [get]
func (h *AnalyticsHandler) GetOverdueTasks(c *gin.Context) {
	tasks, err := h.service.GetOverdueTasks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TasksToResponse(tasks)})
}

// GetTasksByDateRange godoc
// @Summary Tasks created in a date range
// @Tags analytics
// @Produce json
// @Param start query string true "Range start (RFC 3339)"
// @Param end query string true "Range end (RFC 3339)"
// @Success 200 {object} []dto.TaskResponse "Tasks created in range"
// @Failure 400 {object} map[string]string "Invalid date"
// @Router /api/analytics/tasks-by-date-range [get]
func (h *AnalyticsHandler) GetTasksByDateRange(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
		return
	}

	tasks, err := h.service.GetTasksByDateRange(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TasksToResponse(tasks)})
}

// GetCompletionTrend godoc
// @Summary Completion trend
// @Description Daily counts of completed tasks over the last N days (default 30)
// @Tags analytics
// @Produce json
// @Param days query int false "Window in days" default(30)
// @Success 200 {object} []dto.TrendPointResponse "Completion trend"
// @Router /api/analytics/completion-trend [get]
func (h *AnalyticsHandler) GetCompletionTrend(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	points, err := h.service.GetCompletionTrend(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TrendToResponse(points)})
}
