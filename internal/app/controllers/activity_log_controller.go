package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/services"
	"github.com/yigit/schoolhub/internal/middleware"
	"github.com/yigit/schoolhub/internal/pkg/helpers"
)

// ActivityLogPageSize is the default page size of the activity log listing
const ActivityLogPageSize = 20

// ActivityLogController exposes the audit trail
type ActivityLogController struct {
	activityService services.ActivityService
	logger          zerolog.Logger
}

// NewActivityLogController creates a new ActivityLogController
func NewActivityLogController(activityService services.ActivityService, logger zerolog.Logger) *ActivityLogController {
	return &ActivityLogController{activityService: activityService, logger: logger}
}

// ListActivityLogs returns one page of the activity log, newest first
// @Summary List activity logs
// @Tags activity-logs
// @Produce json
// @Security BearerAuth
// @Param userId query int false "User ID"
// @Param userRole query string false "User role"
// @Param module query string false "Module" Enums(AUTH, STUDENT, ACADEMIC_YEAR)
// @Param action query string false "Action"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.ActivityLogListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filters"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /activity-logs [get]
func (c *ActivityLogController) ListActivityLogs(ctx *gin.Context) {
	var query dto.ActivityLogQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	page, limit := helpers.ParsePaginationParams(ctx, ActivityLogPageSize)

	logs, pagination, err := c.activityService.List(ctx.Request.Context(), query, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ActivityLogListResponse{Success: true, Logs: logs, Pagination: pagination})
}

// GetActivityLog returns a single activity log entry
// @Summary Get an activity log entry
// @Tags activity-logs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity log ID"
// @Success 200 {object} dto.ActivityLogResponse
// @Failure 404 {object} dto.ErrorResponse "Activity log not found"
// @Router /activity-log/{id} [get]
func (c *ActivityLogController) GetActivityLog(ctx *gin.Context) {
	entry, err := c.activityService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ActivityLogResponse{Success: true, Log: entry})
}
