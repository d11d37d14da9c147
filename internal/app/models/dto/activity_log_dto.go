package dto

import "github.com/yigit/schoolhub/internal/app/models"

// ActivityLogQuery binds the activity log filters
type ActivityLogQuery struct {
	UserID    int64       `form:"userId" binding:"omitempty,gt=0"`
	UserRole  models.Role `form:"userRole"`
	Module    string      `form:"module"`
	Action    string      `form:"action"`
	StartDate string      `form:"startDate"`
	EndDate   string      `form:"endDate"`
}

// ActivityLogListResponse is one page of activity log entries
type ActivityLogListResponse struct {
	Success    bool                 `json:"success" example:"true"`
	Logs       []models.ActivityLog `json:"logs"`
	Pagination Pagination           `json:"pagination"`
}

// ActivityLogResponse wraps one entry
type ActivityLogResponse struct {
	Success bool                `json:"success" example:"true"`
	Log     *models.ActivityLog `json:"log"`
}
