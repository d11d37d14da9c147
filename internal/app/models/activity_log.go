package models

import "time"

// Activity log modules
const (
	ModuleStudent      = "STUDENT"
	ModuleAcademicYear = "ACADEMIC_YEAR"
	ModuleClass        = "CLASS"
	ModuleAuth         = "AUTH"
	ModuleUser         = "USER"
)

// Activity log actions
const (
	ActionCreate      = "CREATE"
	ActionUpdate      = "UPDATE"
	ActionDelete      = "DELETE"
	ActionBulkUpload  = "BULK_UPLOAD"
	ActionBulkUpdate  = "BULK_UPDATE"
	ActionPromote     = "PROMOTE"
	ActionBulkPromote = "BULK_PROMOTE"
	ActionGraduate    = "GRADUATE"
	ActionTransfer    = "TRANSFER"
	ActionLogin       = "LOGIN"
	ActionLogout      = "LOGOUT"
	ActionActivate    = "ACTIVATE"
	ActionDeactivate  = "DEACTIVATE"
)

// ActivityLog is one audit entry. Metadata is free-form.
type ActivityLog struct {
	ID          string                 `json:"id"`
	UserID      int64                  `json:"userId"`
	UserRole    Role                   `json:"userRole"`
	Action      string                 `json:"action"`
	Module      string                 `json:"module"`
	Description string                 `json:"description"`
	IPAddress   string                 `json:"ipAddress,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// ActivityLogFilter narrows an activity log listing
type ActivityLogFilter struct {
	UserID    int64
	UserRole  Role
	Module    string
	Action    string
	StartDate *time.Time
	EndDate   *time.Time
}
