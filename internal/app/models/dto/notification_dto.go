package dto

import "github.com/yigit/schoolhub/internal/app/models"

// NotificationListResponse is the caller's newest notifications
type NotificationListResponse struct {
	Success       bool                  `json:"success" example:"true"`
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount" example:"3"`
}

// NotificationResponse wraps a single notification
type NotificationResponse struct {
	Success      bool                 `json:"success" example:"true"`
	Notification *models.Notification `json:"notification"`
}
