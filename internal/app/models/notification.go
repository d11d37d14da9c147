package models

import "time"

// Notification is a message addressed to a single user
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"userId" db:"user_id"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Type      NotificationType `json:"type" db:"type"`
	IsRead    bool             `json:"isRead" db:"is_read"`
	Link      string           `json:"link,omitempty" db:"link"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}
