package memory

import (
	"context"
	"sort"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

// NotificationRepository is the in-memory notification table
type NotificationRepository struct {
	db *DB
}

// Create inserts a notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (int64, error) {
	defer r.db.lock(ctx)()

	if _, ok := r.db.users[n.UserID]; !ok {
		return 0, apperrors.ErrUserNotFound
	}
	if n.Type == "" {
		n.Type = models.NotificationInfo
	}

	r.db.notificationSeq++
	c := *n
	c.ID = r.db.notificationSeq
	c.IsRead = false
	c.CreatedAt = r.db.now()
	r.db.notifications[c.ID] = &c

	n.ID, n.IsRead, n.CreatedAt = c.ID, false, c.CreatedAt
	return c.ID, nil
}

// ListByUser returns the newest notifications of a user
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	defer r.db.lock(ctx)()

	out := make([]models.Notification, 0)
	for _, n := range r.db.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountUnread counts unread notifications of a user
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	defer r.db.lock(ctx)()

	var count int64
	for _, n := range r.db.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// MarkRead marks one of the user's notifications as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	defer r.db.lock(ctx)()

	n, ok := r.db.notifications[id]
	if !ok || n.UserID != userID {
		return apperrors.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

// MarkAllRead marks all of a user's notifications as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	defer r.db.lock(ctx)()

	var count int64
	for _, n := range r.db.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}
