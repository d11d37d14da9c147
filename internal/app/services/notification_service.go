package services

import (
	"context"
	"fmt"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/repositories"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

// NotificationListLimit caps the notification listing
const NotificationListLimit = 50

// Publisher pushes a message to the live connections of a user
type Publisher interface {
	SendToUser(userID int64, msgType string, payload interface{})
}

// NotificationService stores user notifications and pushes them to connected clients
type NotificationService interface {
	// Create stores a notification. It joins the transaction carried by ctx, if any.
	Create(ctx context.Context, userID int64, title, message string, kind models.NotificationType) (*models.Notification, error)
	// Publish pushes stored notifications to their recipients. Call it after the transaction commits.
	Publish(notifications ...*models.Notification)
	List(ctx context.Context, userID int64) ([]models.Notification, int64, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

type notificationServiceImpl struct {
	repo      repositories.INotificationRepository
	publisher Publisher
}

// NewNotificationService creates a new notification service. publisher may be nil.
func NewNotificationService(repo repositories.INotificationRepository, publisher Publisher) NotificationService {
	return &notificationServiceImpl{repo: repo, publisher: publisher}
}

func (s *notificationServiceImpl) Create(ctx context.Context, userID int64, title, message string, kind models.NotificationType) (*models.Notification, error) {
	n := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    kind,
	}
	if _, err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("error creating notification: %w", err)
	}
	return n, nil
}

func (s *notificationServiceImpl) Publish(notifications ...*models.Notification) {
	if s.publisher == nil {
		return
	}
	for _, n := range notifications {
		if n != nil {
			s.publisher.SendToUser(n.UserID, "notification", n)
		}
	}
}

func (s *notificationServiceImpl) List(ctx context.Context, userID int64) ([]models.Notification, int64, error) {
	list, err := s.repo.ListByUser(ctx, userID, NotificationListLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing notifications: %w", err)
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return list, unread, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID int64) error {
	if err := s.repo.MarkRead(ctx, notificationID, userID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotificationNotFound) {
			return apperrors.NewCustomError(apperrors.ErrResourceNotFound, "Notification not found")
		}
		return fmt.Errorf("error marking notification read: %w", err)
	}
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return n, nil
}

func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return n, nil
}
