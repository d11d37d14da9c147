package websocket

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// NotificationMarker is the part of the notification service that socket clients can drive
type NotificationMarker interface {
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

// MessageHandler applies read receipts sent by socket clients
type MessageHandler struct {
	marker NotificationMarker
	hub    *Hub
	logger zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(marker NotificationMarker, hub *Hub, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{marker: marker, hub: hub, logger: logger}
}

// Start processes inbound frames until ctx is done
func (h *MessageHandler) Start(ctx context.Context) {
	messages := make(chan *Message, 64)
	h.hub.AddMessageListener(messages)

	go func() {
		defer h.hub.RemoveMessageListener(messages)
		for {
			select {
			case <-ctx.Done():
				return
			case m := <-messages:
				h.Handle(ctx, m)
			}
		}
	}()
}

// Handle applies one inbound frame and answers with the new unread count
func (h *MessageHandler) Handle(ctx context.Context, message *Message) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var err error
	switch message.Type {
	case MessageTypeMarkRead:
		err = h.marker.MarkRead(ctx, message.UserID, message.NotificationID)
	case MessageTypeMarkAllRead:
		_, err = h.marker.MarkAllRead(ctx, message.UserID)
	default:
		h.logger.Debug().Str("type", message.Type).Int64("userID", message.UserID).Msg("Ignoring unknown frame type")
		return
	}
	if err != nil {
		h.logger.Warn().Err(err).
			Str("type", message.Type).
			Int64("userID", message.UserID).
			Int64("notificationID", message.NotificationID).
			Msg("Failed to apply read receipt")
		return
	}

	count, err := h.marker.UnreadCount(ctx, message.UserID)
	if err != nil {
		h.logger.Warn().Err(err).Int64("userID", message.UserID).Msg("Failed to count unread notifications")
		return
	}
	h.hub.SendToUser(message.UserID, MessageTypeUnreadCount, map[string]int64{"unreadCount": count})
}
