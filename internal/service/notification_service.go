package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/lostfound/internal/realtime"
	"github.com/mmynk/lostfound/internal/storage"
	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/api/apiconnect"
)

// NotificationService implements the NotificationService RPC interface.
type NotificationService struct {
	apiconnect.UnimplementedNotificationServiceHandler
	store     storage.NotificationStore
	publisher Publisher
	logger    *slog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(store storage.NotificationStore, publisher Publisher, logger *slog.Logger) *NotificationService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &NotificationService{store: store, publisher: publisher, logger: logger}
}

// ListNotifications returns the caller's inbox, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, req *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	list, err := s.store.ListNotifications(ctx, c.UserID, req.Msg.UnreadOnly, clampLimit(req.Msg.Limit, 50, 200))
	if err != nil {
		s.logger.Error("ListNotifications failed", "user_id", c.UserID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Notification, len(list))
	for i, n := range list {
		out[i] = toAPINotification(n)
	}
	return connect.NewResponse(&api.ListNotificationsResponse{Notifications: out}), nil
}

// MarkRead marks one notification, or all of them, as read.
func (s *NotificationService) MarkRead(ctx context.Context, req *connect.Request[api.MarkReadRequest]) (*connect.Response[api.MarkReadResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	var updated int64
	switch {
	case req.Msg.All:
		updated, err = s.store.MarkAllNotificationsRead(ctx, c.UserID)
	case req.Msg.ID != "":
		err = s.store.MarkNotificationRead(ctx, c.UserID, req.Msg.ID)
		if err == nil {
			updated = 1
		}
	default:
		return nil, invalidArgument(fieldViolation{Field: "id", Description: "is required unless all is set"})
	}
	if err != nil {
		return nil, toConnectError(err)
	}

	if updated > 0 {
		s.publisher.Publish(realtime.Change{
			Key:   realtime.NotificationsKey(c.UserID),
			Table: realtime.TableNotifications,
			Op:    realtime.OpUpdate,
			RowID: req.Msg.ID,
		})
	}
	return connect.NewResponse(&api.MarkReadResponse{Updated: updated}), nil
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, req *connect.Request[api.UnreadCountRequest]) (*connect.Response[api.UnreadCountResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	n, err := s.store.CountUnread(ctx, c.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UnreadCountResponse{Count: n}), nil
}
