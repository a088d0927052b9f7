package ports

import (
	"context"
	"time"

	"plume/contexts/community/notification-service/domain/entities"
)

// NotificationRepository is the write/read boundary for per-user inboxes.
type NotificationRepository interface {
	Insert(ctx context.Context, notification entities.Notification) error
	ListRecent(ctx context.Context, userID string, limit int) ([]entities.Notification, error)
	ListUnread(ctx context.Context, userID string, limit int) ([]entities.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkAllRead(ctx context.Context, userID string, readAt time.Time) (int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
