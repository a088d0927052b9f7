package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "plume/contexts/community/notification-service/application"
	domainerrors "plume/contexts/community/notification-service/domain/errors"
	"plume/contexts/community/notification-service/ports"
)

// MarkAllReadResult reports how many rows the sweep touched.
type MarkAllReadResult struct {
	Marked int `json:"marked"`
}

type MarkAllReadUseCase struct {
	Notifications ports.NotificationRepository
	Clock         ports.Clock
	Logger        *slog.Logger
}

func (u MarkAllReadUseCase) Execute(ctx context.Context, userID string) (MarkAllReadResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(userID) == "" {
		return MarkAllReadResult{}, domainerrors.ErrAuthenticationRequired
	}

	now := time.Now().UTC()
	if u.Clock != nil {
		now = u.Clock.Now().UTC()
	}

	marked, err := u.Notifications.MarkAllRead(ctx, userID, now)
	if err != nil {
		logger.Error("mark all read failed",
			"event", "notification_mark_all_read_failed",
			"module", "community/notification-service",
			"layer", "application",
			"user_id", userID,
			"error", err.Error(),
		)
		return MarkAllReadResult{}, err
	}

	logger.Info("notifications marked read",
		"event", "notification_marked_read",
		"module", "community/notification-service",
		"layer", "application",
		"user_id", userID,
		"marked", marked,
	)
	return MarkAllReadResult{Marked: marked}, nil
}
