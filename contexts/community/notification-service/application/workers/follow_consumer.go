package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "plume/contexts/community/notification-service/application"
	"plume/contexts/community/notification-service/domain/entities"
	"plume/contexts/community/notification-service/ports"
	"plume/internal/shared/events"
)

// followCreatedPayload mirrors the follow-service event payload shape.
type followCreatedPayload struct {
	FollowerID string `json:"follower_id"`
	FolloweeID string `json:"followee_id"`
}

// FollowConsumer turns relayed follow events into inbox notifications for
// the followed user.
type FollowConsumer struct {
	Notifications ports.NotificationRepository
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func (c FollowConsumer) Handle(ctx context.Context, envelope events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)

	raw, err := json.Marshal(envelope.Payload)
	if err != nil {
		return err
	}
	var payload followCreatedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	if payload.FollowerID == "" || payload.FolloweeID == "" {
		logger.Warn("follow event payload incomplete",
			"event", "notification_follow_payload_incomplete",
			"module", "community/notification-service",
			"layer", "worker",
			"event_id", envelope.EventID,
		)
		return nil
	}

	now := time.Now().UTC()
	if c.Clock != nil {
		now = c.Clock.Now().UTC()
	}
	notificationID, err := c.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}

	err = c.Notifications.Insert(ctx, entities.Notification{
		NotificationID: notificationID,
		UserID:         payload.FolloweeID,
		Kind:           entities.KindNewFollower,
		ActorID:        payload.FollowerID,
		Message:        "started following you",
		CreatedAt:      now,
	})
	if err != nil {
		logger.Error("notification insert failed",
			"event", "notification_insert_failed",
			"module", "community/notification-service",
			"layer", "worker",
			"event_id", envelope.EventID,
			"user_id", payload.FolloweeID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("notification created",
		"event", "notification_created",
		"module", "community/notification-service",
		"layer", "worker",
		"event_id", envelope.EventID,
		"user_id", payload.FolloweeID,
		"kind", entities.KindNewFollower,
	)
	return nil
}
