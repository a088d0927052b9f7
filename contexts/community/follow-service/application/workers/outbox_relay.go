package workers

import (
	"context"
	"log/slog"
	"time"

	application "plume/contexts/community/follow-service/application"
	"plume/contexts/community/follow-service/ports"
)

// FollowEventsTopic carries relayed follow envelopes to consumers.
const FollowEventsTopic = "community.follows"

// OutboxRelay drains pending follow outbox rows onto the event bus.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.FollowEventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("follow outbox list failed",
			"event", "follow_outbox_list_failed",
			"module", "community/follow-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		if err := r.Publisher.PublishFollowEvent(ctx, FollowEventsTopic, row.Payload); err != nil {
			logger.Error("follow outbox publish failed",
				"event", "follow_outbox_publish_failed",
				"module", "community/follow-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			return err
		}
	}
	return nil
}
