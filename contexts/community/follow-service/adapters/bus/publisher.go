package bus

import (
	"context"
	"encoding/json"

	"plume/contexts/community/follow-service/ports"
	"plume/internal/platform/messaging"
	"plume/internal/shared/events"
)

// Publisher relays stored outbox envelopes onto the in-process bus.
type Publisher struct {
	Bus *messaging.Bus
}

func NewPublisher(b *messaging.Bus) *Publisher {
	return &Publisher{Bus: b}
}

func (p *Publisher) PublishFollowEvent(ctx context.Context, topic string, payload []byte) error {
	var envelope events.Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return err
	}
	return p.Bus.Publish(ctx, topic, envelope)
}

var _ ports.FollowEventPublisher = (*Publisher)(nil)
