package workers

import (
	"context"
	"testing"
	"time"

	"plume/contexts/community/follow-service/adapters/memory"
	"plume/contexts/community/follow-service/application/commands"
	"plume/contexts/community/follow-service/domain/entities"
)

type capturingPublisher struct {
	topics   []string
	payloads [][]byte
}

func (p *capturingPublisher) PublishFollowEvent(ctx context.Context, topic string, payload []byte) error {
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestOutboxRelayPublishesAndAcks(t *testing.T) {
	store := memory.NewStore([]entities.Person{
		{UserID: "alice", Username: "alice"},
		{UserID: "bob", Username: "bob"},
	})
	store.SetNow(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))
	toggle := commands.ToggleFollowUseCase{
		Follows:      store,
		People:       store,
		Clock:        store,
		IDGenerator:  store,
		EnableFanout: true,
	}
	ctx := context.Background()
	if _, err := toggle.Execute(ctx, commands.ToggleFollowCommand{FollowerID: "alice", FolloweeID: "bob"}); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	publisher := &capturingPublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store}
	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay failed: %v", err)
	}

	if len(publisher.topics) != 1 || publisher.topics[0] != FollowEventsTopic {
		t.Fatalf("unexpected publishes: %v", publisher.topics)
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("outbox list failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected outbox drained, got %d rows", len(pending))
	}
}

func TestOutboxRelayIdempotentWhenEmpty(t *testing.T) {
	store := memory.NewStore(nil)
	publisher := &capturingPublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if len(publisher.topics) != 0 {
		t.Fatalf("expected no publishes, got %v", publisher.topics)
	}
}
