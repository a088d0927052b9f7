package ports

import (
	"context"
	"time"

	"plume/contexts/community/follow-service/domain/entities"
)

// ToggleFollowInput is persisted atomically with the fan-out outbox record
// when the toggle results in a new follow edge.
type ToggleFollowInput struct {
	FollowerID   string
	FolloweeID   string
	OutboxID     string
	EventPayload []byte
	Now          time.Time
}

// ToggleFollowResult reports the post-toggle edge state.
type ToggleFollowResult struct {
	Following bool
	Followers int
}

// FollowRepository is the write/read boundary for the social graph.
type FollowRepository interface {
	ToggleFollow(ctx context.Context, input ToggleFollowInput) (ToggleFollowResult, error)
	IsFollowing(ctx context.Context, followerID string, followeeID string) (bool, error)
	CountFollowers(ctx context.Context, userID string) (int, error)
	ListFollowing(ctx context.Context, followerID string) ([]string, error)
}

// PersonDirectory reads the account projection for people search.
type PersonDirectory interface {
	GetPerson(ctx context.Context, userID string) (entities.Person, error)
	SearchPeople(ctx context.Context, term string, limit int) ([]entities.Person, error)
}

// OutboxMessage represents a pending relay message.
type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository supports worker relay polling and acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// FollowEventPublisher emits follow events to the bus adapter.
type FollowEventPublisher interface {
	PublishFollowEvent(ctx context.Context, topic string, payload []byte) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
