package ports

import (
	"context"
	"time"

	"plume/contexts/publishing/poll-engine/domain/entities"
)

type BallotRepository interface {
	GetPoll(ctx context.Context, postID string) (entities.Poll, error)
	GetPollBySlug(ctx context.Context, slug string) (entities.Poll, error)
	// CastBallot runs decide against a fresh snapshot inside the per-post
	// critical section and persists the returned change atomically. Errors
	// from decide abort with no state change.
	CastBallot(
		ctx context.Context,
		postID string,
		userID string,
		decide func(entities.Poll) (entities.BallotChange, error),
	) (entities.Poll, error)
}

// CachedTally freezes the anonymous view of a poll, open flag included.
// The open flag may lag the real window by up to the cache TTL.
type CachedTally struct {
	Tally entities.Tally `json:"tally"`
	Open  bool           `json:"open"`
}

// TallyCache holds viewer-independent tallies for lock-free reads.
// Implementations may lose or expire entries at any time.
type TallyCache interface {
	GetTally(ctx context.Context, slug string) (CachedTally, bool, error)
	SetTally(ctx context.Context, slug string, tally CachedTally, ttl time.Duration) error
	InvalidateTally(ctx context.Context, slug string) error
}

type Clock interface {
	Now() time.Time
}
