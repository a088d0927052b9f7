package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "plume/contexts/publishing/poll-engine/application"
	"plume/contexts/publishing/poll-engine/domain/entities"
	domainerrors "plume/contexts/publishing/poll-engine/domain/errors"
	"plume/contexts/publishing/poll-engine/ports"
)

// CastVoteCommand is the write-model input for one ballot toggle.
type CastVoteCommand struct {
	UserID   string
	Slug     string
	OptionID string
}

// CastVoteResult returns the post-vote tally and the caller's selection so
// the transport can render a partial update without a second read.
type CastVoteResult struct {
	Tally    entities.Tally
	Selected []string
	Open     bool
}

// VoteUseCase orchestrates ballot writes: it resolves the poll, delegates
// the decision to the domain inside the repository's critical section, and
// invalidates the cached tally afterwards.
type VoteUseCase struct {
	Polls  ports.BallotRepository
	Cache  ports.TallyCache
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc VoteUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	if strings.TrimSpace(cmd.UserID) == "" {
		return CastVoteResult{}, domainerrors.ErrAuthenticationRequired
	}
	if strings.TrimSpace(cmd.Slug) == "" || strings.TrimSpace(cmd.OptionID) == "" {
		return CastVoteResult{}, domainerrors.ErrInvalidBallotInput
	}
	userID := strings.TrimSpace(cmd.UserID)
	optionID := strings.TrimSpace(cmd.OptionID)

	poll, err := uc.Polls.GetPollBySlug(ctx, strings.TrimSpace(cmd.Slug))
	if err != nil {
		return CastVoteResult{}, err
	}

	now := uc.now()
	updated, err := uc.Polls.CastBallot(ctx, poll.PostID, userID, func(fresh entities.Poll) (entities.BallotChange, error) {
		return fresh.DecideBallot(optionID, userID, now)
	})
	if err != nil {
		logger.Warn("ballot rejected",
			"event", "poll_ballot_rejected",
			"module", "publishing/poll-engine",
			"layer", "application",
			"post_id", poll.PostID,
			"option_id", optionID,
			"user_id", userID,
			"error", err.Error(),
		)
		return CastVoteResult{}, err
	}

	if uc.Cache != nil {
		if err := uc.Cache.InvalidateTally(ctx, updated.Slug); err != nil {
			// Stale cache self-heals on TTL; never fail the vote over it.
			logger.Warn("tally cache invalidation failed",
				"event", "poll_tally_cache_invalidate_failed",
				"module", "publishing/poll-engine",
				"layer", "application",
				"post_id", updated.PostID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("ballot applied",
		"event", "poll_ballot_applied",
		"module", "publishing/poll-engine",
		"layer", "application",
		"post_id", updated.PostID,
		"option_id", optionID,
		"user_id", userID,
	)
	return CastVoteResult{
		Tally:    updated.TallyFor(userID),
		Selected: updated.SelectionFor(userID),
		Open:     updated.Open(now),
	}, nil
}

func (uc VoteUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
