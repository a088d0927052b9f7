package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "plume/contexts/publishing/poll-engine/application"
	"plume/contexts/publishing/poll-engine/domain/entities"
	"plume/contexts/publishing/poll-engine/ports"
)

// TallyResult is the read-model for poll state rendering.
type TallyResult struct {
	Tally    entities.Tally
	Selected []string
	Open     bool
}

// TallyUseCase serves poll results. Reads are lock-free; anonymous tallies
// may come from the cache and therefore lag a just-cast vote briefly.
type TallyUseCase struct {
	Polls    ports.BallotRepository
	Cache    ports.TallyCache
	Clock    ports.Clock
	CacheTTL time.Duration
	Logger   *slog.Logger
}

func (uc TallyUseCase) BySlug(ctx context.Context, slug string, viewerID string) (TallyResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	slug = strings.TrimSpace(slug)
	viewerID = strings.TrimSpace(viewerID)

	// Only anonymous tallies are cacheable: selection flags are per-viewer.
	if viewerID == "" && uc.Cache != nil {
		if cached, found, err := uc.Cache.GetTally(ctx, slug); err != nil {
			logger.Warn("tally cache read failed",
				"event", "poll_tally_cache_read_failed",
				"module", "publishing/poll-engine",
				"layer", "application",
				"slug", slug,
				"error", err.Error(),
			)
		} else if found {
			return TallyResult{Tally: cached.Tally, Open: cached.Open}, nil
		}
	}

	poll, err := uc.Polls.GetPollBySlug(ctx, slug)
	if err != nil {
		return TallyResult{}, err
	}

	open := poll.Open(uc.now())

	if viewerID == "" && uc.Cache != nil {
		ttl := uc.CacheTTL
		if ttl <= 0 {
			ttl = 15 * time.Second
		}
		entry := ports.CachedTally{Tally: poll.TallyFor(""), Open: open}
		if err := uc.Cache.SetTally(ctx, slug, entry, ttl); err != nil {
			logger.Warn("tally cache write failed",
				"event", "poll_tally_cache_write_failed",
				"module", "publishing/poll-engine",
				"layer", "application",
				"slug", slug,
				"error", err.Error(),
			)
		}
	}

	return TallyResult{
		Tally:    poll.TallyFor(viewerID),
		Selected: poll.SelectionFor(viewerID),
		Open:     open,
	}, nil
}

func (uc TallyUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
