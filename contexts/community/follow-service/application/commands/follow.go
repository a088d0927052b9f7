package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	application "plume/contexts/community/follow-service/application"
	domainerrors "plume/contexts/community/follow-service/domain/errors"
	"plume/contexts/community/follow-service/ports"
	"plume/internal/shared/events"
)

// FollowCreatedEventType is relayed to the notification consumer so new
// follows surface as notifications without coupling the two services.
const FollowCreatedEventType = "community.follow.created"

// FollowCreatedPayload is the envelope payload for a new follow edge.
type FollowCreatedPayload struct {
	FollowerID string `json:"follower_id"`
	FolloweeID string `json:"followee_id"`
}

// ToggleFollowCommand contains transport-agnostic input for the toggle.
type ToggleFollowCommand struct {
	FollowerID string
	FolloweeID string
}

// ToggleFollowResult reports the post-toggle state for the transport layer.
type ToggleFollowResult struct {
	Following bool `json:"following"`
	Followers int  `json:"followers"`
}

// ToggleFollowUseCase flips one follow edge. A toggle that creates an edge
// also stages a fan-out event in the same transaction.
type ToggleFollowUseCase struct {
	Follows      ports.FollowRepository
	People       ports.PersonDirectory
	Clock        ports.Clock
	IDGenerator  ports.IDGenerator
	EnableFanout bool
	Logger       *slog.Logger
}

func (u ToggleFollowUseCase) Execute(ctx context.Context, cmd ToggleFollowCommand) (ToggleFollowResult, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.FollowerID) == "" {
		return ToggleFollowResult{}, domainerrors.ErrAuthenticationRequired
	}
	if strings.TrimSpace(cmd.FolloweeID) == "" {
		return ToggleFollowResult{}, domainerrors.ErrInvalidUserID
	}
	if cmd.FollowerID == cmd.FolloweeID {
		return ToggleFollowResult{}, domainerrors.ErrSelfFollow
	}

	if _, err := u.People.GetPerson(ctx, cmd.FolloweeID); err != nil {
		return ToggleFollowResult{}, err
	}

	now := u.now()
	input := ports.ToggleFollowInput{
		FollowerID: cmd.FollowerID,
		FolloweeID: cmd.FolloweeID,
		Now:        now,
	}
	if u.EnableFanout {
		outboxID, err := u.IDGenerator.NewID(ctx)
		if err != nil {
			return ToggleFollowResult{}, err
		}
		eventID, err := u.IDGenerator.NewID(ctx)
		if err != nil {
			return ToggleFollowResult{}, err
		}
		payload, err := json.Marshal(events.Envelope{
			EventID:        eventID,
			EventType:      FollowCreatedEventType,
			SourceService:  "community/follow-service",
			OccurredAtUTC:  now.UTC(),
			EntityType:     "follow",
			EntityID:       cmd.FollowerID + ":" + cmd.FolloweeID,
			PayloadVersion: 1,
			Payload: FollowCreatedPayload{
				FollowerID: cmd.FollowerID,
				FolloweeID: cmd.FolloweeID,
			},
		})
		if err != nil {
			return ToggleFollowResult{}, err
		}
		input.OutboxID = outboxID
		input.EventPayload = payload
	}

	result, err := u.Follows.ToggleFollow(ctx, input)
	if err != nil {
		logger.Error("follow toggle failed",
			"event", "follow_toggle_failed",
			"module", "community/follow-service",
			"layer", "application",
			"follower_id", cmd.FollowerID,
			"followee_id", cmd.FolloweeID,
			"error", err.Error(),
		)
		return ToggleFollowResult{}, err
	}

	logger.Info("follow toggled",
		"event", "follow_toggled",
		"module", "community/follow-service",
		"layer", "application",
		"follower_id", cmd.FollowerID,
		"followee_id", cmd.FolloweeID,
		"following", result.Following,
	)
	return ToggleFollowResult{Following: result.Following, Followers: result.Followers}, nil
}

func (u ToggleFollowUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now()
	}
	return time.Now().UTC()
}
