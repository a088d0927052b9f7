package httpadapter

import (
	"context"
	"log/slog"

	"plume/contexts/publishing/poll-engine/application/commands"
	"plume/contexts/publishing/poll-engine/application/queries"
	"plume/contexts/publishing/poll-engine/domain/entities"
	httptransport "plume/contexts/publishing/poll-engine/transport/http"
)

type Handler struct {
	Votes   commands.VoteUseCase
	Tallies queries.TallyUseCase
	Logger  *slog.Logger
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	userID string,
	slug string,
	optionID string,
) (httptransport.PollResponse, error) {
	result, err := h.Votes.CastVote(ctx, commands.CastVoteCommand{
		UserID:   userID,
		Slug:     slug,
		OptionID: optionID,
	})
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return mapPollResponse(result.Tally, result.Open, result.Selected), nil
}

func (h Handler) TallyHandler(
	ctx context.Context,
	viewerID string,
	slug string,
) (httptransport.PollResponse, error) {
	result, err := h.Tallies.BySlug(ctx, slug, viewerID)
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return mapPollResponse(result.Tally, result.Open, result.Selected), nil
}

func mapPollResponse(tally entities.Tally, open bool, selected []string) httptransport.PollResponse {
	options := make([]httptransport.PollOptionPayload, 0, len(tally.Options))
	for _, option := range tally.Options {
		options = append(options, httptransport.PollOptionPayload{
			ID:       option.OptionID,
			Text:     option.Text,
			Votes:    option.Votes,
			Percent:  option.Percent,
			Selected: option.Selected,
		})
	}
	return httptransport.PollResponse{
		OK:       true,
		Open:     open,
		Total:    tally.Total,
		Max:      tally.MaxChoices,
		Options:  options,
		Selected: selected,
	}
}
