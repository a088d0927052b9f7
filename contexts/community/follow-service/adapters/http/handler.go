package httpadapter

import (
	"context"
	"log/slog"

	"plume/contexts/community/follow-service/application/commands"
	"plume/contexts/community/follow-service/application/queries"
	httptransport "plume/contexts/community/follow-service/transport/http"
)

type Handler struct {
	Toggle commands.ToggleFollowUseCase
	People queries.PeopleUseCase
	Logger *slog.Logger
}

func (h Handler) ToggleFollowHandler(ctx context.Context, userID string, targetID string) (httptransport.ToggleFollowResponse, error) {
	result, err := h.Toggle.Execute(ctx, commands.ToggleFollowCommand{
		FollowerID: userID,
		FolloweeID: targetID,
	})
	if err != nil {
		return httptransport.ToggleFollowResponse{}, err
	}
	return httptransport.ToggleFollowResponse{
		Following: result.Following,
		Followers: result.Followers,
	}, nil
}

func (h Handler) SearchPeopleHandler(ctx context.Context, viewerID string, term string) (httptransport.PeopleResponse, error) {
	views, err := h.People.Search(ctx, viewerID, term)
	if err != nil {
		return httptransport.PeopleResponse{}, err
	}
	items := make([]httptransport.PersonPayload, 0, len(views))
	for _, view := range views {
		items = append(items, mapPerson(view))
	}
	return httptransport.PeopleResponse{Items: items}, nil
}

func (h Handler) ProfileHandler(ctx context.Context, viewerID string, userID string) (httptransport.PersonPayload, error) {
	view, err := h.People.Profile(ctx, viewerID, userID)
	if err != nil {
		return httptransport.PersonPayload{}, err
	}
	return mapPerson(view), nil
}

func mapPerson(view queries.PersonView) httptransport.PersonPayload {
	return httptransport.PersonPayload{
		ID:          view.Person.UserID,
		Username:    view.Person.Username,
		DisplayName: view.Person.DisplayName,
		JoinedAt:    view.Person.JoinedAt,
		Followers:   view.Followers,
		Following:   view.Following,
	}
}
