package queries

import (
	"context"
	"strings"

	"plume/contexts/community/follow-service/domain/entities"
	domainerrors "plume/contexts/community/follow-service/domain/errors"
	"plume/contexts/community/follow-service/ports"
)

// SearchLimit caps one people-search response.
const SearchLimit = 50

// PersonView is one search row decorated with the viewer's follow state.
type PersonView struct {
	Person    entities.Person
	Followers int
	Following bool
}

type PeopleUseCase struct {
	People  ports.PersonDirectory
	Follows ports.FollowRepository
}

// Search lists people whose username or display name matches the term,
// leaving out the viewer's own row. An empty term lists everyone up to the
// limit. The viewer may be anonymous; follow flags are false in that case.
func (uc PeopleUseCase) Search(ctx context.Context, viewerID string, term string) ([]PersonView, error) {
	people, err := uc.People.SearchPeople(ctx, strings.TrimSpace(term), SearchLimit)
	if err != nil {
		return nil, err
	}
	views := make([]PersonView, 0, len(people))
	for _, person := range people {
		if person.UserID == viewerID {
			continue
		}
		view := PersonView{Person: person}
		view.Followers, err = uc.Follows.CountFollowers(ctx, person.UserID)
		if err != nil {
			return nil, err
		}
		if viewerID != "" {
			view.Following, err = uc.Follows.IsFollowing(ctx, viewerID, person.UserID)
			if err != nil {
				return nil, err
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// Profile resolves one person with follower count and viewer follow state.
func (uc PeopleUseCase) Profile(ctx context.Context, viewerID string, userID string) (PersonView, error) {
	if strings.TrimSpace(userID) == "" {
		return PersonView{}, domainerrors.ErrInvalidUserID
	}
	person, err := uc.People.GetPerson(ctx, userID)
	if err != nil {
		return PersonView{}, err
	}
	view := PersonView{Person: person}
	view.Followers, err = uc.Follows.CountFollowers(ctx, userID)
	if err != nil {
		return PersonView{}, err
	}
	if viewerID != "" && viewerID != userID {
		view.Following, err = uc.Follows.IsFollowing(ctx, viewerID, userID)
		if err != nil {
			return PersonView{}, err
		}
	}
	return view, nil
}
