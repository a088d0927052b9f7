package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"plume/contexts/community/follow-service/adapters/memory"
	"plume/contexts/community/follow-service/domain/entities"
	domainerrors "plume/contexts/community/follow-service/domain/errors"
	"plume/contexts/community/follow-service/ports"
)

func newPeopleFixture() (PeopleUseCase, *memory.Store) {
	store := memory.NewStore([]entities.Person{
		{UserID: "alice", Username: "alice", DisplayName: "Alice"},
		{UserID: "bob", Username: "bob", DisplayName: "Bob"},
		{UserID: "carol", Username: "carol", DisplayName: "Carol"},
	})
	store.SetNow(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))
	return PeopleUseCase{People: store, Follows: store}, store
}

func follow(t *testing.T, store *memory.Store, follower, followee string) {
	t.Helper()
	_, err := store.ToggleFollow(context.Background(), ports.ToggleFollowInput{
		FollowerID: follower,
		FolloweeID: followee,
		Now:        store.Now(),
	})
	if err != nil {
		t.Fatalf("follow setup failed: %v", err)
	}
}

func TestSearchExcludesViewer(t *testing.T) {
	useCase, _ := newPeopleFixture()

	views, err := useCase.Search(context.Background(), "bob", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 people, got %d", len(views))
	}
	for _, view := range views {
		if view.Person.UserID == "bob" {
			t.Fatalf("viewer leaked into results: %+v", view)
		}
	}
}

func TestSearchDecoratesFollowState(t *testing.T) {
	useCase, store := newPeopleFixture()
	follow(t, store, "alice", "bob")
	follow(t, store, "carol", "bob")

	views, err := useCase.Search(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 match, got %d", len(views))
	}
	if !views[0].Following || views[0].Followers != 2 {
		t.Fatalf("unexpected follow state: %+v", views[0])
	}
}

func TestSearchAnonymousFlagsFalse(t *testing.T) {
	useCase, store := newPeopleFixture()
	follow(t, store, "alice", "bob")

	views, err := useCase.Search(context.Background(), "", "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || views[0].Following {
		t.Fatalf("anonymous viewer should see no follow flags: %+v", views)
	}
}

func TestProfileRejectsBlankUserID(t *testing.T) {
	useCase, _ := newPeopleFixture()

	_, err := useCase.Profile(context.Background(), "alice", "  ")
	if !errors.Is(err, domainerrors.ErrInvalidUserID) {
		t.Fatalf("expected invalid user id, got %v", err)
	}
}

func TestProfileUnknownPerson(t *testing.T) {
	useCase, _ := newPeopleFixture()

	_, err := useCase.Profile(context.Background(), "alice", "ghost")
	if !errors.Is(err, domainerrors.ErrPersonNotFound) {
		t.Fatalf("expected person not found, got %v", err)
	}
}
