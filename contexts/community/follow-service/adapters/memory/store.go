package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"plume/contexts/community/follow-service/domain/entities"
	domainerrors "plume/contexts/community/follow-service/domain/errors"
	"plume/contexts/community/follow-service/ports"
)

type edge struct {
	follower string
	followee string
}

// Store is the in-memory follow adapter used by tests and local runs.
type Store struct {
	mu     sync.Mutex
	people map[string]entities.Person
	edges  map[edge]time.Time
	outbox []ports.OutboxMessage
	now    time.Time
	frozen bool
}

func NewStore(people []entities.Person) *Store {
	s := &Store{
		people: make(map[string]entities.Person),
		edges:  make(map[edge]time.Time),
	}
	for _, person := range people {
		s.people[person.UserID] = person
	}
	return s
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	s.frozen = true
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return s.now
	}
	return time.Now().UTC()
}

func (s *Store) ToggleFollow(ctx context.Context, input ports.ToggleFollowInput) (ports.ToggleFollowResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := edge{follower: input.FollowerID, followee: input.FolloweeID}
	if _, ok := s.edges[key]; ok {
		delete(s.edges, key)
		return ports.ToggleFollowResult{
			Following: false,
			Followers: s.countFollowersLocked(input.FolloweeID),
		}, nil
	}

	s.edges[key] = input.Now
	if input.OutboxID != "" {
		s.outbox = append(s.outbox, ports.OutboxMessage{
			OutboxID:  input.OutboxID,
			EventType: "community.follow.created",
			Payload:   append([]byte(nil), input.EventPayload...),
			CreatedAt: input.Now,
		})
	}
	return ports.ToggleFollowResult{
		Following: true,
		Followers: s.countFollowersLocked(input.FolloweeID),
	}, nil
}

func (s *Store) IsFollowing(ctx context.Context, followerID string, followeeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.edges[edge{follower: followerID, followee: followeeID}]
	return ok, nil
}

func (s *Store) CountFollowers(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countFollowersLocked(userID), nil
}

func (s *Store) countFollowersLocked(userID string) int {
	count := 0
	for key := range s.edges {
		if key.followee == userID {
			count++
		}
	}
	return count
}

func (s *Store) ListFollowing(ctx context.Context, followerID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0)
	for key := range s.edges {
		if key.follower == followerID {
			ids = append(ids, key.followee)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) GetPerson(ctx context.Context, userID string) (entities.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	person, ok := s.people[userID]
	if !ok {
		return entities.Person{}, domainerrors.ErrPersonNotFound
	}
	return person, nil
}

func (s *Store) SearchPeople(ctx context.Context, term string, limit int) ([]entities.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(term)
	matched := make([]entities.Person, 0)
	for _, person := range s.people {
		if needle == "" ||
			strings.Contains(strings.ToLower(person.Username), needle) ||
			strings.Contains(strings.ToLower(person.DisplayName), needle) {
			matched = append(matched, person)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Username < matched[j].Username
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *Store) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit > 0 && len(s.outbox) > limit {
		return append([]ports.OutboxMessage(nil), s.outbox[:limit]...), nil
	}
	return append([]ports.OutboxMessage(nil), s.outbox...), nil
}

func (s *Store) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := s.outbox[:0]
	for _, row := range s.outbox {
		if row.OutboxID != outboxID {
			filtered = append(filtered, row)
		}
	}
	s.outbox = filtered
	return nil
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	return uuid.NewString(), nil
}

var (
	_ ports.FollowRepository = (*Store)(nil)
	_ ports.PersonDirectory  = (*Store)(nil)
	_ ports.OutboxRepository = (*Store)(nil)
	_ ports.Clock            = (*Store)(nil)
	_ ports.IDGenerator      = (*Store)(nil)
)
