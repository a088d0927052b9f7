package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"plume/contexts/publishing/poll-engine/domain/entities"
	domainerrors "plume/contexts/publishing/poll-engine/domain/errors"
	"plume/contexts/publishing/poll-engine/ports"
)

type cacheRecord struct {
	entry     ports.CachedTally
	expiresAt time.Time
}

// Store is the in-memory ballot backend for tests and local runs. One mutex
// guards every poll, which trivially satisfies the per-post serialization
// the cast path requires.
type Store struct {
	mu sync.RWMutex

	polls  map[string]entities.Poll
	bySlug map[string]string
	cache  map[string]cacheRecord

	now time.Time
}

func NewStore(seed []entities.Poll) *Store {
	store := &Store{
		polls:  make(map[string]entities.Poll, len(seed)),
		bySlug: make(map[string]string, len(seed)),
		cache:  make(map[string]cacheRecord),
	}
	for _, poll := range seed {
		store.polls[poll.PostID] = clonePoll(poll)
		store.bySlug[poll.Slug] = poll.PostID
	}
	return store
}

// SetPoll seeds or replaces a poll aggregate.
func (s *Store) SetPoll(poll entities.Poll) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls[strings.TrimSpace(poll.PostID)] = clonePoll(poll)
	s.bySlug[strings.TrimSpace(poll.Slug)] = strings.TrimSpace(poll.PostID)
}

// RemovePoll drops the aggregate, simulating a cascaded post delete.
func (s *Store) RemovePoll(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if poll, ok := s.polls[postID]; ok {
		delete(s.bySlug, poll.Slug)
	}
	delete(s.polls, postID)
}

// SetNow pins the store clock for tests; zero means wall clock.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.now.IsZero() {
		return time.Now().UTC()
	}
	return s.now
}

func (s *Store) GetPoll(_ context.Context, postID string) (entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	poll, ok := s.polls[strings.TrimSpace(postID)]
	if !ok {
		return entities.Poll{}, domainerrors.ErrPollNotFound
	}
	return clonePoll(poll), nil
}

func (s *Store) GetPollBySlug(_ context.Context, slug string) (entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	postID, ok := s.bySlug[strings.TrimSpace(slug)]
	if !ok {
		return entities.Poll{}, domainerrors.ErrPollNotFound
	}
	return clonePoll(s.polls[postID]), nil
}

func (s *Store) CastBallot(
	_ context.Context,
	postID string,
	userID string,
	decide func(entities.Poll) (entities.BallotChange, error),
) (entities.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[strings.TrimSpace(postID)]
	if !ok {
		return entities.Poll{}, domainerrors.ErrPollNotFound
	}
	change, err := decide(clonePoll(poll))
	if err != nil {
		return entities.Poll{}, err
	}
	updated := poll.Apply(change, userID)
	s.polls[poll.PostID] = updated
	return clonePoll(updated), nil
}

func (s *Store) GetTally(_ context.Context, slug string) (ports.CachedTally, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.cache[strings.TrimSpace(slug)]
	if !ok || s.nowLocked().After(record.expiresAt) {
		return ports.CachedTally{}, false, nil
	}
	return record.entry, true, nil
}

func (s *Store) SetTally(_ context.Context, slug string, entry ports.CachedTally, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[strings.TrimSpace(slug)] = cacheRecord{
		entry:     entry,
		expiresAt: s.nowLocked().Add(ttl),
	}
	return nil
}

func (s *Store) InvalidateTally(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, strings.TrimSpace(slug))
	return nil
}

func (s *Store) nowLocked() time.Time {
	if s.now.IsZero() {
		return time.Now().UTC()
	}
	return s.now
}

func clonePoll(poll entities.Poll) entities.Poll {
	cloned := poll
	cloned.Options = make([]entities.Option, len(poll.Options))
	for i, option := range poll.Options {
		voters := make(map[string]struct{}, len(option.Voters))
		for voter := range option.Voters {
			voters[voter] = struct{}{}
		}
		option.Voters = voters
		cloned.Options[i] = option
	}
	return cloned
}

var _ ports.BallotRepository = (*Store)(nil)
var _ ports.TallyCache = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
