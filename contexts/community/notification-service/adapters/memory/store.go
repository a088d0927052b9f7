package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"plume/contexts/community/notification-service/domain/entities"
	"plume/contexts/community/notification-service/ports"
)

// Store is the in-memory notification adapter used by tests and local runs.
type Store struct {
	mu     sync.Mutex
	rows   []entities.Notification
	now    time.Time
	frozen bool
}

func NewStore() *Store {
	return &Store{}
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

func (s *Store) Insert(ctx context.Context, notification entities.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, notification)
	return nil
}

func (s *Store) ListRecent(ctx context.Context, userID string, limit int) ([]entities.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(userID, limit, false), nil
}

func (s *Store) ListUnread(ctx context.Context, userID string, limit int) ([]entities.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(userID, limit, true), nil
}

func (s *Store) listLocked(userID string, limit int, unreadOnly bool) []entities.Notification {
	matched := make([]entities.Notification, 0)
	for _, row := range s.rows {
		if row.UserID != userID {
			continue
		}
		if unreadOnly && row.Read {
			continue
		}
		matched = append(matched, row)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].NotificationID > matched[j].NotificationID
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func (s *Store) CountUnread(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, row := range s.rows {
		if row.UserID == userID && !row.Read {
			count++
		}
	}
	return count, nil
}

func (s *Store) MarkAllRead(ctx context.Context, userID string, readAt time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	marked := 0
	for i := range s.rows {
		if s.rows[i].UserID == userID && !s.rows[i].Read {
			s.rows[i].Read = true
			marked++
		}
	}
	return marked, nil
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	return uuid.NewString(), nil
}

var (
	_ ports.NotificationRepository = (*Store)(nil)
	_ ports.Clock                  = (*Store)(nil)
	_ ports.IDGenerator            = (*Store)(nil)
)
