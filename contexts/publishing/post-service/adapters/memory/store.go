package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"plume/contexts/publishing/post-service/domain/entities"
	domainerrors "plume/contexts/publishing/post-service/domain/errors"
	"plume/contexts/publishing/post-service/ports"
)

// Store is the in-memory post backend for tests and local runs.
type Store struct {
	mu sync.RWMutex

	posts    map[string]entities.Post
	bySlug   map[string]string
	options  map[string][]entities.PollOption
	votes    map[string]map[string]struct{} // option id -> voter set
	likes    map[string]map[string]struct{} // post id -> liker set
	comments map[string][]entities.Comment

	now time.Time
}

func NewStore(seed []entities.Post) *Store {
	store := &Store{
		posts:    make(map[string]entities.Post, len(seed)),
		bySlug:   make(map[string]string, len(seed)),
		options:  make(map[string][]entities.PollOption),
		votes:    make(map[string]map[string]struct{}),
		likes:    make(map[string]map[string]struct{}),
		comments: make(map[string][]entities.Comment),
	}
	for _, post := range seed {
		store.posts[post.PostID] = post
		store.bySlug[post.Slug] = post.PostID
	}
	return store
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

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreatePost(_ context.Context, post entities.Post, options []entities.PollOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.bySlug[post.Slug]; taken {
		return domainerrors.ErrSlugConflict
	}
	s.posts[post.PostID] = post
	s.bySlug[post.Slug] = post.PostID
	if len(options) > 0 {
		s.options[post.PostID] = append([]entities.PollOption(nil), options...)
	}
	return nil
}

func (s *Store) GetBySlug(_ context.Context, slug string) (entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	postID, ok := s.bySlug[strings.TrimSpace(slug)]
	if !ok {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return s.posts[postID], nil
}

func (s *Store) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.bySlug[strings.TrimSpace(slug)]
	return ok, nil
}

func (s *Store) UpdatePost(_ context.Context, post entities.Post, options []entities.PollOption, replaceOptions bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.PostID]; !ok {
		return domainerrors.ErrPostNotFound
	}
	s.posts[post.PostID] = post
	if replaceOptions {
		for _, option := range s.options[post.PostID] {
			delete(s.votes, option.OptionID)
		}
		s.options[post.PostID] = append([]entities.PollOption(nil), options...)
	}
	return nil
}

func (s *Store) DeletePost(_ context.Context, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return domainerrors.ErrPostNotFound
	}
	for _, option := range s.options[postID] {
		delete(s.votes, option.OptionID)
	}
	delete(s.options, postID)
	delete(s.likes, postID)
	delete(s.comments, postID)
	delete(s.bySlug, post.Slug)
	delete(s.posts, postID)
	return nil
}

func (s *Store) ListPosts(_ context.Context, offset int, limit int) ([]entities.Post, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]entities.Post, 0, len(s.posts))
	for _, post := range s.posts {
		all = append(all, post)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].PostID > all[j].PostID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return append([]entities.Post(nil), all[offset:end]...), total, nil
}

func (s *Store) ListOptions(_ context.Context, postID string) ([]entities.PollOption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.PollOption(nil), s.options[postID]...), nil
}

func (s *Store) ToggleLike(_ context.Context, postID string, userID string) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return false, 0, domainerrors.ErrPostNotFound
	}
	set := s.likes[postID]
	if set == nil {
		set = make(map[string]struct{})
		s.likes[postID] = set
	}
	if _, liked := set[userID]; liked {
		delete(set, userID)
		return false, len(set), nil
	}
	set[userID] = struct{}{}
	return true, len(set), nil
}

func (s *Store) LikeSummary(_ context.Context, postID string, viewerID string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.likes[postID]
	if viewerID == "" {
		return len(set), false, nil
	}
	_, liked := set[viewerID]
	return len(set), liked, nil
}

func (s *Store) AddComment(_ context.Context, comment entities.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[comment.PostID]; !ok {
		return domainerrors.ErrPostNotFound
	}
	s.comments[comment.PostID] = append(s.comments[comment.PostID], comment)
	return nil
}

func (s *Store) ListComments(_ context.Context, postID string) ([]entities.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := append([]entities.Comment(nil), s.comments[postID]...)
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

var _ ports.PostRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
