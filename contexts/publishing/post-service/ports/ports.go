package ports

import (
	"context"
	"time"

	"plume/contexts/publishing/post-service/domain/entities"
)

type PostRepository interface {
	// CreatePost persists the post and its option rows in one transaction.
	CreatePost(ctx context.Context, post entities.Post, options []entities.PollOption) error
	GetBySlug(ctx context.Context, slug string) (entities.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// UpdatePost saves scalar fields; when replaceOptions is true all option
	// rows (and their votes) are dropped and recreated from options.
	UpdatePost(ctx context.Context, post entities.Post, options []entities.PollOption, replaceOptions bool) error
	// DeletePost cascades options, votes, comments, and likes.
	DeletePost(ctx context.Context, postID string) error
	ListPosts(ctx context.Context, offset int, limit int) ([]entities.Post, int64, error)
	ListOptions(ctx context.Context, postID string) ([]entities.PollOption, error)

	ToggleLike(ctx context.Context, postID string, userID string) (bool, int, error)
	LikeSummary(ctx context.Context, postID string, viewerID string) (int, bool, error)

	AddComment(ctx context.Context, comment entities.Comment) error
	ListComments(ctx context.Context, postID string) ([]entities.Comment, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
