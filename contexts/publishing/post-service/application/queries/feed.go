package queries

import (
	"context"
	"strings"

	"plume/contexts/publishing/post-service/domain/entities"
	"plume/contexts/publishing/post-service/ports"
)

// FeedPageSize matches the classic fifteen-posts-per-page feed.
const FeedPageSize = 15

// HomeSize is the number of latest posts shown on the landing page.
const HomeSize = 5

type FeedPage struct {
	Posts      []entities.Post
	Page       int
	TotalPages int
	TotalRows  int64
}

type PostDetail struct {
	Post     entities.Post
	Likes    int
	Liked    bool
	Comments []entities.Comment
	Options  []entities.PollOption
}

type FeedUseCase struct {
	Posts ports.PostRepository
}

// Feed returns one newest-first page. Pages below one clamp to the first
// page and pages past the end clamp to the last, mirroring the classic
// paginator behavior rather than erroring.
func (uc FeedUseCase) Feed(ctx context.Context, page int) (FeedPage, error) {
	if page < 1 {
		page = 1
	}
	posts, total, err := uc.Posts.ListPosts(ctx, (page-1)*FeedPageSize, FeedPageSize)
	if err != nil {
		return FeedPage{}, err
	}

	totalPages := int((total + FeedPageSize - 1) / FeedPageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if len(posts) == 0 && page > totalPages {
		page = totalPages
		posts, _, err = uc.Posts.ListPosts(ctx, (page-1)*FeedPageSize, FeedPageSize)
		if err != nil {
			return FeedPage{}, err
		}
	}

	return FeedPage{
		Posts:      posts,
		Page:       page,
		TotalPages: totalPages,
		TotalRows:  total,
	}, nil
}

func (uc FeedUseCase) Home(ctx context.Context) ([]entities.Post, error) {
	posts, _, err := uc.Posts.ListPosts(ctx, 0, HomeSize)
	return posts, err
}

func (uc FeedUseCase) Detail(ctx context.Context, slug string, viewerID string) (PostDetail, error) {
	post, err := uc.Posts.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return PostDetail{}, err
	}
	likes, liked, err := uc.Posts.LikeSummary(ctx, post.PostID, strings.TrimSpace(viewerID))
	if err != nil {
		return PostDetail{}, err
	}
	comments, err := uc.Posts.ListComments(ctx, post.PostID)
	if err != nil {
		return PostDetail{}, err
	}

	detail := PostDetail{
		Post:     post,
		Likes:    likes,
		Liked:    liked,
		Comments: comments,
	}
	if post.Type == entities.PostTypePoll {
		options, err := uc.Posts.ListOptions(ctx, post.PostID)
		if err != nil {
			return PostDetail{}, err
		}
		detail.Options = options
	}
	return detail, nil
}
