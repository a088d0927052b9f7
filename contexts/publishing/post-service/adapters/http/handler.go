package httpadapter

import (
	"context"
	"log/slog"

	"plume/contexts/publishing/post-service/application/commands"
	"plume/contexts/publishing/post-service/application/queries"
	"plume/contexts/publishing/post-service/domain/entities"
	httptransport "plume/contexts/publishing/post-service/transport/http"
)

type Handler struct {
	Posts  commands.PostUseCase
	Feed   queries.FeedUseCase
	Logger *slog.Logger
}

func (h Handler) CreatePostHandler(
	ctx context.Context,
	userID string,
	req httptransport.CreatePostRequest,
) (httptransport.PostPayload, error) {
	post, err := h.Posts.CreatePost(ctx, commands.CreatePostCommand{
		AuthorID:    userID,
		Type:        entities.PostType(req.Type),
		Title:       req.Title,
		Content:     req.Content,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		MaxChoices:  req.MaxChoices,
		OptionTexts: req.Options,
	})
	if err != nil {
		return httptransport.PostPayload{}, err
	}
	return mapPost(post), nil
}

func (h Handler) EditPostHandler(
	ctx context.Context,
	userID string,
	slug string,
	req httptransport.EditPostRequest,
) (httptransport.PostPayload, error) {
	post, err := h.Posts.EditPost(ctx, commands.EditPostCommand{
		Slug:        slug,
		RequesterID: userID,
		Title:       req.Title,
		Content:     req.Content,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		MaxChoices:  req.MaxChoices,
		OptionTexts: req.Options,
	})
	if err != nil {
		return httptransport.PostPayload{}, err
	}
	return mapPost(post), nil
}

func (h Handler) DeletePostHandler(ctx context.Context, userID string, slug string) (httptransport.DeleteResponse, error) {
	err := h.Posts.DeletePost(ctx, commands.DeletePostCommand{
		Slug:        slug,
		RequesterID: userID,
	})
	if err != nil {
		return httptransport.DeleteResponse{}, err
	}
	return httptransport.DeleteResponse{Deleted: true}, nil
}

func (h Handler) ToggleLikeHandler(ctx context.Context, userID string, slug string) (httptransport.LikeResponse, error) {
	result, err := h.Posts.ToggleLike(ctx, commands.ToggleLikeCommand{
		Slug:   slug,
		UserID: userID,
	})
	if err != nil {
		return httptransport.LikeResponse{}, err
	}
	return httptransport.LikeResponse{Liked: result.Liked, Likes: result.Likes}, nil
}

func (h Handler) AddCommentHandler(
	ctx context.Context,
	userID string,
	slug string,
	req httptransport.AddCommentRequest,
) (httptransport.CommentPayload, error) {
	comment, err := h.Posts.AddComment(ctx, commands.AddCommentCommand{
		Slug:     slug,
		AuthorID: userID,
		Content:  req.Content,
	})
	if err != nil {
		return httptransport.CommentPayload{}, err
	}
	return mapComment(comment), nil
}

func (h Handler) FeedHandler(ctx context.Context, page int) (httptransport.FeedResponse, error) {
	feed, err := h.Feed.Feed(ctx, page)
	if err != nil {
		return httptransport.FeedResponse{}, err
	}
	return httptransport.FeedResponse{
		Items:      mapPosts(feed.Posts),
		Page:       feed.Page,
		TotalPages: feed.TotalPages,
		TotalRows:  feed.TotalRows,
		PageSize:   queries.FeedPageSize,
	}, nil
}

func (h Handler) HomeHandler(ctx context.Context) (httptransport.HomeResponse, error) {
	posts, err := h.Feed.Home(ctx)
	if err != nil {
		return httptransport.HomeResponse{}, err
	}
	return httptransport.HomeResponse{Items: mapPosts(posts)}, nil
}

func (h Handler) DetailHandler(ctx context.Context, viewerID string, slug string) (httptransport.PostDetailResponse, error) {
	detail, err := h.Feed.Detail(ctx, slug, viewerID)
	if err != nil {
		return httptransport.PostDetailResponse{}, err
	}
	comments := make([]httptransport.CommentPayload, 0, len(detail.Comments))
	for _, comment := range detail.Comments {
		comments = append(comments, mapComment(comment))
	}
	options := make([]httptransport.PollOptionPayload, 0, len(detail.Options))
	for _, option := range detail.Options {
		options = append(options, httptransport.PollOptionPayload{
			ID:   option.OptionID,
			Text: option.Text,
		})
	}
	return httptransport.PostDetailResponse{
		Post:     mapPost(detail.Post),
		Likes:    detail.Likes,
		Liked:    detail.Liked,
		Comments: comments,
		Options:  options,
	}, nil
}

func mapPosts(posts []entities.Post) []httptransport.PostPayload {
	items := make([]httptransport.PostPayload, 0, len(posts))
	for _, post := range posts {
		items = append(items, mapPost(post))
	}
	return items
}

func mapPost(post entities.Post) httptransport.PostPayload {
	return httptransport.PostPayload{
		ID:         post.PostID,
		Type:       string(post.Type),
		Title:      post.Title,
		Content:    post.Content,
		Slug:       post.Slug,
		AuthorID:   post.AuthorID,
		MaxChoices: post.MaxChoices,
		StartsAt:   post.StartsAt,
		EndsAt:     post.EndsAt,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
}

func mapComment(comment entities.Comment) httptransport.CommentPayload {
	return httptransport.CommentPayload{
		ID:        comment.CommentID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}
