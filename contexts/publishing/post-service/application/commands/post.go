package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "plume/contexts/publishing/post-service/application"
	"plume/contexts/publishing/post-service/domain/entities"
	domainerrors "plume/contexts/publishing/post-service/domain/errors"
	"plume/contexts/publishing/post-service/ports"
)

// MaxPollOptionSlots is how many option texts the create/edit forms carry.
// Blank slots are skipped, order is preserved.
const MaxPollOptionSlots = 4

// CreatePostCommand covers all three post variants; poll fields are ignored
// for articles and statuses.
type CreatePostCommand struct {
	AuthorID    string
	Type        entities.PostType
	Title       string
	Content     string
	StartsAt    *time.Time
	EndsAt      *time.Time
	MaxChoices  int
	OptionTexts []string
}

// EditPostCommand updates scalar fields; nil pointers leave a field alone.
// A non-nil OptionTexts on a poll performs the destructive full replace of
// its options, discarding every existing vote.
type EditPostCommand struct {
	Slug        string
	RequesterID string
	Title       *string
	Content     *string
	StartsAt    *time.Time
	EndsAt      *time.Time
	MaxChoices  *int
	OptionTexts []string
}

type DeletePostCommand struct {
	Slug        string
	RequesterID string
}

type ToggleLikeCommand struct {
	Slug   string
	UserID string
}

type ToggleLikeResult struct {
	Liked bool
	Likes int
}

type AddCommentCommand struct {
	Slug     string
	AuthorID string
	Content  string
}

// PostUseCase orchestrates post lifecycle writes. Poll ballots are out of
// scope here; the poll engine owns them.
type PostUseCase struct {
	Posts  ports.PostRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc PostUseCase) CreatePost(ctx context.Context, cmd CreatePostCommand) (entities.Post, error) {
	logger := application.ResolveLogger(uc.Logger)

	if strings.TrimSpace(cmd.AuthorID) == "" {
		return entities.Post{}, domainerrors.ErrAuthenticationRequired
	}
	if !cmd.Type.Valid() {
		return entities.Post{}, domainerrors.ErrInvalidPostType
	}

	title := strings.TrimSpace(cmd.Title)
	content := strings.TrimSpace(cmd.Content)
	switch cmd.Type {
	case entities.PostTypeArticle:
		if title == "" {
			return entities.Post{}, domainerrors.ErrTitleRequired
		}
		if content == "" {
			return entities.Post{}, domainerrors.ErrContentRequired
		}
	case entities.PostTypeStatus:
		// Statuses have no title by definition.
		title = ""
		if content == "" {
			return entities.Post{}, domainerrors.ErrContentRequired
		}
	case entities.PostTypePoll:
		if title == "" {
			return entities.Post{}, domainerrors.ErrTitleRequired
		}
		content = ""
	}

	var options []entities.PollOption
	if cmd.Type == entities.PostTypePoll {
		texts := trimOptionTexts(cmd.OptionTexts)
		if len(texts) == 0 {
			return entities.Post{}, domainerrors.ErrOptionsRequired
		}
		for _, text := range texts {
			id, err := uc.IDGen.NewID(ctx)
			if err != nil {
				return entities.Post{}, err
			}
			options = append(options, entities.PollOption{
				OptionID: id,
				Text:     text,
				Position: len(options),
			})
		}
	}

	slug, err := uniqueSlug(ctx, uc.Posts, title)
	if err != nil {
		return entities.Post{}, err
	}
	postID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Post{}, err
	}

	now := uc.now()
	post := entities.Post{
		PostID:    postID,
		Type:      cmd.Type,
		Title:     title,
		Content:   content,
		Slug:      slug,
		AuthorID:  strings.TrimSpace(cmd.AuthorID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if cmd.Type == entities.PostTypePoll {
		post.MaxChoices = normalizeMaxChoices(cmd.MaxChoices)
		post.StartsAt = normalizeOptionalTime(cmd.StartsAt)
		post.EndsAt = normalizeOptionalTime(cmd.EndsAt)
	}
	for i := range options {
		options[i].PostID = post.PostID
	}

	if err := uc.Posts.CreatePost(ctx, post, options); err != nil {
		return entities.Post{}, err
	}

	logger.Info("post created",
		"event", "post_created",
		"module", "publishing/post-service",
		"layer", "application",
		"post_id", post.PostID,
		"post_type", string(post.Type),
		"slug", post.Slug,
		"author_id", post.AuthorID,
	)
	return post, nil
}

func (uc PostUseCase) EditPost(ctx context.Context, cmd EditPostCommand) (entities.Post, error) {
	logger := application.ResolveLogger(uc.Logger)

	if strings.TrimSpace(cmd.RequesterID) == "" {
		return entities.Post{}, domainerrors.ErrAuthenticationRequired
	}
	post, err := uc.Posts.GetBySlug(ctx, strings.TrimSpace(cmd.Slug))
	if err != nil {
		return entities.Post{}, err
	}
	if post.AuthorID != strings.TrimSpace(cmd.RequesterID) {
		return entities.Post{}, domainerrors.ErrForbidden
	}

	if cmd.Title != nil && post.Type != entities.PostTypeStatus {
		title := strings.TrimSpace(*cmd.Title)
		if title == "" {
			return entities.Post{}, domainerrors.ErrTitleRequired
		}
		// The slug stays stable across renames.
		post.Title = title
	}
	if cmd.Content != nil && post.Type != entities.PostTypePoll {
		content := strings.TrimSpace(*cmd.Content)
		if content == "" {
			return entities.Post{}, domainerrors.ErrContentRequired
		}
		post.Content = content
	}

	var options []entities.PollOption
	replaceOptions := false
	if post.Type == entities.PostTypePoll {
		if cmd.MaxChoices != nil {
			post.MaxChoices = normalizeMaxChoices(*cmd.MaxChoices)
		}
		if cmd.StartsAt != nil {
			post.StartsAt = normalizeOptionalTime(cmd.StartsAt)
		}
		if cmd.EndsAt != nil {
			post.EndsAt = normalizeOptionalTime(cmd.EndsAt)
		}
		if cmd.OptionTexts != nil {
			texts := trimOptionTexts(cmd.OptionTexts)
			if len(texts) == 0 {
				return entities.Post{}, domainerrors.ErrOptionsRequired
			}
			for _, text := range texts {
				id, err := uc.IDGen.NewID(ctx)
				if err != nil {
					return entities.Post{}, err
				}
				options = append(options, entities.PollOption{
					OptionID: id,
					PostID:   post.PostID,
					Text:     text,
					Position: len(options),
				})
			}
			replaceOptions = true
		}
	}

	post.UpdatedAt = uc.now()
	if err := uc.Posts.UpdatePost(ctx, post, options, replaceOptions); err != nil {
		return entities.Post{}, err
	}

	logger.Info("post updated",
		"event", "post_updated",
		"module", "publishing/post-service",
		"layer", "application",
		"post_id", post.PostID,
		"slug", post.Slug,
		"options_replaced", replaceOptions,
	)
	return post, nil
}

func (uc PostUseCase) DeletePost(ctx context.Context, cmd DeletePostCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	if strings.TrimSpace(cmd.RequesterID) == "" {
		return domainerrors.ErrAuthenticationRequired
	}
	post, err := uc.Posts.GetBySlug(ctx, strings.TrimSpace(cmd.Slug))
	if err != nil {
		return err
	}
	if post.AuthorID != strings.TrimSpace(cmd.RequesterID) {
		return domainerrors.ErrForbidden
	}

	if err := uc.Posts.DeletePost(ctx, post.PostID); err != nil {
		return err
	}
	logger.Info("post deleted",
		"event", "post_deleted",
		"module", "publishing/post-service",
		"layer", "application",
		"post_id", post.PostID,
		"slug", post.Slug,
	)
	return nil
}

func (uc PostUseCase) ToggleLike(ctx context.Context, cmd ToggleLikeCommand) (ToggleLikeResult, error) {
	if strings.TrimSpace(cmd.UserID) == "" {
		return ToggleLikeResult{}, domainerrors.ErrAuthenticationRequired
	}
	post, err := uc.Posts.GetBySlug(ctx, strings.TrimSpace(cmd.Slug))
	if err != nil {
		return ToggleLikeResult{}, err
	}
	liked, likes, err := uc.Posts.ToggleLike(ctx, post.PostID, strings.TrimSpace(cmd.UserID))
	if err != nil {
		return ToggleLikeResult{}, err
	}
	return ToggleLikeResult{Liked: liked, Likes: likes}, nil
}

func (uc PostUseCase) AddComment(ctx context.Context, cmd AddCommentCommand) (entities.Comment, error) {
	if strings.TrimSpace(cmd.AuthorID) == "" {
		return entities.Comment{}, domainerrors.ErrAuthenticationRequired
	}
	content := strings.TrimSpace(cmd.Content)
	if content == "" {
		return entities.Comment{}, domainerrors.ErrCommentRequired
	}
	post, err := uc.Posts.GetBySlug(ctx, strings.TrimSpace(cmd.Slug))
	if err != nil {
		return entities.Comment{}, err
	}
	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Comment{}, err
	}
	comment := entities.Comment{
		CommentID: id,
		PostID:    post.PostID,
		AuthorID:  strings.TrimSpace(cmd.AuthorID),
		Content:   content,
		CreatedAt: uc.now(),
	}
	if err := uc.Posts.AddComment(ctx, comment); err != nil {
		return entities.Comment{}, err
	}
	return comment, nil
}

func (uc PostUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func trimOptionTexts(texts []string) []string {
	limit := len(texts)
	if limit > MaxPollOptionSlots {
		limit = MaxPollOptionSlots
	}
	var trimmed []string
	for _, text := range texts[:limit] {
		text = strings.TrimSpace(text)
		if text != "" {
			trimmed = append(trimmed, text)
		}
	}
	return trimmed
}

func normalizeMaxChoices(value int) int {
	if value < 1 {
		return 1
	}
	return value
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}
