package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"plume/contexts/publishing/post-service/domain/entities"
	domainerrors "plume/contexts/publishing/post-service/domain/errors"
	"plume/contexts/publishing/post-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository owns the posts, poll_options, post_comments, and post_likes
// tables, plus cascade responsibility over poll_votes on delete.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreatePost(ctx context.Context, post entities.Post, options []entities.PollOption) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := postModelFromEntity(post)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for _, option := range options {
			optionRow := pollOptionModelFromEntity(option)
			if err := tx.Create(&optionRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrSlugConflict
		}
		return r.logError("post_repo_create_failed", err,
			"post_id", post.PostID,
			"slug", post.Slug,
		)
	}
	return nil
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (entities.Post, error) {
	var row postModel
	err := r.db.WithContext(ctx).
		Where("slug = ?", strings.TrimSpace(slug)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Post{}, domainerrors.ErrPostNotFound
		}
		return entities.Post{}, r.logError("post_repo_get_by_slug_failed", err, "slug", strings.TrimSpace(slug))
	}
	return row.toEntity(), nil
}

func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&postModel{}).
		Where("slug = ?", strings.TrimSpace(slug)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("post_repo_slug_exists_failed", err, "slug", strings.TrimSpace(slug))
	}
	return count > 0, nil
}

func (r *Repository) UpdatePost(ctx context.Context, post entities.Post, options []entities.PollOption, replaceOptions bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := postModelFromEntity(post)
		result := tx.Model(&postModel{}).Where("id = ?", row.ID).Updates(map[string]any{
			"title":       row.Title,
			"content":     row.Content,
			"max_choices": row.MaxChoices,
			"starts_at":   row.StartsAt,
			"ends_at":     row.EndsAt,
			"updated_at":  row.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrPostNotFound
		}
		if replaceOptions {
			// Destructive full replace: dropping the option rows discards
			// every recorded vote for this poll.
			if err := deleteVotesForPost(tx, row.ID); err != nil {
				return err
			}
			if err := tx.Where("post_id = ?", row.ID).Delete(&pollOptionModel{}).Error; err != nil {
				return err
			}
			for _, option := range options {
				optionRow := pollOptionModelFromEntity(option)
				if err := tx.Create(&optionRow).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrPostNotFound) {
			return err
		}
		return r.logError("post_repo_update_failed", err, "post_id", post.PostID)
	}
	return nil
}

func (r *Repository) DeletePost(ctx context.Context, postID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteVotesForPost(tx, postID); err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&pollOptionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&commentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&postLikeModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", postID).Delete(&postModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrPostNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrPostNotFound) {
			return err
		}
		return r.logError("post_repo_delete_failed", err, "post_id", postID)
	}
	return nil
}

func (r *Repository) ListPosts(ctx context.Context, offset int, limit int) ([]entities.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&postModel{}).Count(&total).Error; err != nil {
		return nil, 0, r.logError("post_repo_count_failed", err)
	}
	var rows []postModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, r.logError("post_repo_list_failed", err)
	}
	posts := make([]entities.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toEntity())
	}
	return posts, total, nil
}

func (r *Repository) ListOptions(ctx context.Context, postID string) ([]entities.PollOption, error) {
	var rows []pollOptionModel
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("position ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("post_repo_list_options_failed", err, "post_id", postID)
	}
	options := make([]entities.PollOption, 0, len(rows))
	for _, row := range rows {
		options = append(options, row.toEntity())
	}
	return options, nil
}

func (r *Repository) ToggleLike(ctx context.Context, postID string, userID string) (bool, int, error) {
	var liked bool
	var likes int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&postLikeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			row := postLikeModel{
				PostID:    postID,
				UserID:    userID,
				CreatedAt: time.Now().UTC(),
			}
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
			if err != nil && !isUniqueViolation(err) {
				return err
			}
			liked = true
		}
		return tx.Model(&postLikeModel{}).Where("post_id = ?", postID).Count(&likes).Error
	})
	if err != nil {
		return false, 0, r.logError("post_repo_toggle_like_failed", err,
			"post_id", postID,
			"user_id", userID,
		)
	}
	return liked, int(likes), nil
}

func (r *Repository) LikeSummary(ctx context.Context, postID string, viewerID string) (int, bool, error) {
	var likes int64
	err := r.db.WithContext(ctx).Model(&postLikeModel{}).
		Where("post_id = ?", postID).
		Count(&likes).
		Error
	if err != nil {
		return 0, false, r.logError("post_repo_like_summary_failed", err, "post_id", postID)
	}
	if viewerID == "" {
		return int(likes), false, nil
	}
	var viewerLikes int64
	err = r.db.WithContext(ctx).Model(&postLikeModel{}).
		Where("post_id = ? AND user_id = ?", postID, viewerID).
		Count(&viewerLikes).
		Error
	if err != nil {
		return 0, false, r.logError("post_repo_like_summary_failed", err, "post_id", postID)
	}
	return int(likes), viewerLikes > 0, nil
}

func (r *Repository) AddComment(ctx context.Context, comment entities.Comment) error {
	row := commentModelFromEntity(comment)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("post_repo_add_comment_failed", err,
			"post_id", comment.PostID,
			"comment_id", comment.CommentID,
		)
	}
	return nil
}

func (r *Repository) ListComments(ctx context.Context, postID string) ([]entities.Comment, error) {
	var rows []commentModel
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("post_repo_list_comments_failed", err, "post_id", postID)
	}
	comments := make([]entities.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.toEntity())
	}
	return comments, nil
}

func deleteVotesForPost(tx *gorm.DB, postID string) error {
	return tx.Where(
		"option_id IN (?)",
		tx.Session(&gorm.Session{NewDB: true}).
			Model(&pollOptionModel{}).
			Select("id").
			Where("post_id = ?", postID),
	).Delete(&pollVoteModel{}).Error
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "publishing/post-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("post repository operation failed", fields...)
	return err
}

// SystemClock satisfies ports.Clock with the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator satisfies ports.IDGenerator with random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type postModel struct {
	ID         string     `gorm:"column:id;primaryKey"`
	Type       string     `gorm:"column:type"`
	Title      string     `gorm:"column:title"`
	Content    string     `gorm:"column:content"`
	Slug       string     `gorm:"column:slug"`
	AuthorID   string     `gorm:"column:author_id"`
	MaxChoices int        `gorm:"column:max_choices"`
	StartsAt   *time.Time `gorm:"column:starts_at"`
	EndsAt     *time.Time `gorm:"column:ends_at"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (postModel) TableName() string {
	return "posts"
}

func postModelFromEntity(post entities.Post) postModel {
	return postModel{
		ID:         strings.TrimSpace(post.PostID),
		Type:       string(post.Type),
		Title:      post.Title,
		Content:    post.Content,
		Slug:       strings.TrimSpace(post.Slug),
		AuthorID:   strings.TrimSpace(post.AuthorID),
		MaxChoices: post.MaxChoices,
		StartsAt:   normalizeOptionalTime(post.StartsAt),
		EndsAt:     normalizeOptionalTime(post.EndsAt),
		CreatedAt:  post.CreatedAt.UTC(),
		UpdatedAt:  post.UpdatedAt.UTC(),
	}
}

func (m postModel) toEntity() entities.Post {
	return entities.Post{
		PostID:     m.ID,
		Type:       entities.PostType(m.Type),
		Title:      m.Title,
		Content:    m.Content,
		Slug:       m.Slug,
		AuthorID:   m.AuthorID,
		MaxChoices: m.MaxChoices,
		StartsAt:   normalizeOptionalTime(m.StartsAt),
		EndsAt:     normalizeOptionalTime(m.EndsAt),
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}

type pollOptionModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	PostID    string    `gorm:"column:post_id"`
	Text      string    `gorm:"column:text"`
	Position  int       `gorm:"column:position"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (pollOptionModel) TableName() string {
	return "poll_options"
}

func pollOptionModelFromEntity(option entities.PollOption) pollOptionModel {
	return pollOptionModel{
		ID:        strings.TrimSpace(option.OptionID),
		PostID:    strings.TrimSpace(option.PostID),
		Text:      option.Text,
		Position:  option.Position,
		CreatedAt: time.Now().UTC(),
	}
}

func (m pollOptionModel) toEntity() entities.PollOption {
	return entities.PollOption{
		OptionID: m.ID,
		PostID:   m.PostID,
		Text:     m.Text,
		Position: m.Position,
	}
}

type pollVoteModel struct {
	OptionID  string    `gorm:"column:option_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (pollVoteModel) TableName() string {
	return "poll_votes"
}

type commentModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	PostID    string    `gorm:"column:post_id"`
	AuthorID  string    `gorm:"column:author_id"`
	Content   string    `gorm:"column:content"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (commentModel) TableName() string {
	return "post_comments"
}

func commentModelFromEntity(comment entities.Comment) commentModel {
	return commentModel{
		ID:        strings.TrimSpace(comment.CommentID),
		PostID:    strings.TrimSpace(comment.PostID),
		AuthorID:  strings.TrimSpace(comment.AuthorID),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.UTC(),
	}
}

func (m commentModel) toEntity() entities.Comment {
	return entities.Comment{
		CommentID: m.ID,
		PostID:    m.PostID,
		AuthorID:  m.AuthorID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type postLikeModel struct {
	PostID    string    `gorm:"column:post_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (postLikeModel) TableName() string {
	return "post_likes"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.PostRepository = (*Repository)(nil)
