package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"plume/contexts/publishing/poll-engine/domain/entities"
	domainerrors "plume/contexts/publishing/poll-engine/domain/errors"
	"plume/contexts/publishing/poll-engine/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository reads the posts/poll_options tables owned by the post service
// and owns the poll_votes membership table.
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

func (r *Repository) GetPoll(ctx context.Context, postID string) (entities.Poll, error) {
	return r.loadPoll(r.db.WithContext(ctx), "id = ?", strings.TrimSpace(postID))
}

func (r *Repository) GetPollBySlug(ctx context.Context, slug string) (entities.Poll, error) {
	return r.loadPoll(r.db.WithContext(ctx), "slug = ?", strings.TrimSpace(slug))
}

// CastBallot serializes on the post row: competing votes for the same poll
// queue behind the FOR UPDATE lock, so the count-then-mutate sequence in
// decide always sees committed state.
func (r *Repository) CastBallot(
	ctx context.Context,
	postID string,
	userID string,
	decide func(entities.Poll) (entities.BallotChange, error),
) (entities.Poll, error) {
	var updated entities.Poll
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row postModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", strings.TrimSpace(postID)).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrPollNotFound
			}
			return err
		}

		poll, err := r.assemblePoll(tx, row)
		if err != nil {
			return err
		}

		change, err := decide(poll)
		if err != nil {
			return err
		}

		for _, optionID := range change.Withdraw {
			err := tx.Where("option_id = ? AND user_id = ?", optionID, userID).
				Delete(&pollVoteModel{}).
				Error
			if err != nil {
				return err
			}
		}
		for _, optionID := range change.Select {
			vote := pollVoteModel{
				OptionID:  optionID,
				UserID:    userID,
				CreatedAt: time.Now().UTC(),
			}
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&vote).
				Error
			if err != nil && !isUniqueViolation(err) {
				return err
			}
		}

		updated = poll.Apply(change, userID)
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return entities.Poll{}, err
		}
		return entities.Poll{}, r.logError("poll_repo_cast_ballot_failed", err,
			"post_id", strings.TrimSpace(postID),
			"user_id", strings.TrimSpace(userID),
		)
	}
	return updated, nil
}

func (r *Repository) loadPoll(tx *gorm.DB, query string, arg string) (entities.Poll, error) {
	var row postModel
	if err := tx.Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Poll{}, domainerrors.ErrPollNotFound
		}
		return entities.Poll{}, r.logError("poll_repo_get_poll_failed", err, "query", query)
	}
	return r.assemblePoll(tx, row)
}

func (r *Repository) assemblePoll(tx *gorm.DB, row postModel) (entities.Poll, error) {
	poll := row.toPoll()

	var optionRows []pollOptionModel
	err := tx.Where("post_id = ?", row.ID).
		Order("position ASC").
		Find(&optionRows).
		Error
	if err != nil {
		return entities.Poll{}, r.logError("poll_repo_list_options_failed", err, "post_id", row.ID)
	}
	if len(optionRows) == 0 {
		poll.Options = nil
		return poll, nil
	}

	optionIDs := make([]string, 0, len(optionRows))
	for _, option := range optionRows {
		optionIDs = append(optionIDs, option.ID)
	}
	var voteRows []pollVoteModel
	err = tx.Where("option_id IN ?", optionIDs).
		Find(&voteRows).
		Error
	if err != nil {
		return entities.Poll{}, r.logError("poll_repo_list_votes_failed", err, "post_id", row.ID)
	}

	voters := make(map[string]map[string]struct{}, len(optionRows))
	for _, vote := range voteRows {
		if voters[vote.OptionID] == nil {
			voters[vote.OptionID] = make(map[string]struct{})
		}
		voters[vote.OptionID][vote.UserID] = struct{}{}
	}

	poll.Options = make([]entities.Option, 0, len(optionRows))
	for _, option := range optionRows {
		set := voters[option.ID]
		if set == nil {
			set = make(map[string]struct{})
		}
		poll.Options = append(poll.Options, entities.Option{
			OptionID: option.ID,
			PostID:   option.PostID,
			Text:     option.Text,
			Position: option.Position,
			Voters:   set,
		})
	}
	return poll, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "publishing/poll-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("poll repository operation failed", fields...)
	return err
}

// SystemClock satisfies ports.Clock with the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

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

func (m postModel) toPoll() entities.Poll {
	return entities.Poll{
		PostID:     m.ID,
		Slug:       m.Slug,
		Type:       entities.PostType(m.Type),
		Title:      m.Title,
		AuthorID:   m.AuthorID,
		MaxChoices: m.MaxChoices,
		StartsAt:   normalizeOptionalTime(m.StartsAt),
		EndsAt:     normalizeOptionalTime(m.EndsAt),
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

type pollVoteModel struct {
	OptionID  string    `gorm:"column:option_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (pollVoteModel) TableName() string {
	return "poll_votes"
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

func isDomainError(err error) bool {
	return errors.Is(err, domainerrors.ErrPollNotFound) ||
		errors.Is(err, domainerrors.ErrOptionNotFound) ||
		errors.Is(err, domainerrors.ErrPollClosed) ||
		errors.Is(err, domainerrors.ErrChoiceLimitExceeded)
}

var _ ports.BallotRepository = (*Repository)(nil)
