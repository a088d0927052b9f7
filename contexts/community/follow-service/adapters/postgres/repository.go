package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"plume/contexts/community/follow-service/domain/entities"
	domainerrors "plume/contexts/community/follow-service/domain/errors"
	"plume/contexts/community/follow-service/ports"
)

type followModel struct {
	FollowerID string    `gorm:"column:follower_id;primaryKey"`
	FolloweeID string    `gorm:"column:followee_id;primaryKey"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (followModel) TableName() string { return "follows" }

type personModel struct {
	UserID      string    `gorm:"column:id;primaryKey"`
	Username    string    `gorm:"column:username"`
	DisplayName string    `gorm:"column:display_name"`
	JoinedAt    time.Time `gorm:"column:joined_at"`
}

func (personModel) TableName() string { return "users" }

func (m personModel) toEntity() entities.Person {
	return entities.Person{
		UserID:      m.UserID,
		Username:    m.Username,
		DisplayName: m.DisplayName,
		JoinedAt:    m.JoinedAt,
	}
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "follow_outbox" }

// Repository is the gorm-backed follow adapter.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ToggleFollow deletes the edge when present, otherwise inserts it together
// with the fan-out outbox row in the same transaction.
func (r *Repository) ToggleFollow(ctx context.Context, input ports.ToggleFollowInput) (ports.ToggleFollowResult, error) {
	var result ports.ToggleFollowResult
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted := tx.
			Where("follower_id = ? AND followee_id = ?", input.FollowerID, input.FolloweeID).
			Delete(&followModel{})
		if deleted.Error != nil {
			return deleted.Error
		}
		if deleted.RowsAffected == 0 {
			row := followModel{
				FollowerID: input.FollowerID,
				FolloweeID: input.FolloweeID,
				CreatedAt:  input.Now,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return err
			}
			if input.OutboxID != "" {
				outboxRow := outboxModel{
					OutboxID:  input.OutboxID,
					EventType: "community.follow.created",
					Payload:   input.EventPayload,
					Status:    "pending",
					CreatedAt: input.Now,
				}
				if err := tx.Create(&outboxRow).Error; err != nil {
					return err
				}
			}
			result.Following = true
		}

		var followers int64
		if err := tx.Model(&followModel{}).
			Where("followee_id = ?", input.FolloweeID).
			Count(&followers).Error; err != nil {
			return err
		}
		result.Followers = int(followers)
		return nil
	})
	if err != nil {
		return ports.ToggleFollowResult{}, err
	}
	return result, nil
}

func (r *Repository) IsFollowing(ctx context.Context, followerID string, followeeID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&followModel{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) CountFollowers(ctx context.Context, userID string) (int, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&followModel{}).
		Where("followee_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *Repository) ListFollowing(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Model(&followModel{}).
		Where("follower_id = ?", followerID).
		Order("followee_id ASC").
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) GetPerson(ctx context.Context, userID string) (entities.Person, error) {
	var row personModel
	err := r.DB.WithContext(ctx).Where("id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Person{}, domainerrors.ErrPersonNotFound
	}
	if err != nil {
		return entities.Person{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) SearchPeople(ctx context.Context, term string, limit int) ([]entities.Person, error) {
	query := r.DB.WithContext(ctx).Model(&personModel{}).Order("username ASC")
	if term != "" {
		pattern := "%" + term + "%"
		query = query.Where("username ILIKE ? OR display_name ILIKE ?", pattern, pattern)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []personModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	people := make([]entities.Person, 0, len(rows))
	for _, row := range rows {
		people = append(people, row.toEntity())
	}
	return people, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	err := r.DB.WithContext(ctx).
		Where("status = ?", "pending").
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	messages := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	return r.DB.WithContext(ctx).Model(&outboxModel{}).
		Where("id = ?", outboxID).
		Updates(map[string]any{
			"status":       "published",
			"published_at": publishedAt,
		}).Error
}

var (
	_ ports.FollowRepository = (*Repository)(nil)
	_ ports.PersonDirectory  = (*Repository)(nil)
	_ ports.OutboxRepository = (*Repository)(nil)
)
