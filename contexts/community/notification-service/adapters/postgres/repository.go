package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"plume/contexts/community/notification-service/domain/entities"
	"plume/contexts/community/notification-service/ports"
)

type notificationModel struct {
	NotificationID string    `gorm:"column:id;primaryKey"`
	UserID         string    `gorm:"column:user_id"`
	Kind           string    `gorm:"column:kind"`
	ActorID        string    `gorm:"column:actor_id"`
	Message        string    `gorm:"column:message"`
	Read           bool      `gorm:"column:read"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (notificationModel) TableName() string { return "notifications" }

func (m notificationModel) toEntity() entities.Notification {
	return entities.Notification{
		NotificationID: m.NotificationID,
		UserID:         m.UserID,
		Kind:           m.Kind,
		ActorID:        m.ActorID,
		Message:        m.Message,
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}
}

// Repository is the gorm-backed notification adapter.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Insert(ctx context.Context, notification entities.Notification) error {
	row := notificationModel{
		NotificationID: notification.NotificationID,
		UserID:         notification.UserID,
		Kind:           notification.Kind,
		ActorID:        notification.ActorID,
		Message:        notification.Message,
		Read:           notification.Read,
		CreatedAt:      notification.CreatedAt,
	}
	return r.DB.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListRecent(ctx context.Context, userID string, limit int) ([]entities.Notification, error) {
	return r.list(ctx, userID, limit, false)
}

func (r *Repository) ListUnread(ctx context.Context, userID string, limit int) ([]entities.Notification, error) {
	return r.list(ctx, userID, limit, true)
}

func (r *Repository) list(ctx context.Context, userID string, limit int, unreadOnly bool) ([]entities.Notification, error) {
	query := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []notificationModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	notifications := make([]entities.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, row.toEntity())
	}
	return notifications, nil
}

func (r *Repository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&notificationModel{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *Repository) MarkAllRead(ctx context.Context, userID string, readAt time.Time) (int, error) {
	result := r.DB.WithContext(ctx).Model(&notificationModel{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]any{
			"read":    true,
			"read_at": readAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(ctx context.Context) (string, error) {
	return uuid.NewString(), nil
}

var (
	_ ports.NotificationRepository = (*Repository)(nil)
	_ ports.Clock                  = SystemClock{}
	_ ports.IDGenerator            = UUIDGenerator{}
)
