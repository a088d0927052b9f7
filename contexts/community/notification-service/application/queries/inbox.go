package queries

import (
	"context"
	"strings"

	"plume/contexts/community/notification-service/domain/entities"
	domainerrors "plume/contexts/community/notification-service/domain/errors"
	"plume/contexts/community/notification-service/ports"
)

const (
	// InboxLimit caps the full inbox listing.
	InboxLimit = 20
	// SummaryLimit caps the unread preview in the badge summary.
	SummaryLimit = 5
)

// UnreadSummary backs the header badge: total unread plus a short preview.
type UnreadSummary struct {
	Unread int
	Recent []entities.Notification
}

type InboxUseCase struct {
	Notifications ports.NotificationRepository
}

// List returns the newest notifications for the user, read or not, capped
// at InboxLimit.
func (uc InboxUseCase) List(ctx context.Context, userID string) ([]entities.Notification, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.ErrAuthenticationRequired
	}
	return uc.Notifications.ListRecent(ctx, userID, InboxLimit)
}

// Summary returns the unread count and a preview of the newest unread rows.
func (uc InboxUseCase) Summary(ctx context.Context, userID string) (UnreadSummary, error) {
	if strings.TrimSpace(userID) == "" {
		return UnreadSummary{}, domainerrors.ErrAuthenticationRequired
	}
	unread, err := uc.Notifications.CountUnread(ctx, userID)
	if err != nil {
		return UnreadSummary{}, err
	}
	recent, err := uc.Notifications.ListUnread(ctx, userID, SummaryLimit)
	if err != nil {
		return UnreadSummary{}, err
	}
	return UnreadSummary{Unread: unread, Recent: recent}, nil
}
