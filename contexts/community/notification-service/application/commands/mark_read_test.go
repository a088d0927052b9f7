package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"plume/contexts/community/notification-service/adapters/memory"
	"plume/contexts/community/notification-service/domain/entities"
	domainerrors "plume/contexts/community/notification-service/domain/errors"
)

func TestMarkAllReadSweepsUnread(t *testing.T) {
	store := memory.NewStore()
	store.SetNow(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	for _, id := range []string{"n-1", "n-2", "n-3"} {
		err := store.Insert(ctx, entities.Notification{
			NotificationID: id,
			UserID:         "bob",
			Kind:           entities.KindNewFollower,
			CreatedAt:      time.Date(2026, time.March, 1, 11, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	useCase := MarkAllReadUseCase{Notifications: store, Clock: store}
	result, err := useCase.Execute(ctx, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Marked != 3 {
		t.Fatalf("expected 3 marked, got %d", result.Marked)
	}

	count, err := store.CountUnread(ctx, "bob")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected zero unread after sweep, got %d", count)
	}

	result, err = useCase.Execute(ctx, "bob")
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if result.Marked != 0 {
		t.Fatalf("expected idempotent sweep, got %d", result.Marked)
	}
}

func TestMarkAllReadRequiresAuthentication(t *testing.T) {
	useCase := MarkAllReadUseCase{Notifications: memory.NewStore()}

	_, err := useCase.Execute(context.Background(), "")
	if !errors.Is(err, domainerrors.ErrAuthenticationRequired) {
		t.Fatalf("expected authentication required, got %v", err)
	}
}
