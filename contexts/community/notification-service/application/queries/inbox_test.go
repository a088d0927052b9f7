package queries

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"plume/contexts/community/notification-service/adapters/memory"
	"plume/contexts/community/notification-service/domain/entities"
	domainerrors "plume/contexts/community/notification-service/domain/errors"
)

func seedInbox(t *testing.T, store *memory.Store, userID string, count int) {
	t.Helper()
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		err := store.Insert(context.Background(), entities.Notification{
			NotificationID: fmt.Sprintf("n-%03d", i),
			UserID:         userID,
			Kind:           entities.KindNewFollower,
			ActorID:        fmt.Sprintf("actor-%d", i),
			Message:        "started following you",
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func TestInboxListCapsAtLimit(t *testing.T) {
	store := memory.NewStore()
	seedInbox(t, store, "bob", 25)
	useCase := InboxUseCase{Notifications: store}

	rows, err := useCase.List(context.Background(), "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != InboxLimit {
		t.Fatalf("expected cap of %d, got %d", InboxLimit, len(rows))
	}
	if rows[0].NotificationID != "n-024" {
		t.Fatalf("expected newest first, got %s", rows[0].NotificationID)
	}
}

func TestInboxSummaryCountsAndPreviews(t *testing.T) {
	store := memory.NewStore()
	seedInbox(t, store, "bob", 8)
	useCase := InboxUseCase{Notifications: store}

	summary, err := useCase.Summary(context.Background(), "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Unread != 8 {
		t.Fatalf("expected 8 unread, got %d", summary.Unread)
	}
	if len(summary.Recent) != SummaryLimit {
		t.Fatalf("expected preview of %d, got %d", SummaryLimit, len(summary.Recent))
	}
}

func TestInboxRequiresAuthentication(t *testing.T) {
	useCase := InboxUseCase{Notifications: memory.NewStore()}

	if _, err := useCase.List(context.Background(), ""); !errors.Is(err, domainerrors.ErrAuthenticationRequired) {
		t.Fatalf("expected authentication required, got %v", err)
	}
	if _, err := useCase.Summary(context.Background(), "  "); !errors.Is(err, domainerrors.ErrAuthenticationRequired) {
		t.Fatalf("expected authentication required, got %v", err)
	}
}

func TestInboxScopedPerUser(t *testing.T) {
	store := memory.NewStore()
	seedInbox(t, store, "bob", 3)
	seedInbox(t, store, "carol", 2)
	useCase := InboxUseCase{Notifications: store}

	rows, err := useCase.List(context.Background(), "carol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected carol's 2 notifications, got %d", len(rows))
	}
	for _, row := range rows {
		if row.UserID != "carol" {
			t.Fatalf("leaked notification for %s", row.UserID)
		}
	}
}
