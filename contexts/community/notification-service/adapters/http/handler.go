package httpadapter

import (
	"context"
	"log/slog"

	"plume/contexts/community/notification-service/application/commands"
	"plume/contexts/community/notification-service/application/queries"
	"plume/contexts/community/notification-service/domain/entities"
	httptransport "plume/contexts/community/notification-service/transport/http"
)

type Handler struct {
	Inbox       queries.InboxUseCase
	MarkAllRead commands.MarkAllReadUseCase
	Logger      *slog.Logger
}

func (h Handler) InboxHandler(ctx context.Context, userID string) (httptransport.InboxResponse, error) {
	rows, err := h.Inbox.List(ctx, userID)
	if err != nil {
		return httptransport.InboxResponse{}, err
	}
	return httptransport.InboxResponse{Items: mapNotifications(rows)}, nil
}

func (h Handler) SummaryHandler(ctx context.Context, userID string) (httptransport.SummaryResponse, error) {
	summary, err := h.Inbox.Summary(ctx, userID)
	if err != nil {
		return httptransport.SummaryResponse{}, err
	}
	return httptransport.SummaryResponse{
		Unread: summary.Unread,
		Recent: mapNotifications(summary.Recent),
	}, nil
}

func (h Handler) MarkAllReadHandler(ctx context.Context, userID string) (httptransport.MarkAllReadResponse, error) {
	result, err := h.MarkAllRead.Execute(ctx, userID)
	if err != nil {
		return httptransport.MarkAllReadResponse{}, err
	}
	return httptransport.MarkAllReadResponse{Marked: result.Marked}, nil
}

func mapNotifications(rows []entities.Notification) []httptransport.NotificationPayload {
	items := make([]httptransport.NotificationPayload, 0, len(rows))
	for _, row := range rows {
		items = append(items, httptransport.NotificationPayload{
			ID:        row.NotificationID,
			Kind:      row.Kind,
			ActorID:   row.ActorID,
			Message:   row.Message,
			Read:      row.Read,
			CreatedAt: row.CreatedAt,
		})
	}
	return items
}
