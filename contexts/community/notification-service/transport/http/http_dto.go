package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type NotificationPayload struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	ActorID   string    `json:"actor_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type InboxResponse struct {
	Items []NotificationPayload `json:"items"`
}

type SummaryResponse struct {
	Unread int                   `json:"unread"`
	Recent []NotificationPayload `json:"recent"`
}

type MarkAllReadResponse struct {
	Marked int `json:"marked"`
}
