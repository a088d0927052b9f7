package entities

import "time"

// Notification kinds currently produced by worker consumers.
const (
	KindNewFollower = "new_follower"
)

type Notification struct {
	NotificationID string
	UserID         string
	Kind           string
	ActorID        string
	Message        string
	Read           bool
	CreatedAt      time.Time
}
