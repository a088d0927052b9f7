package entities

import "time"

// Follow is one directed edge in the social graph.
type Follow struct {
	FollowerID string
	FolloweeID string
	CreatedAt  time.Time
}

// Person is the read-side projection of an account, maintained from the
// identity runtime and queried by people search.
type Person struct {
	UserID      string
	Username    string
	DisplayName string
	JoinedAt    time.Time
}
