package entities

import "time"

type PostType string

const (
	PostTypeArticle PostType = "article"
	PostTypeStatus  PostType = "status"
	PostTypePoll    PostType = "poll"
)

func (t PostType) Valid() bool {
	switch t {
	case PostTypeArticle, PostTypeStatus, PostTypePoll:
		return true
	default:
		return false
	}
}

// Post is the tagged union over the three publishable variants. Shared
// fields are hoisted; the poll-only fields stay zero for other types.
type Post struct {
	PostID     string
	Type       PostType
	Title      string
	Content    string
	Slug       string
	AuthorID   string
	MaxChoices int
	StartsAt   *time.Time
	EndsAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PollOption here is the write-side row; voter sets live with the poll
// engine, which owns the ballot tables.
type PollOption struct {
	OptionID string
	PostID   string
	Text     string
	Position int
}

type Comment struct {
	CommentID string
	PostID    string
	AuthorID  string
	Content   string
	CreatedAt time.Time
}
