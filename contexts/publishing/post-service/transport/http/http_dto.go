package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePostRequest struct {
	Type       string     `json:"type"`
	Title      string     `json:"title,omitempty"`
	Content    string     `json:"content,omitempty"`
	StartsAt   *time.Time `json:"starts_at,omitempty"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
	MaxChoices int        `json:"max_choices,omitempty"`
	Options    []string   `json:"options,omitempty"`
}

type EditPostRequest struct {
	Title      *string    `json:"title,omitempty"`
	Content    *string    `json:"content,omitempty"`
	StartsAt   *time.Time `json:"starts_at,omitempty"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
	MaxChoices *int       `json:"max_choices,omitempty"`
	Options    []string   `json:"options,omitempty"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

type PostPayload struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title,omitempty"`
	Content    string     `json:"content,omitempty"`
	Slug       string     `json:"slug"`
	AuthorID   string     `json:"author_id"`
	MaxChoices int        `json:"max_choices,omitempty"`
	StartsAt   *time.Time `json:"starts_at,omitempty"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type FeedResponse struct {
	Items      []PostPayload `json:"items"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	TotalRows  int64         `json:"total_rows"`
	PageSize   int           `json:"page_size"`
}

type HomeResponse struct {
	Items []PostPayload `json:"items"`
}

type CommentPayload struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type PollOptionPayload struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type PostDetailResponse struct {
	Post     PostPayload         `json:"post"`
	Likes    int                 `json:"likes"`
	Liked    bool                `json:"liked"`
	Comments []CommentPayload    `json:"comments"`
	Options  []PollOptionPayload `json:"options,omitempty"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
