package errors

import "errors"

var (
	ErrPostNotFound           = errors.New("post not found")
	ErrForbidden              = errors.New("requester is not the post author")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidPostType        = errors.New("invalid post type")
	ErrTitleRequired          = errors.New("title is required")
	ErrContentRequired        = errors.New("content is required")
	ErrOptionsRequired        = errors.New("a poll needs at least one non-blank option")
	ErrCommentRequired        = errors.New("comment content is required")
	ErrSlugConflict           = errors.New("slug already taken")
)
