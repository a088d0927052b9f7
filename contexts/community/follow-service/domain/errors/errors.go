package errors

import "errors"

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrSelfFollow             = errors.New("cannot follow yourself")
	ErrPersonNotFound         = errors.New("person not found")
	ErrInvalidUserID          = errors.New("user id is required")
)
