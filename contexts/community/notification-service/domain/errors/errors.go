package errors

import "errors"

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidNotification    = errors.New("notification fields are incomplete")
)
