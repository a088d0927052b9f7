package errors

import (
	"errors"
	"fmt"
)

var (
	ErrPollNotFound           = errors.New("poll not found")
	ErrOptionNotFound         = errors.New("poll option not found")
	ErrPollClosed             = errors.New("poll is closed")
	ErrChoiceLimitExceeded    = errors.New("poll choice limit exceeded")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidBallotInput     = errors.New("invalid ballot input")
)

// ChoiceLimitError carries the poll's limit so transports can report it.
// It matches ErrChoiceLimitExceeded under errors.Is.
type ChoiceLimitError struct {
	Max int
}

func (e ChoiceLimitError) Error() string {
	return fmt.Sprintf("poll allows at most %d choices", e.Max)
}

func (e ChoiceLimitError) Is(target error) bool {
	return target == ErrChoiceLimitExceeded
}
