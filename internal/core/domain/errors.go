package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrInvalidPollID  = errors.New("invalid poll id")
	ErrOptionNotFound = errors.New("invalid poll option id")
	ErrVoteNotFound   = errors.New("vote not found")
	ErrUserNotFound   = errors.New("user not found")

	// ErrVoteNotAllowed covers every eligibility failure: closed poll,
	// or a second vote on a single-vote poll.
	ErrVoteNotAllowed = errors.New("user is not allowed to vote on this poll")
	ErrNotPollOwner   = errors.New("only the poll owner may do this")

	// ErrVoteConflict is returned for the vote that loses a concurrent
	// duplicate-vote race; the winning vote stands.
	ErrVoteConflict = errors.New("vote conflicts with a concurrent vote")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports a record that failed the pre-commit validation
// gate. It is a user error and maps to a 4xx response at the boundary.
type ValidationError struct {
	Entity string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, e.Reason)
}

func NewValidationError(entity, reason string) *ValidationError {
	return &ValidationError{Entity: entity, Reason: reason}
}
