package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Field length bounds enforced by the validation gate.
const (
	MaxQuestionLength   = 500
	MaxOptionTextLength = 255
)

// Validate is the pre-commit validation gate. Write paths call it on the
// assembled record immediately before persistence, on creation and on any
// later update. A failure means nothing was committed.
//
// An unknown record kind is a programming error, not user input, so it
// panics instead of returning a *ValidationError.
func Validate(record any) error {
	switch r := record.(type) {
	case *Poll:
		return validatePoll(r)
	case *PollOption:
		return validatePollOption(r)
	case *Vote:
		return validateVote(r)
	case *User:
		return validateUser(r)
	default:
		panic(fmt.Sprintf("domain.Validate: unsupported record type %T", record))
	}
}

func validatePoll(p *Poll) error {
	if strings.TrimSpace(p.Question) == "" {
		return NewValidationError("poll", "question cannot be empty")
	}
	if len(p.Question) > MaxQuestionLength {
		return NewValidationError("poll", fmt.Sprintf("question cannot exceed %d characters", MaxQuestionLength))
	}
	if len(p.Options) < 2 {
		return NewValidationError("poll", "poll must have at least two options")
	}
	for i := range p.Options {
		if err := validatePollOption(&p.Options[i]); err != nil {
			return err
		}
	}
	return nil
}

func validatePollOption(o *PollOption) error {
	if strings.TrimSpace(o.Text) == "" {
		return NewValidationError("poll option", "text cannot be empty")
	}
	if len(o.Text) > MaxOptionTextLength {
		return NewValidationError("poll option", fmt.Sprintf("text cannot exceed %d characters", MaxOptionTextLength))
	}
	return nil
}

func validateVote(v *Vote) error {
	if v.OptionID == uuid.Nil {
		return NewValidationError("vote", "a vote must have a selected option")
	}
	if v.UserID == uuid.Nil {
		return NewValidationError("vote", "a vote must have a voter")
	}
	return nil
}

func validateUser(u *User) error {
	if strings.TrimSpace(u.Name) == "" {
		return NewValidationError("user", "name cannot be empty")
	}
	if !strings.Contains(u.Email, "@") {
		return NewValidationError("user", "email is not valid")
	}
	return nil
}
