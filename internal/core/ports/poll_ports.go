package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/syncup/api/internal/core/domain"
)

type PollRepository interface {
	// Save persists a poll together with all of its options as one
	// transaction; on failure nothing is written.
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	// GetByOptionID resolves the poll owning the given live option.
	GetByOptionID(ctx context.Context, optionID uuid.UUID) (*domain.Poll, error)
	GetAll(ctx context.Context) ([]*domain.Poll, error)
	Close(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type CreatePollInput struct {
	Question        string
	OwnerID         uuid.UUID
	Options         []string
	AllowMultiVotes bool
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.PollSummary, error)
	GetPoll(ctx context.Context, id string) (*domain.PollSummary, error)
	ListPolls(ctx context.Context) ([]domain.PollSummary, error)
	MostVotedOption(ctx context.Context, id string) (*domain.OptionResult, error)
	Close(ctx context.Context, id string, actorID uuid.UUID) error
	Delete(ctx context.Context, id string, actorID uuid.UUID) error
}
