package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/syncup/api/internal/core/domain"
)

type VoteRepository interface {
	// SaveVote inserts the vote inside a transaction that locks the parent
	// poll row and re-checks eligibility under the lock, so two concurrent
	// votes by one user on a single-vote poll cannot both land. Returns
	// domain.ErrVoteNotAllowed when the poll is closed and
	// domain.ErrVoteConflict when a live vote by the user already exists.
	SaveVote(ctx context.Context, vote *domain.Vote) error
	HasVoted(ctx context.Context, pollID, userID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vote, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type CastVoteInput struct {
	OptionID uuid.UUID
	UserID   uuid.UUID
}

type VoteService interface {
	CastVote(ctx context.Context, input CastVoteInput) (*domain.Vote, error)
	// CanUserVote recomputes eligibility from persisted state on every call.
	CanUserVote(ctx context.Context, poll *domain.Poll, userID uuid.UUID) (bool, error)
	Retract(ctx context.Context, voteID, userID uuid.UUID) error
}
