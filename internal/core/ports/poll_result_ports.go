package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/syncup/api/internal/core/domain"
)

// PollResultRepository is the read-side aggregator. Every method counts
// live votes directly from the vote store; there is no summary table.
type PollResultRepository interface {
	Tally(ctx context.Context, pollID uuid.UUID) (domain.Tally, error)
	// MostVoted returns the live option with the highest live vote count,
	// or nil when the poll has no votes at all. Ties resolve to one of the
	// tied options in storage order.
	MostVoted(ctx context.Context, pollID uuid.UUID) (*domain.OptionResult, error)
}
