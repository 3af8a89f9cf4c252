package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/syncup/api/internal/core/domain"
	"github.com/syncup/api/internal/core/ports"
)

type pollResultRepository struct {
	db *sql.DB
}

func NewPollResultRepository(db *sql.DB) ports.PollResultRepository {
	return &pollResultRepository{
		db: db,
	}
}

// Tally counts live votes per live option straight from the votes table.
// The LEFT JOIN keeps zero-vote options in the result.
func (r *pollResultRepository) Tally(ctx context.Context, pollID uuid.UUID) (domain.Tally, error) {
	query := `
		SELECT o.id, COUNT(v.id)
		FROM poll_options o
		LEFT JOIN votes v ON v.option_id = o.id AND v.deleted_at IS NULL
		WHERE o.poll_id = $1 AND o.deleted_at IS NULL
		GROUP BY o.id
	`

	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to tally poll %s: %w", pollID, err)
	}
	defer rows.Close()

	tally := make(domain.Tally)
	for rows.Next() {
		var optionID uuid.UUID
		var count int64
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan tally row: %w", err)
		}
		tally[optionID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tally: %w", err)
	}

	return tally, nil
}

// MostVoted returns the leading option of the poll. The inner join means
// options without a single live vote never qualify; with no votes at all
// the result is nil. Ties resolve to the first row of the grouped query.
func (r *pollResultRepository) MostVoted(ctx context.Context, pollID uuid.UUID) (*domain.OptionResult, error) {
	query := `
		SELECT o.id, o.poll_id, o.text, o.created_at, COUNT(v.id) AS vote_count
		FROM poll_options o
		JOIN votes v ON v.option_id = o.id AND v.deleted_at IS NULL
		WHERE o.poll_id = $1 AND o.deleted_at IS NULL
		GROUP BY o.id, o.poll_id, o.text, o.created_at
		ORDER BY vote_count DESC, o.created_at, o.id
		LIMIT 1
	`

	var result domain.OptionResult
	err := r.db.QueryRowContext(ctx, query, pollID).Scan(
		&result.Option.ID, &result.Option.PollID, &result.Option.Text, &result.Option.CreatedAt, &result.VoteCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get most voted option: %w", err)
	}

	return &result, nil
}
