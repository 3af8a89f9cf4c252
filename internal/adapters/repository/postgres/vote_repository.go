package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/syncup/api/internal/core/domain"
	"github.com/syncup/api/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// SaveVote inserts the vote in a single transaction. The parent poll row is
// locked with FOR UPDATE first, which serializes concurrent casts on the
// same poll: the eligibility re-check below therefore sees every vote that
// committed before this one, and two simultaneous casts by one user on a
// single-vote poll cannot both pass.
func (r *voteRepository) SaveVote(ctx context.Context, vote *domain.Vote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryPoll := `
		SELECT is_closed, allow_multi_votes
		FROM polls
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`
	var isClosed, allowMulti bool
	err = tx.QueryRowContext(ctx, queryPoll, vote.PollID).Scan(&isClosed, &allowMulti)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrPollNotFound
		}
		return fmt.Errorf("failed to lock poll: %w", err)
	}

	if isClosed {
		return domain.ErrVoteNotAllowed
	}

	if !allowMulti {
		var exists int
		queryExisting := `
			SELECT 1 FROM votes
			WHERE poll_id = $1 AND user_id = $2 AND deleted_at IS NULL
			LIMIT 1
		`
		err = tx.QueryRowContext(ctx, queryExisting, vote.PollID, vote.UserID).Scan(&exists)
		if err == nil {
			return domain.ErrVoteConflict
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check existing vote: %w", err)
		}
	}

	queryInsert := `
		INSERT INTO votes (id, poll_id, option_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, queryInsert, vote.ID, vote.PollID, vote.OptionID, vote.UserID).Scan(&vote.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrVoteConflict
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

func (r *voteRepository) HasVoted(ctx context.Context, pollID, userID uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM votes WHERE poll_id = $1 AND user_id = $2 AND deleted_at IS NULL LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, pollID, userID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return true, nil
}

func (r *voteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vote, error) {
	query := `
		SELECT id, poll_id, option_id, user_id, created_at
		FROM votes
		WHERE id = $1 AND deleted_at IS NULL
	`
	var vote domain.Vote
	err := r.db.QueryRowContext(ctx, query, id).Scan(&vote.ID, &vote.PollID, &vote.OptionID, &vote.UserID, &vote.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &vote, nil
}

func (r *voteRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE votes SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrVoteNotFound
	}
	return nil
}
