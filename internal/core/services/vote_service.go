package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/syncup/api/internal/core/domain"
	"github.com/syncup/api/internal/core/ports"
)

type voteService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
}

func NewVoteService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository) ports.VoteService {
	return &voteService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
	}
}

// CanUserVote applies the eligibility rule: a closed poll admits no votes,
// a multi-vote poll admits any number, and otherwise the user must not have
// any live vote on any option of the poll. State is read from the store on
// every call; nothing is cached.
func (s *voteService) CanUserVote(ctx context.Context, poll *domain.Poll, userID uuid.UUID) (bool, error) {
	if poll.IsClosed {
		return false, nil
	}
	if poll.AllowMultiVotes {
		return true, nil
	}

	hasVoted, err := s.voteRepo.HasVoted(ctx, poll.ID, userID)
	if err != nil {
		return false, err
	}
	return !hasVoted, nil
}

func (s *voteService) CastVote(ctx context.Context, input ports.CastVoteInput) (*domain.Vote, error) {
	poll, err := s.pollRepo.GetByOptionID(ctx, input.OptionID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.CanUserVote(ctx, poll, input.UserID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrVoteNotAllowed
	}

	vote := &domain.Vote{
		ID:        uuid.New(),
		PollID:    poll.ID,
		OptionID:  input.OptionID,
		UserID:    input.UserID,
		CreatedAt: time.Now(),
	}

	if err := domain.Validate(vote); err != nil {
		return nil, err
	}

	// The repository re-checks eligibility under a row lock on the poll,
	// so the check above cannot be raced into a duplicate vote.
	if err := s.voteRepo.SaveVote(ctx, vote); err != nil {
		return nil, err
	}
	return vote, nil
}

func (s *voteService) Retract(ctx context.Context, voteID, userID uuid.UUID) error {
	vote, err := s.voteRepo.GetByID(ctx, voteID)
	if err != nil {
		return err
	}
	if vote.UserID != userID {
		return domain.ErrVoteNotFound
	}
	return s.voteRepo.SoftDelete(ctx, voteID)
}
