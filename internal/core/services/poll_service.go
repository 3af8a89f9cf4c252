package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/syncup/api/internal/core/domain"
	"github.com/syncup/api/internal/core/ports"
)

type pollService struct {
	repo       ports.PollRepository
	resultRepo ports.PollResultRepository
}

func NewPollService(repo ports.PollRepository, resultRepo ports.PollResultRepository) ports.PollService {
	return &pollService{
		repo:       repo,
		resultRepo: resultRepo,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.PollSummary, error) {
	pollID := uuid.New()
	now := time.Now()

	poll := &domain.Poll{
		ID:              pollID,
		Question:        input.Question,
		OwnerID:         input.OwnerID,
		AllowMultiVotes: input.AllowMultiVotes,
		CreatedAt:       now,
	}

	for _, optText := range input.Options {
		poll.Options = append(poll.Options, domain.PollOption{
			ID:        uuid.New(),
			PollID:    pollID,
			Text:      optText,
			CreatedAt: now,
		})
	}

	// Validation gate: the assembled poll and all of its options are
	// checked before anything touches the store. A single blank option
	// text fails the whole creation.
	if err := domain.Validate(poll); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, err
	}

	summary := &domain.PollSummary{Poll: *poll}
	for _, opt := range poll.Options {
		summary.Options = append(summary.Options, domain.OptionResult{Option: opt})
	}
	return summary, nil
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.PollSummary, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	return s.summarize(ctx, poll)
}

func (s *pollService) ListPolls(ctx context.Context) ([]domain.PollSummary, error) {
	polls, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all polls: %w", err)
	}

	summaries := make([]domain.PollSummary, 0, len(polls))
	for _, poll := range polls {
		summary, err := s.summarize(ctx, poll)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *pollService) MostVotedOption(ctx context.Context, id string) (*domain.OptionResult, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	if _, err := s.repo.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	return s.resultRepo.MostVoted(ctx, pollID)
}

// Close marks the poll as closed. There is no reopen. Existing votes are
// untouched; only the poll owner may close it.
func (s *pollService) Close(ctx context.Context, id string, actorID uuid.UUID) error {
	poll, err := s.ownedPoll(ctx, id, actorID)
	if err != nil {
		return err
	}
	return s.repo.Close(ctx, poll.ID)
}

func (s *pollService) Delete(ctx context.Context, id string, actorID uuid.UUID) error {
	poll, err := s.ownedPoll(ctx, id, actorID)
	if err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, poll.ID)
}

func (s *pollService) ownedPoll(ctx context.Context, id string, actorID uuid.UUID) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll.OwnerID != actorID {
		return nil, domain.ErrNotPollOwner
	}
	return poll, nil
}

func (s *pollService) summarize(ctx context.Context, poll *domain.Poll) (*domain.PollSummary, error) {
	tally, err := s.resultRepo.Tally(ctx, poll.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to tally poll %s: %w", poll.ID, err)
	}

	summary := &domain.PollSummary{Poll: *poll}
	for _, opt := range poll.Options {
		summary.Options = append(summary.Options, domain.OptionResult{
			Option:    opt,
			VoteCount: tally[opt.ID],
		})
	}
	return summary, nil
}
