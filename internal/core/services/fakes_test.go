package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/syncup/api/internal/core/domain"
)

func nowRef() time.Time {
	return time.Now()
}

// In-memory repositories honoring the same contracts as the postgres
// adapters, including the locked eligibility re-check on vote insert.

type fakeStore struct {
	mu    sync.Mutex
	polls map[uuid.UUID]*domain.Poll
	votes map[uuid.UUID]*domain.Vote
	users map[uuid.UUID]*domain.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		polls: make(map[uuid.UUID]*domain.Poll),
		votes: make(map[uuid.UUID]*domain.Vote),
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (s *fakeStore) livePoll(id uuid.UUID) *domain.Poll {
	poll, ok := s.polls[id]
	if !ok || poll.DeletedAt != nil {
		return nil
	}
	return poll
}

func (s *fakeStore) hasLiveVote(pollID, userID uuid.UUID) bool {
	for _, v := range s.votes {
		if v.PollID == pollID && v.UserID == userID && v.DeletedAt == nil {
			return true
		}
	}
	return false
}

type fakePollRepo struct {
	store *fakeStore
}

func (r *fakePollRepo) Save(_ context.Context, poll *domain.Poll) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *poll
	r.store.polls[poll.ID] = &clone
	return nil
}

func (r *fakePollRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Poll, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	poll := r.store.livePoll(id)
	if poll == nil {
		return nil, domain.ErrPollNotFound
	}
	clone := *poll
	return &clone, nil
}

func (r *fakePollRepo) GetByOptionID(_ context.Context, optionID uuid.UUID) (*domain.Poll, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, poll := range r.store.polls {
		if poll.DeletedAt != nil {
			continue
		}
		if opt := poll.Option(optionID); opt != nil && opt.DeletedAt == nil {
			clone := *poll
			return &clone, nil
		}
	}
	return nil, domain.ErrOptionNotFound
}

func (r *fakePollRepo) GetAll(_ context.Context) ([]*domain.Poll, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var polls []*domain.Poll
	for _, poll := range r.store.polls {
		if poll.DeletedAt == nil {
			clone := *poll
			polls = append(polls, &clone)
		}
	}
	return polls, nil
}

func (r *fakePollRepo) Close(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	poll := r.store.livePoll(id)
	if poll == nil {
		return domain.ErrPollNotFound
	}
	poll.IsClosed = true
	return nil
}

func (r *fakePollRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	poll := r.store.livePoll(id)
	if poll == nil {
		return domain.ErrPollNotFound
	}
	now := nowRef()
	poll.DeletedAt = &now
	return nil
}

type fakeVoteRepo struct {
	store *fakeStore
}

func (r *fakeVoteRepo) SaveVote(_ context.Context, vote *domain.Vote) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	poll := r.store.livePoll(vote.PollID)
	if poll == nil {
		return domain.ErrPollNotFound
	}
	if poll.IsClosed {
		return domain.ErrVoteNotAllowed
	}
	if !poll.AllowMultiVotes && r.store.hasLiveVote(vote.PollID, vote.UserID) {
		return domain.ErrVoteConflict
	}

	clone := *vote
	r.store.votes[vote.ID] = &clone
	return nil
}

func (r *fakeVoteRepo) HasVoted(_ context.Context, pollID, userID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.hasLiveVote(pollID, userID), nil
}

func (r *fakeVoteRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Vote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	vote, ok := r.store.votes[id]
	if !ok || vote.DeletedAt != nil {
		return nil, domain.ErrVoteNotFound
	}
	clone := *vote
	return &clone, nil
}

func (r *fakeVoteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	vote, ok := r.store.votes[id]
	if !ok || vote.DeletedAt != nil {
		return domain.ErrVoteNotFound
	}
	now := nowRef()
	vote.DeletedAt = &now
	return nil
}

type fakeResultRepo struct {
	store *fakeStore
}

func (r *fakeResultRepo) Tally(_ context.Context, pollID uuid.UUID) (domain.Tally, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tally := make(domain.Tally)
	poll := r.store.livePoll(pollID)
	if poll == nil {
		return tally, nil
	}
	for _, opt := range poll.Options {
		if opt.DeletedAt == nil {
			tally[opt.ID] = 0
		}
	}
	for _, vote := range r.store.votes {
		if vote.DeletedAt != nil {
			continue
		}
		if _, ok := tally[vote.OptionID]; ok {
			tally[vote.OptionID]++
		}
	}
	return tally, nil
}

func (r *fakeResultRepo) MostVoted(ctx context.Context, pollID uuid.UUID) (*domain.OptionResult, error) {
	tally, err := r.Tally(ctx, pollID)
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	poll := r.store.livePoll(pollID)
	if poll == nil {
		return nil, nil
	}

	var best *domain.OptionResult
	for _, opt := range poll.Options {
		count := tally[opt.ID]
		if count == 0 {
			continue
		}
		if best == nil || count > best.VoteCount {
			best = &domain.OptionResult{Option: opt, VoteCount: count}
		}
	}
	return best, nil
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email && u.DeletedAt == nil {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	r.store.users[user.ID] = &clone
	return nil
}
