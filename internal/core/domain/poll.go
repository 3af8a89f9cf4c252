package domain

import (
	"time"

	"github.com/google/uuid"
)

type Poll struct {
	ID              uuid.UUID    `json:"id"`
	Question        string       `json:"question"`
	OwnerID         uuid.UUID    `json:"owner_id"`
	AllowMultiVotes bool         `json:"allow_multi_votes"`
	IsClosed        bool         `json:"is_closed"`
	Options         []PollOption `json:"options"`
	CreatedAt       time.Time    `json:"created_at"`
	DeletedAt       *time.Time   `json:"deleted_at,omitempty"`
}

type PollOption struct {
	ID        uuid.UUID  `json:"id"`
	PollID    uuid.UUID  `json:"poll_id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// PollSummary is the read-side view of a poll: its options annotated with
// live vote counts, recomputed from the vote store on every call.
type PollSummary struct {
	Poll    Poll           `json:"poll"`
	Options []OptionResult `json:"options"`
}

type OptionResult struct {
	Option    PollOption `json:"option"`
	VoteCount int64      `json:"vote_count"`
}

// Option returns the poll's option with the given id, or nil when the poll
// has no such option.
func (p *Poll) Option(id uuid.UUID) *PollOption {
	for i := range p.Options {
		if p.Options[i].ID == id {
			return &p.Options[i]
		}
	}
	return nil
}
