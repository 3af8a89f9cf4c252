package domain

import "github.com/google/uuid"

// Tally maps each live option of a poll to its count of live votes.
// Counts are recomputed from the vote store on demand and never cached.
type Tally map[uuid.UUID]int64

// Total returns the number of live votes across all options.
func (t Tally) Total() int64 {
	var total int64
	for _, n := range t {
		total += n
	}
	return total
}
