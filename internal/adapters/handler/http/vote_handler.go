package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/syncup/api/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type castVoteRequest struct {
	PollOptionID uuid.UUID `json:"poll_option_id"`
}

// CastVote godoc
// @Summary      Casts a vote
// @Description  Votes for the given option as the authenticated user. 404 for an unknown option, 403 when the poll is closed or the user already voted, 409 for the loser of a concurrent duplicate vote.
// @Tags         votes
// @Accept       json
// @Success      201
// @Failure      403
// @Failure      404
// @Failure      409
// @Router       /api/votes [post]
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	vote, err := h.service.CastVote(r.Context(), ports.CastVoteInput{
		OptionID: req.PollOptionID,
		UserID:   userID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"vote_id": vote.ID.String()})
}

// RetractVote soft-deletes one of the caller's own votes, restoring their
// eligibility on a single-vote poll.
func (h *VoteHandler) RetractVote(w http.ResponseWriter, r *http.Request) {
	voteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid vote id", http.StatusBadRequest)
		return
	}

	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	if err := h.service.Retract(r.Context(), voteID, userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
