// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/liberatoaguilartamu/barpoll/apperr"
	"github.com/liberatoaguilartamu/barpoll/clock"
	"github.com/liberatoaguilartamu/barpoll/middleware"
	"github.com/liberatoaguilartamu/barpoll/models"
	"github.com/liberatoaguilartamu/barpoll/polls"
)

var errInvalidLimit = apperr.Validation("invalid_limit", "limit must be a positive number")

type VotingHandler struct {
	ledger *polls.Ledger
}

func NewVotingHandler(db *sql.DB, clk clock.Clock) *VotingHandler {
	return &VotingHandler{ledger: polls.NewLedger(db, clk)}
}

// CastVote handles POST /votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	vote, err := h.ledger.CastVote(r.Context(), req.UserID, req.PollID, req.BarID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:  vote.ID,
		Message: "Vote recorded successfully",
	})
}

// GetVoteStatus handles GET /users/{id}/vote-status
func (h *VotingHandler) GetVoteStatus(w http.ResponseWriter, r *http.Request) {
	voted, err := h.ledger.HasVotedToday(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteStatusResponse{HasVoted: voted})
}

// GetVoteHistory handles GET /users/{id}/votes?limit=
func (h *VotingHandler) GetVoteHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			middleware.WriteError(w, errInvalidLimit)
			return
		}
		limit = n
	}

	votes, err := h.ledger.History(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteHistoryResponse{Votes: votes})
}
