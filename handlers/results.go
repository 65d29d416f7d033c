// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/liberatoaguilartamu/barpoll/clock"
	"github.com/liberatoaguilartamu/barpoll/middleware"
	"github.com/liberatoaguilartamu/barpoll/polls"
)

type ResultsHandler struct {
	ledger *polls.Ledger
}

func NewResultsHandler(db *sql.DB, clk clock.Clock) *ResultsHandler {
	return &ResultsHandler{ledger: polls.NewLedger(db, clk)}
}

// GetResults handles GET /polls?city_id=&poll_type=&group_id=
// Tallies are city-wide whichever poll the scope resolves to.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromQuery(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	results, err := h.ledger.Results(r.Context(), scope)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
