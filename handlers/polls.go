// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/liberatoaguilartamu/barpoll/apperr"
	"github.com/liberatoaguilartamu/barpoll/clock"
	"github.com/liberatoaguilartamu/barpoll/middleware"
	"github.com/liberatoaguilartamu/barpoll/models"
	"github.com/liberatoaguilartamu/barpoll/polls"
)

var (
	errInvalidPollType = apperr.Validation("invalid_poll_type", `poll_type must be either "city" or "group"`)
	errGroupRequired   = apperr.Validation("group_required", "group_id is required for group polls")
)

type PollHandler struct {
	resolver *polls.Resolver
}

func NewPollHandler(db *sql.DB, clk clock.Clock) *PollHandler {
	return &PollHandler{resolver: polls.NewResolver(db, clk)}
}

// scopeFromQuery reads city_id, poll_type, group_id and user_id.
// poll_type is required and decides whether group_id is used.
func scopeFromQuery(r *http.Request) (polls.Scope, error) {
	q := r.URL.Query()
	scope := polls.Scope{
		CityID:   q.Get("city_id"),
		ViewerID: q.Get("user_id"),
	}
	if scope.CityID == "" {
		return polls.Scope{}, polls.ErrMissingCity
	}

	switch q.Get("poll_type") {
	case models.PollTypeCity:
	case models.PollTypeGroup:
		scope.GroupID = q.Get("group_id")
		if scope.GroupID == "" {
			return polls.Scope{}, errGroupRequired
		}
	default:
		return polls.Scope{}, errInvalidPollType
	}
	return scope, nil
}

// GetToday handles GET /polls/today?city_id=&poll_type=&group_id=&user_id=
func (h *PollHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFromQuery(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	poll, err := h.resolver.Resolve(r.Context(), scope)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TodayPollResponse{Poll: poll})
}
