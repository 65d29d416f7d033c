// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/liberatoaguilartamu/barpoll/clock"
	"github.com/liberatoaguilartamu/barpoll/cliparse"
	"github.com/liberatoaguilartamu/barpoll/handlers"
	"github.com/liberatoaguilartamu/barpoll/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, clk clock.Clock) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(db, clk)
	resultsHandler := handlers.NewResultsHandler(db, clk)
	votingHandler := handlers.NewVotingHandler(db, clk)
	groupHandler := handlers.NewGroupHandler(db, clk)
	accountHandler := handlers.NewAccountHandler(db, clk)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Daily polls
	mux.HandleFunc("GET /polls/today", middleware.WithLogging(pollHandler.GetToday))
	mux.HandleFunc("GET /polls", middleware.WithLogging(resultsHandler.GetResults))

	// Voting
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /users/{id}/vote-status", middleware.WithLogging(votingHandler.GetVoteStatus))
	mux.HandleFunc("GET /users/{id}/votes", middleware.WithLogging(votingHandler.GetVoteHistory))

	// Groups
	mux.HandleFunc("POST /groups", middleware.WithLogging(groupHandler.CreateGroup))
	mux.HandleFunc("GET /groups", middleware.WithLogging(groupHandler.ListGroups))
	mux.HandleFunc("GET /groups/{id}", middleware.WithLogging(groupHandler.GetGroup))
	mux.HandleFunc("DELETE /groups/{id}", middleware.WithLogging(groupHandler.DeleteGroup))
	mux.HandleFunc("POST /groups/{id}/invitations", middleware.WithLogging(groupHandler.Invite))
	mux.HandleFunc("PUT /groups/{id}/invitations/{user_id}", middleware.WithLogging(groupHandler.Respond))
	mux.HandleFunc("DELETE /groups/{id}/members/{user_id}", middleware.WithLogging(groupHandler.Leave))

	// Accounts
	mux.HandleFunc("POST /auth/signup", middleware.WithLogging(accountHandler.Signup))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("GET /users/{id}/profile", middleware.WithLogging(accountHandler.GetProfile))
	mux.HandleFunc("PUT /users/{id}/profile", middleware.WithLogging(accountHandler.UpdateProfile))
	mux.HandleFunc("PUT /users/{id}/password", middleware.WithLogging(accountHandler.ChangePassword))

	// Cities
	mux.HandleFunc("GET /cities", middleware.WithLogging(accountHandler.ListCities))
	mux.HandleFunc("GET /cities/{id}", middleware.WithLogging(accountHandler.GetCity))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("barpoll API v1"))
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	return middleware.CORS(limiter.Middleware(mux))
}
