// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /cities", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# CORS and Rate Limiting

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler := middleware.CORS(limiter.Middleware(mux))

Each client IP gets its own token bucket; idle buckets are evicted.
Requests over the limit get 429.

# Request Bodies

DecodeJSON parses a body and runs its validate tags:

	var req models.CastVoteRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

# Errors

WriteError maps apperr kinds to statuses: validation 400, authorization 403,
not found 404, conflict 409. Any other error is logged and returned as a
500 with no detail.

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
