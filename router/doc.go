// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the barpoll API.

# Route Registration

NewRouter builds an http.ServeMux with all endpoints and wraps it with
CORS and per-client rate limiting:

	handler := router.NewRouter(db, cfg, clk)

# Endpoints

Health:

	GET /health - 200 OK, or 503 when the database is unreachable

Daily polls:

	GET /polls/today - Today's poll for a city or group scope
	GET /polls       - City-wide results for that poll

Voting:

	POST /votes                  - Cast today's vote
	GET  /users/{id}/vote-status - Whether the user voted today
	GET  /users/{id}/votes       - Vote history, newest first

Groups:

	POST   /groups                            - Create group and today's group poll
	GET    /groups                            - Joined groups and pending invitations
	GET    /groups/{id}                       - Group detail with members
	DELETE /groups/{id}                       - Delete group (admin only)
	POST   /groups/{id}/invitations           - Invite by phone number
	PUT    /groups/{id}/invitations/{user_id} - Accept or deny
	DELETE /groups/{id}/members/{user_id}     - Leave group

Accounts and cities:

	POST /auth/signup
	POST /auth/login
	GET  /users/{id}/profile
	PUT  /users/{id}/profile
	PUT  /users/{id}/password
	GET  /cities
	GET  /cities/{id}
*/
package router
