// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the barpoll API.

# Handler Types

Each handler is a thin struct over a domain service:

  - PollHandler: Today's poll for a city or group scope
  - ResultsHandler: City-wide tallies for the resolved poll
  - VotingHandler: Casting votes, daily vote status and vote history
  - GroupHandler: Group lifecycle, invitations and membership
  - AccountHandler: Signup, login, profile, password and cities

Handlers are created via constructor functions that accept *sql.DB and the
clock that decides which day is "today":

	pollHandler := handlers.NewPollHandler(db, clk)

# Poll Scope

Poll lookups take the scope from the query string:

	GET /polls/today?city_id=...&poll_type=city
	GET /polls/today?city_id=...&poll_type=group&group_id=...&user_id=...

When user_id is given on a group scope the user must be an accepted member.

# Voting

	POST /votes                 → CastVote (one vote per user per day)
	GET  /users/{id}/vote-status → GetVoteStatus
	GET  /users/{id}/votes       → GetVoteHistory

# Groups

	POST   /groups                             → CreateGroup (also opens today's group poll)
	DELETE /groups/{id}                        → DeleteGroup (admin only)
	POST   /groups/{id}/invitations            → Invite
	PUT    /groups/{id}/invitations/{user_id}  → Respond
	DELETE /groups/{id}/members/{user_id}      → Leave

# Errors

Rejections from the domain packages are written with middleware.WriteError,
which maps their kind to 400, 403, 404 or 409. Anything else is a 500.
*/
package handlers
