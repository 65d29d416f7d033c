// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package groups manages groups and their memberships.

# Lifecycle

CreateGroup and DeleteGroup each run in a single transaction:

	create: group → admin membership (accepted) → today's group poll
	delete: votes on the group's polls → polls → memberships → group

A failure at any step, including a precondition check, rolls back the
whole operation.

# Membership

Each (group, user) pair has at most one row:

	absent ──invite──▶ pending ──respond──▶ accepted
	                      ▲      └─respond──▶ denied
	                      └───────invite──────┘

Leaving deletes an accepted row outright. The admin can never leave.
Updates are conditional on the current status, so two racing requests
cannot both succeed.
*/
package groups
