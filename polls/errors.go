// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import "github.com/liberatoaguilartamu/barpoll/apperr"

var (
	ErrMissingCity       = apperr.Validation("city_required", "city_id is required")
	ErrPollNotFound      = apperr.NotFound("poll_not_found", "No poll found for today")
	ErrPollInactive      = apperr.NotFound("poll_inactive", "Poll not found or not active today")
	ErrAlreadyVotedToday = apperr.Conflict("already_voted_today", "You have already voted today")
	ErrBarCityMismatch   = apperr.NotFound("bar_city_mismatch", "Bar not found or not in the same city as the poll")
	ErrNotGroupMember    = apperr.Authorization("not_a_member", "You must be a member of the group to see its poll")
)
