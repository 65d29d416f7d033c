// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON. Each carries validate tags checked by
middleware.DecodeJSON:

  - SignupRequest, LoginRequest, UpdateProfileRequest, ChangePasswordRequest
  - CastVoteRequest: user_id, poll_id, bar_id
  - CreateGroupRequest: name, city_id, admin_id
  - DeleteGroupRequest: user_id
  - InviteRequest: phone_number (10 digits), inviter_id
  - RespondRequest: status (accepted | denied)

# Domain Types

  - City, Bar, User, Profile: directory records
  - Poll: one day's poll for a city or a group
  - Vote, VoteRecord: a cast vote and its history view
  - PollResults, BarResult, Voter: aggregated results for a city
  - GroupSummary, GroupDetail, Member, Invitation: group views

# Constants

Poll scopes:

	PollTypeCity  = "city"
	PollTypeGroup = "group"

Membership status:

	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDenied   = "denied"
*/
package models
