// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package groups

import "github.com/liberatoaguilartamu/barpoll/apperr"

var (
	ErrInvalidGroupName   = apperr.Validation("invalid_group_name", "Group name is required")
	ErrDuplicateGroupName = apperr.Conflict("duplicate_group_name", "A group with this name already exists in this city")
	ErrGroupNotFound      = apperr.NotFound("group_not_found", "Group not found")
	ErrNotAuthorized      = apperr.Authorization("not_authorized", "Only the group admin can delete the group")
	ErrNotAMember         = apperr.Authorization("not_a_member", "You are not a member of this group")
	ErrAlreadyMember      = apperr.Conflict("already_member", "User is already a member of this group")
	ErrAlreadyInvited     = apperr.Conflict("already_invited", "User has already been invited to this group")
	ErrInvitationNotFound = apperr.NotFound("invitation_not_found", "Invitation not found")
	ErrAlreadyResponded   = apperr.Conflict("already_responded", "This invitation has already been responded to")
	ErrAdminCannotLeave   = apperr.Conflict("admin_cannot_leave", "Group admins cannot leave their group")
	ErrInvalidDecision    = apperr.Validation("invalid_decision", `Status must be "accepted" or "denied"`)
)
