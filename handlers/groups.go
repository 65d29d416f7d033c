// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/liberatoaguilartamu/barpoll/apperr"
	"github.com/liberatoaguilartamu/barpoll/clock"
	"github.com/liberatoaguilartamu/barpoll/groups"
	"github.com/liberatoaguilartamu/barpoll/middleware"
	"github.com/liberatoaguilartamu/barpoll/models"
)

var errUserRequired = apperr.Validation("user_required", "user_id is required")

type GroupHandler struct {
	lifecycle  *groups.Lifecycle
	membership *groups.Membership
}

func NewGroupHandler(db *sql.DB, clk clock.Clock) *GroupHandler {
	return &GroupHandler{
		lifecycle:  groups.NewLifecycle(db, clk),
		membership: groups.NewMembership(db),
	}
}

// CreateGroup handles POST /groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGroupRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	group, err := h.lifecycle.CreateGroup(r.Context(), req.Name, req.CityID, req.AdminID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateGroupResponse{
		Group:   group,
		Message: "Group created successfully with a poll for today",
	})
}

// DeleteGroup handles DELETE /groups/{id}
// The requesting user_id travels in the body.
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteGroupRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	name, err := h.lifecycle.DeleteGroup(r.Context(), r.PathValue("id"), req.UserID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Group %q has been deleted", name),
	})
}

// ListGroups handles GET /groups?user_id=&city_id=
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		middleware.WriteError(w, errUserRequired)
		return
	}

	resp, err := h.membership.ListForUser(r.Context(), userID, r.URL.Query().Get("city_id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetGroup handles GET /groups/{id}?user_id=
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		middleware.WriteError(w, errUserRequired)
		return
	}

	detail, err := h.membership.Members(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GroupDetailResponse{Group: detail})
}

// Invite handles POST /groups/{id}/invitations
func (h *GroupHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req models.InviteRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	if _, err := h.membership.Invite(r.Context(), r.PathValue("id"), req.PhoneNumber, req.InviterID); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{
		Message: "Invitation sent successfully",
	})
}

// Respond handles PUT /groups/{id}/invitations/{user_id}
func (h *GroupHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req models.RespondRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	group, err := h.membership.Respond(r.Context(), r.PathValue("id"), r.PathValue("user_id"), req.Status)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	message := "Invitation declined"
	if req.Status == models.StatusAccepted {
		message = "You have joined the group"
	}

	middleware.JSONResponse(w, http.StatusOK, models.RespondResponse{
		Status:  req.Status,
		Message: message,
		Group:   group,
	})
}

// Leave handles DELETE /groups/{id}/members/{user_id}
func (h *GroupHandler) Leave(w http.ResponseWriter, r *http.Request) {
	if err := h.membership.Leave(r.Context(), r.PathValue("id"), r.PathValue("user_id")); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "You have left the group successfully",
	})
}
