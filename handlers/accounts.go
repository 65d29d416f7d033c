// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/liberatoaguilartamu/barpoll/clock"
	"github.com/liberatoaguilartamu/barpoll/directory"
	"github.com/liberatoaguilartamu/barpoll/middleware"
	"github.com/liberatoaguilartamu/barpoll/models"
)

type AccountHandler struct {
	accounts *directory.Accounts
}

func NewAccountHandler(db *sql.DB, clk clock.Clock) *AccountHandler {
	return &AccountHandler{accounts: directory.NewAccounts(db, clk)}
}

// Signup handles POST /auth/signup
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	userID, err := h.accounts.Signup(r.Context(), req.PhoneNumber, req.Name, req.Password, req.CityID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SignupResponse{
		UserID:  userID,
		Message: "User created successfully",
	})
}

// Login handles POST /auth/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	user, err := h.accounts.Login(r.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		User:    user,
		Message: "Login successful",
	})
}

// GetProfile handles GET /users/{id}/profile
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.accounts.Profile(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProfileResponse{User: profile})
}

// UpdateProfile handles PUT /users/{id}/profile
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	profile, err := h.accounts.UpdateProfile(r.Context(), r.PathValue("id"), req.Name, req.CityID, req.Anonymous)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProfileResponse{
		User:    profile,
		Message: "Profile updated successfully",
	})
}

// ChangePassword handles PUT /users/{id}/password
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := h.accounts.ChangePassword(r.Context(), r.PathValue("id"), req.CurrentPassword, req.NewPassword); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Password changed successfully",
	})
}

// ListCities handles GET /cities
func (h *AccountHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.accounts.Cities(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CitiesResponse{Cities: cities})
}

// GetCity handles GET /cities/{id}
func (h *AccountHandler) GetCity(w http.ResponseWriter, r *http.Request) {
	city, err := h.accounts.City(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CityResponse{City: city})
}
