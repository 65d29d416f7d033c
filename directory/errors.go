// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package directory

import (
	"fmt"

	"github.com/liberatoaguilartamu/barpoll/apperr"
)

var (
	ErrUserNotFound       = apperr.NotFound("user_not_found", "User not found")
	ErrCityNotFound       = apperr.NotFound("city_not_found", "City not found")
	ErrInvalidPhone       = apperr.Validation("invalid_phone", "Please enter a valid 10-digit phone number")
	ErrPhoneTaken         = apperr.Conflict("phone_taken", "A user with this phone number already exists")
	ErrInvalidCredentials = apperr.Authorization("invalid_credentials", "Invalid credentials")
	ErrWrongPassword      = apperr.Authorization("wrong_password", "Current password is incorrect")
	ErrWeakPassword       = apperr.Validation("weak_password", "Password must be 8 to 72 characters")
	ErrAnonymityLocked    = apperr.Conflict("anonymity_locked", "You can only change your anonymous status once per week")
)

func anonymityLocked(hoursRemaining int) error {
	return &apperr.Error{
		Kind: apperr.KindConflict,
		Code: ErrAnonymityLocked.Code,
		Message: fmt.Sprintf(
			"You can only change your anonymous status once per week. You can change it again in %d hours.",
			hoursRemaining,
		),
	}
}
