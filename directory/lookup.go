// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/liberatoaguilartamu/barpoll/db"
	"github.com/liberatoaguilartamu/barpoll/models"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// ValidPhone reports whether phone is exactly ten digits.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// UserExists reports whether a user with id exists.
func UserExists(ctx context.Context, q db.Querier, id string) (bool, error) {
	return exists(ctx, q, `SELECT EXISTS(SELECT 1 FROM app_user WHERE id = $1)`, id)
}

// CityExists reports whether a city with id exists.
func CityExists(ctx context.Context, q db.Querier, id string) (bool, error) {
	return exists(ctx, q, `SELECT EXISTS(SELECT 1 FROM city WHERE id = $1)`, id)
}

// FindUserByPhone returns ErrUserNotFound when no user has that number.
func FindUserByPhone(ctx context.Context, q db.Querier, phone string) (models.User, error) {
	return scanUser(q.QueryRowContext(ctx, `
		SELECT id, phone_number, name, city_id, anonymous_flag, last_anonymous_change
		FROM app_user
		WHERE phone_number = $1
	`, phone))
}

// FindUser returns ErrUserNotFound when id is unknown.
func FindUser(ctx context.Context, q db.Querier, id string) (models.User, error) {
	return scanUser(q.QueryRowContext(ctx, `
		SELECT id, phone_number, name, city_id, anonymous_flag, last_anonymous_change
		FROM app_user
		WHERE id = $1
	`, id))
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var lastChange sql.NullTime
	err := row.Scan(&u.ID, &u.PhoneNumber, &u.Name, &u.CityID, &u.Anonymous, &lastChange)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	if lastChange.Valid {
		t := lastChange.Time
		u.LastAnonymousChange = &t
	}
	return u, nil
}

func exists(ctx context.Context, q db.Querier, query string, args ...any) (bool, error) {
	var found bool
	if err := q.QueryRowContext(ctx, query, args...).Scan(&found); err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return found, nil
}
