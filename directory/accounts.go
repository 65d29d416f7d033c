// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/liberatoaguilartamu/barpoll/auth"
	"github.com/liberatoaguilartamu/barpoll/clock"
	"github.com/liberatoaguilartamu/barpoll/db"
	"github.com/liberatoaguilartamu/barpoll/models"
)

// AnonymityWindow is the minimum time between two changes of a user's
// anonymous flag.
const AnonymityWindow = 7 * 24 * time.Hour

// Accounts owns users and cities: signup, login, profile and password.
type Accounts struct {
	db    *sql.DB
	clock clock.Clock
}

func NewAccounts(conn *sql.DB, c clock.Clock) *Accounts {
	return &Accounts{db: conn, clock: c}
}

// Signup creates a user and returns its id.
func (a *Accounts) Signup(ctx context.Context, phone, name, password, cityID string) (string, error) {
	if !ValidPhone(phone) {
		return "", ErrInvalidPhone
	}

	ok, err := CityExists(ctx, a.db, cityID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrCityNotFound
	}

	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", ErrWeakPassword
	}
	if err != nil {
		return "", err
	}

	userID := auth.NewID()
	_, err = a.db.ExecContext(ctx, `
		INSERT INTO app_user (id, phone_number, name, password_hash, city_id, anonymous_flag, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, userID, phone, strings.TrimSpace(name), hash, cityID, false, a.clock.Now().UTC())
	if db.IsUniqueViolation(err) {
		return "", ErrPhoneTaken
	}
	if err != nil {
		return "", fmt.Errorf("failed to insert user: %w", err)
	}

	slog.Info("user signed up", "user_id", userID, "city_id", cityID)
	return userID, nil
}

// Login checks the password for phone and returns the user.
func (a *Accounts) Login(ctx context.Context, phone, password string) (models.User, error) {
	var hash string
	err := a.db.QueryRowContext(ctx, `
		SELECT password_hash FROM app_user WHERE phone_number = $1
	`, phone).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query credentials: %w", err)
	}

	err = auth.CheckPassword(hash, password)
	if errors.Is(err, auth.ErrPasswordMismatch) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	return FindUserByPhone(ctx, a.db, phone)
}

// ChangePassword replaces the password after verifying the current one.
func (a *Accounts) ChangePassword(ctx context.Context, userID, current, next string) error {
	var hash string
	err := a.db.QueryRowContext(ctx, `SELECT password_hash FROM app_user WHERE id = $1`, userID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query credentials: %w", err)
	}

	err = auth.CheckPassword(hash, current)
	if errors.Is(err, auth.ErrPasswordMismatch) {
		return ErrWrongPassword
	}
	if err != nil {
		return err
	}

	newHash, err := auth.HashPassword(next)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return ErrWeakPassword
	}
	if err != nil {
		return err
	}

	if _, err := a.db.ExecContext(ctx, `UPDATE app_user SET password_hash = $1 WHERE id = $2`, newHash, userID); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password changed", "user_id", userID)
	return nil
}

// Profile returns the user with its city name and anonymity window.
func (a *Accounts) Profile(ctx context.Context, userID string) (models.Profile, error) {
	var p models.Profile
	var lastChange sql.NullTime
	err := a.db.QueryRowContext(ctx, `
		SELECT u.id, u.name, u.phone_number, u.city_id, c.name, u.anonymous_flag, u.last_anonymous_change
		FROM app_user u
		JOIN city c ON u.city_id = c.id
		WHERE u.id = $1
	`, userID).Scan(&p.ID, &p.Name, &p.PhoneNumber, &p.CityID, &p.CityName, &p.Anonymous, &lastChange)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrUserNotFound
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to query profile: %w", err)
	}

	var last *time.Time
	if lastChange.Valid {
		last = &lastChange.Time
	}
	p.CanChangeAnonymous, p.NextChangeDate, p.HoursRemaining = anonymityWindow(last, a.clock.Now())
	return p, nil
}

// UpdateProfile applies the non-nil fields. The anonymous flag may change
// at most once per AnonymityWindow.
func (a *Accounts) UpdateProfile(ctx context.Context, userID string, name, cityID *string, anonymous *bool) (models.Profile, error) {
	user, err := FindUser(ctx, a.db, userID)
	if err != nil {
		return models.Profile{}, err
	}

	now := a.clock.Now()
	anonymousChanged := anonymous != nil && *anonymous != user.Anonymous
	if anonymousChanged {
		canChange, _, hours := anonymityWindow(user.LastAnonymousChange, now)
		if !canChange {
			return models.Profile{}, anonymityLocked(*hours)
		}
	}

	if cityID != nil {
		ok, err := CityExists(ctx, a.db, *cityID)
		if err != nil {
			return models.Profile{}, err
		}
		if !ok {
			return models.Profile{}, ErrCityNotFound
		}
	}

	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if name != nil {
		add("name", strings.TrimSpace(*name))
	}
	if cityID != nil {
		add("city_id", *cityID)
	}
	if anonymousChanged {
		add("anonymous_flag", *anonymous)
		add("last_anonymous_change", now.UTC())
	}

	if len(sets) > 0 {
		args = append(args, userID)
		query := fmt.Sprintf("UPDATE app_user SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
		if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
			return models.Profile{}, fmt.Errorf("failed to update profile: %w", err)
		}
		slog.Info("profile updated", "user_id", userID, "anonymous_changed", anonymousChanged)
	}

	return a.Profile(ctx, userID)
}

// Cities lists all cities by name.
func (a *Accounts) Cities(ctx context.Context) ([]models.City, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT id, name FROM city ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	cities := []models.City{}
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (a *Accounts) City(ctx context.Context, id string) (models.City, error) {
	var c models.City
	err := a.db.QueryRowContext(ctx, `SELECT id, name FROM city WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.City{}, ErrCityNotFound
	}
	if err != nil {
		return models.City{}, fmt.Errorf("failed to query city: %w", err)
	}
	return c, nil
}

// anonymityWindow reports whether the flag may change at now and, if not,
// when it may and how many hours remain (rounded up).
func anonymityWindow(last *time.Time, now time.Time) (bool, *time.Time, *int) {
	if last == nil {
		return true, nil, nil
	}
	next := last.Add(AnonymityWindow)
	if !next.After(now) {
		return true, nil, nil
	}
	hours := int(math.Ceil(next.Sub(now).Hours()))
	return false, &next, &hours
}
