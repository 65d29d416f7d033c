// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/liberatoaguilartamu/barpoll/clock"
	"github.com/liberatoaguilartamu/barpoll/models"
)

// Scope selects a city-wide poll (GroupID empty) or a group poll.
// ViewerID, when set on a group scope, must be an accepted member.
type Scope struct {
	CityID   string
	GroupID  string
	ViewerID string
}

func (s Scope) PollType() string {
	if s.GroupID != "" {
		return models.PollTypeGroup
	}
	return models.PollTypeCity
}

// Resolver finds today's poll for a scope. It never creates polls.
type Resolver struct {
	db    *sql.DB
	clock clock.Clock
}

func NewResolver(conn *sql.DB, c clock.Clock) *Resolver {
	return &Resolver{db: conn, clock: c}
}

// Resolve returns the unique poll dated today for scope, or
// ErrPollNotFound.
func (r *Resolver) Resolve(ctx context.Context, scope Scope) (models.Poll, error) {
	if scope.CityID == "" {
		return models.Poll{}, ErrMissingCity
	}

	if scope.GroupID != "" && scope.ViewerID != "" {
		var member bool
		err := r.db.QueryRowContext(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM group_membership
				WHERE group_id = $1 AND user_id = $2 AND status = $3
			)
		`, scope.GroupID, scope.ViewerID, models.StatusAccepted).Scan(&member)
		if err != nil {
			return models.Poll{}, fmt.Errorf("failed to check membership: %w", err)
		}
		if !member {
			return models.Poll{}, ErrNotGroupMember
		}
	}

	query := `
		SELECT id, poll_date, poll_type, city_id, group_id
		FROM poll
		WHERE poll_date = $1 AND city_id = $2 AND poll_type = $3
	`
	args := []any{r.clock.Today(), scope.CityID, scope.PollType()}
	if scope.GroupID == "" {
		query += ` AND group_id IS NULL`
	} else {
		query += ` AND group_id = $4`
		args = append(args, scope.GroupID)
	}

	var poll models.Poll
	var groupID sql.NullString
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&poll.ID, &poll.Date, &poll.PollType, &poll.CityID, &groupID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, ErrPollNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}
	if groupID.Valid {
		poll.GroupID = &groupID.String
	}

	return poll, nil
}
