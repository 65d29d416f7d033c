// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package groups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/liberatoaguilartamu/barpoll/auth"
	"github.com/liberatoaguilartamu/barpoll/clock"
	"github.com/liberatoaguilartamu/barpoll/db"
	"github.com/liberatoaguilartamu/barpoll/directory"
	"github.com/liberatoaguilartamu/barpoll/models"
	"github.com/liberatoaguilartamu/barpoll/polls"
)

// Lifecycle creates and deletes groups. Each operation is one transaction.
type Lifecycle struct {
	db    *sql.DB
	clock clock.Clock
}

func NewLifecycle(conn *sql.DB, c clock.Clock) *Lifecycle {
	return &Lifecycle{db: conn, clock: c}
}

// CreateGroup inserts the group, the admin's accepted membership and
// today's group poll. Either all three rows exist afterwards or none do.
func (l *Lifecycle) CreateGroup(ctx context.Context, name, cityID, adminID string) (models.GroupSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.GroupSummary{}, ErrInvalidGroupName
	}

	group := models.GroupSummary{
		ID:      auth.NewID(),
		Name:    name,
		CityID:  cityID,
		IsAdmin: true,
	}
	var pollID string

	err := db.WithTx(ctx, l.db, func(tx *sql.Tx) error {
		ok, err := directory.UserExists(ctx, tx, adminID)
		if err != nil {
			return err
		}
		if !ok {
			return directory.ErrUserNotFound
		}

		err = tx.QueryRowContext(ctx, `SELECT name FROM city WHERE id = $1`, cityID).Scan(&group.CityName)
		if errors.Is(err, sql.ErrNoRows) {
			return directory.ErrCityNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query city: %w", err)
		}

		var taken bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM user_group WHERE city_id = $1 AND name = $2)
		`, cityID, name).Scan(&taken)
		if err != nil {
			return fmt.Errorf("failed to check group name: %w", err)
		}
		if taken {
			return ErrDuplicateGroupName
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO user_group (id, name, city_id, admin_id, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, group.ID, name, cityID, adminID, l.clock.Now().UTC())
		if db.IsUniqueViolation(err) {
			return ErrDuplicateGroupName
		}
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO group_membership (group_id, user_id, status) VALUES ($1, $2, $3)
		`, group.ID, adminID, models.StatusAccepted)
		if err != nil {
			return fmt.Errorf("failed to insert admin membership: %w", err)
		}

		poll, _, err := polls.InsertPoll(ctx, tx, l.clock.Today(), cityID, group.ID)
		if err != nil {
			return err
		}
		pollID = poll.ID
		return nil
	})
	if err != nil {
		return models.GroupSummary{}, err
	}

	slog.Info("group created", "group_id", group.ID, "city_id", cityID, "admin_id", adminID, "poll_id", pollID)
	return group, nil
}

// DeleteGroup removes the group's votes, polls, memberships and the group
// itself. Only the admin may do this. It returns the deleted group's name.
func (l *Lifecycle) DeleteGroup(ctx context.Context, groupID, requesterID string) (string, error) {
	var name string
	var pollsDeleted, votesDeleted int64

	err := db.WithTx(ctx, l.db, func(tx *sql.Tx) error {
		var adminID string
		err := tx.QueryRowContext(ctx, `
			SELECT name, admin_id FROM user_group WHERE id = $1
		`, groupID).Scan(&name, &adminID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrGroupNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query group: %w", err)
		}
		if adminID != requesterID {
			return ErrNotAuthorized
		}

		pollsDeleted, votesDeleted, err = polls.DeleteGroupPolls(ctx, tx, groupID)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM group_membership WHERE group_id = $1`, groupID); err != nil {
			return fmt.Errorf("failed to delete memberships: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_group WHERE id = $1`, groupID); err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Info("group deleted", "group_id", groupID, "polls", pollsDeleted, "votes", votesDeleted)
	return name, nil
}
