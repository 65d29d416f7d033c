// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package groups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/liberatoaguilartamu/barpoll/db"
	"github.com/liberatoaguilartamu/barpoll/directory"
	"github.com/liberatoaguilartamu/barpoll/models"
)

// Membership moves (group, user) pairs through
// absent → pending → accepted | denied, and denied → pending on re-invite.
type Membership struct {
	db *sql.DB
}

func NewMembership(conn *sql.DB) *Membership {
	return &Membership{db: conn}
}

// status returns the pair's status, or "" when there is no row.
func status(ctx context.Context, q db.Querier, groupID, userID string) (string, error) {
	var s string
	err := q.QueryRowContext(ctx, `
		SELECT status FROM group_membership WHERE group_id = $1 AND user_id = $2
	`, groupID, userID).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query membership: %w", err)
	}
	return s, nil
}

func groupExists(ctx context.Context, q db.Querier, groupID string) (bool, error) {
	var ok bool
	err := q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM user_group WHERE id = $1)`, groupID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("failed to check group: %w", err)
	}
	return ok, nil
}

// Invite leaves the user with phone in the pending state and returns the
// invitee's id.
func (m *Membership) Invite(ctx context.Context, groupID, phone, inviterID string) (string, error) {
	ok, err := groupExists(ctx, m.db, groupID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrGroupNotFound
	}

	inviterStatus, err := status(ctx, m.db, groupID, inviterID)
	if err != nil {
		return "", err
	}
	if inviterStatus != models.StatusAccepted {
		return "", ErrNotAMember
	}

	invitee, err := directory.FindUserByPhone(ctx, m.db, phone)
	if err != nil {
		return "", err
	}

	current, err := status(ctx, m.db, groupID, invitee.ID)
	if err != nil {
		return "", err
	}

	switch current {
	case models.StatusAccepted:
		return "", ErrAlreadyMember
	case models.StatusPending:
		return "", ErrAlreadyInvited
	case models.StatusDenied:
		res, err := m.db.ExecContext(ctx, `
			UPDATE group_membership SET status = $1
			WHERE group_id = $2 AND user_id = $3 AND status = $4
		`, models.StatusPending, groupID, invitee.ID, models.StatusDenied)
		if err != nil {
			return "", fmt.Errorf("failed to re-invite: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// Someone else re-invited in the meantime
			return "", ErrAlreadyInvited
		}
	default:
		_, err := m.db.ExecContext(ctx, `
			INSERT INTO group_membership (group_id, user_id, status) VALUES ($1, $2, $3)
		`, groupID, invitee.ID, models.StatusPending)
		if db.IsUniqueViolation(err) {
			return "", ErrAlreadyInvited
		}
		if err != nil {
			return "", fmt.Errorf("failed to insert invitation: %w", err)
		}
	}

	slog.Info("invitation sent", "group_id", groupID, "user_id", invitee.ID, "inviter_id", inviterID)
	return invitee.ID, nil
}

// Respond accepts or denies a pending invitation. On acceptance it
// returns the group's summary as seen by userID; on denial nil.
func (m *Membership) Respond(ctx context.Context, groupID, userID, decision string) (*models.GroupSummary, error) {
	if decision != models.StatusAccepted && decision != models.StatusDenied {
		return nil, ErrInvalidDecision
	}

	res, err := m.db.ExecContext(ctx, `
		UPDATE group_membership SET status = $1
		WHERE group_id = $2 AND user_id = $3 AND status = $4
	`, decision, groupID, userID, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		current, err := status(ctx, m.db, groupID, userID)
		if err != nil {
			return nil, err
		}
		if current == "" {
			return nil, ErrInvitationNotFound
		}
		return nil, ErrAlreadyResponded
	}

	slog.Info("invitation answered", "group_id", groupID, "user_id", userID, "status", decision)

	if decision != models.StatusAccepted {
		return nil, nil
	}

	group, _, err := summary(ctx, m.db, groupID, userID)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// Leave deletes userID's accepted membership. The admin cannot leave.
func (m *Membership) Leave(ctx context.Context, groupID, userID string) error {
	current, err := status(ctx, m.db, groupID, userID)
	if err != nil {
		return err
	}
	if current != models.StatusAccepted {
		return ErrNotAMember
	}

	var adminID string
	err = m.db.QueryRowContext(ctx, `SELECT admin_id FROM user_group WHERE id = $1`, groupID).Scan(&adminID)
	if err != nil {
		return fmt.Errorf("failed to query group admin: %w", err)
	}
	if adminID == userID {
		return ErrAdminCannotLeave
	}

	res, err := m.db.ExecContext(ctx, `
		DELETE FROM group_membership WHERE group_id = $1 AND user_id = $2 AND status = $3
	`, groupID, userID, models.StatusAccepted)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotAMember
	}

	slog.Info("member left group", "group_id", groupID, "user_id", userID)
	return nil
}
