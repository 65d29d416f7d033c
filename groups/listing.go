// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package groups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/liberatoaguilartamu/barpoll/db"
	"github.com/liberatoaguilartamu/barpoll/models"
)

// summary also returns the admin's id.
func summary(ctx context.Context, q db.Querier, groupID, viewerID string) (models.GroupSummary, string, error) {
	var g models.GroupSummary
	var adminID string
	err := q.QueryRowContext(ctx, `
		SELECT g.id, g.name, g.city_id, c.name, g.admin_id
		FROM user_group g
		JOIN city c ON g.city_id = c.id
		WHERE g.id = $1
	`, groupID).Scan(&g.ID, &g.Name, &g.CityID, &g.CityName, &adminID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GroupSummary{}, "", ErrGroupNotFound
	}
	if err != nil {
		return models.GroupSummary{}, "", fmt.Errorf("failed to query group: %w", err)
	}
	g.IsAdmin = adminID == viewerID
	return g, adminID, nil
}

// ListForUser returns the groups userID has joined, optionally limited to
// one city, and the invitations still waiting for an answer. Both are
// ordered by group name.
func (m *Membership) ListForUser(ctx context.Context, userID, cityID string) (models.GroupsResponse, error) {
	query := `
		SELECT g.id, g.name, g.city_id, c.name, g.admin_id
		FROM user_group g
		JOIN group_membership gm ON g.id = gm.group_id
		JOIN city c ON g.city_id = c.id
		WHERE gm.user_id = $1 AND gm.status = $2
	`
	args := []any{userID, models.StatusAccepted}
	if cityID != "" {
		query += ` AND g.city_id = $3`
		args = append(args, cityID)
	}
	query += ` ORDER BY g.name`

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return models.GroupsResponse{}, fmt.Errorf("failed to query groups: %w", err)
	}

	resp := models.GroupsResponse{
		Groups:      []models.GroupSummary{},
		Invitations: []models.Invitation{},
	}
	for rows.Next() {
		var g models.GroupSummary
		var adminID string
		if err := rows.Scan(&g.ID, &g.Name, &g.CityID, &g.CityName, &adminID); err != nil {
			rows.Close()
			return models.GroupsResponse{}, fmt.Errorf("failed to scan group: %w", err)
		}
		g.IsAdmin = adminID == userID
		resp.Groups = append(resp.Groups, g)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return models.GroupsResponse{}, fmt.Errorf("failed to read groups: %w", err)
	}
	rows.Close()

	// Invitations are shown as coming from the group admin
	rows, err = m.db.QueryContext(ctx, `
		SELECT g.id, g.name, c.name, admin.name, admin.id
		FROM group_membership gm
		JOIN user_group g ON gm.group_id = g.id
		JOIN app_user admin ON g.admin_id = admin.id
		JOIN city c ON g.city_id = c.id
		WHERE gm.user_id = $1 AND gm.status = $2
		ORDER BY g.name
	`, userID, models.StatusPending)
	if err != nil {
		return models.GroupsResponse{}, fmt.Errorf("failed to query invitations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var inv models.Invitation
		if err := rows.Scan(&inv.GroupID, &inv.GroupName, &inv.CityName, &inv.FromName, &inv.FromID); err != nil {
			return models.GroupsResponse{}, fmt.Errorf("failed to scan invitation: %w", err)
		}
		resp.Invitations = append(resp.Invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return models.GroupsResponse{}, fmt.Errorf("failed to read invitations: %w", err)
	}

	return resp, nil
}

// Members returns the group with its accepted members ordered by name.
// viewerID must be an accepted member.
func (m *Membership) Members(ctx context.Context, groupID, viewerID string) (models.GroupDetail, error) {
	g, adminID, err := summary(ctx, m.db, groupID, viewerID)
	if err != nil {
		return models.GroupDetail{}, err
	}

	viewerStatus, err := status(ctx, m.db, groupID, viewerID)
	if err != nil {
		return models.GroupDetail{}, err
	}
	if viewerStatus != models.StatusAccepted {
		return models.GroupDetail{}, ErrNotAMember
	}

	detail := models.GroupDetail{
		ID:       g.ID,
		Name:     g.Name,
		CityID:   g.CityID,
		CityName: g.CityName,
		AdminID:  adminID,
		IsAdmin:  g.IsAdmin,
		Members:  []models.Member{},
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.phone_number
		FROM group_membership gm
		JOIN app_user u ON gm.user_id = u.id
		WHERE gm.group_id = $1 AND gm.status = $2
		ORDER BY u.name
	`, groupID, models.StatusAccepted)
	if err != nil {
		return models.GroupDetail{}, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member models.Member
		if err := rows.Scan(&member.ID, &member.Name, &member.PhoneNumber); err != nil {
			return models.GroupDetail{}, fmt.Errorf("failed to scan member: %w", err)
		}
		member.IsAdmin = member.ID == adminID
		detail.Members = append(detail.Members, member)
	}
	if err := rows.Err(); err != nil {
		return models.GroupDetail{}, fmt.Errorf("failed to read members: %w", err)
	}

	return detail, nil
}
