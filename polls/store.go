// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"fmt"

	"github.com/liberatoaguilartamu/barpoll/auth"
	"github.com/liberatoaguilartamu/barpoll/db"
	"github.com/liberatoaguilartamu/barpoll/models"
)

// InsertPoll creates the poll for date in the given scope. An empty
// groupID means a city poll. It reports false without error when the
// scope already has a poll that day.
func InsertPoll(ctx context.Context, q db.Querier, date, cityID, groupID string) (models.Poll, bool, error) {
	poll := models.Poll{
		ID:       auth.NewID(),
		Date:     date,
		PollType: models.PollTypeCity,
		CityID:   cityID,
	}
	if groupID != "" {
		poll.PollType = models.PollTypeGroup
		poll.GroupID = &groupID
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO poll (id, poll_date, poll_type, city_id, group_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
	`, poll.ID, poll.Date, poll.PollType, poll.CityID, poll.GroupID)
	if err != nil {
		return models.Poll{}, false, fmt.Errorf("failed to insert poll: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.Poll{}, false, fmt.Errorf("failed to read inserted rows: %w", err)
	}
	return poll, n == 1, nil
}

// DeleteGroupPolls removes every poll of a group and the votes cast on
// them. Votes go first so no vote is left pointing at a missing poll.
func DeleteGroupPolls(ctx context.Context, q db.Querier, groupID string) (polls, votes int64, err error) {
	res, err := q.ExecContext(ctx, `
		DELETE FROM vote WHERE poll_id IN (SELECT id FROM poll WHERE group_id = $1)
	`, groupID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to delete group votes: %w", err)
	}
	votes, _ = res.RowsAffected()

	res, err = q.ExecContext(ctx, `DELETE FROM poll WHERE group_id = $1`, groupID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to delete group polls: %w", err)
	}
	polls, _ = res.RowsAffected()

	return polls, votes, nil
}
