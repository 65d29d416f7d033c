// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/liberatoaguilartamu/barpoll/auth"
	"github.com/liberatoaguilartamu/barpoll/clock"
	"github.com/liberatoaguilartamu/barpoll/db"
	"github.com/liberatoaguilartamu/barpoll/directory"
	"github.com/liberatoaguilartamu/barpoll/models"
)

// History limits
const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// Ledger records votes and aggregates them. A user gets one vote per
// calendar day across every poll in the system.
type Ledger struct {
	db       *sql.DB
	clock    clock.Clock
	resolver *Resolver
}

func NewLedger(conn *sql.DB, c clock.Clock) *Ledger {
	return &Ledger{db: conn, clock: c, resolver: NewResolver(conn, c)}
}

// CastVote records userID's vote for barID on pollID. Checks run in order
// and the first failure is returned: poll active today, no vote yet
// today, bar in the poll's city, user exists.
func (l *Ledger) CastVote(ctx context.Context, userID, pollID, barID string) (models.Vote, error) {
	today := l.clock.Today()

	var cityID, pollDate string
	err := l.db.QueryRowContext(ctx, `
		SELECT city_id, poll_date FROM poll WHERE id = $1
	`, pollID).Scan(&cityID, &pollDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vote{}, ErrPollInactive
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to query poll: %w", err)
	}
	if pollDate != today {
		return models.Vote{}, ErrPollInactive
	}

	voted, err := l.HasVotedToday(ctx, userID)
	if err != nil {
		return models.Vote{}, err
	}
	if voted {
		return models.Vote{}, ErrAlreadyVotedToday
	}

	var barInCity bool
	err = l.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM bar WHERE id = $1 AND city_id = $2)
	`, barID, cityID).Scan(&barInCity)
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to check bar: %w", err)
	}
	if !barInCity {
		return models.Vote{}, ErrBarCityMismatch
	}

	userExists, err := directory.UserExists(ctx, l.db, userID)
	if err != nil {
		return models.Vote{}, err
	}
	if !userExists {
		return models.Vote{}, directory.ErrUserNotFound
	}

	vote := models.Vote{
		ID:        auth.NewID(),
		UserID:    userID,
		PollID:    pollID,
		BarID:     barID,
		Date:      pollDate,
		TimeVoted: l.clock.Now().UTC(),
	}
	_, err = l.db.ExecContext(ctx, `
		INSERT INTO vote (id, user_id, poll_id, bar_id, vote_date, time_voted)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, vote.ID, vote.UserID, vote.PollID, vote.BarID, vote.Date, vote.TimeVoted)
	if db.IsUniqueViolation(err) {
		// A concurrent request got there first
		return models.Vote{}, ErrAlreadyVotedToday
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	slog.Info("vote cast", "vote_id", vote.ID, "user_id", userID, "poll_id", pollID, "bar_id", barID)
	return vote, nil
}

// HasVotedToday reports whether userID has a vote dated today on any poll.
func (l *Ledger) HasVotedToday(ctx context.Context, userID string) (bool, error) {
	var voted bool
	err := l.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM vote WHERE user_id = $1 AND vote_date = $2)
	`, userID, l.clock.Today()).Scan(&voted)
	if err != nil {
		return false, fmt.Errorf("failed to check vote status: %w", err)
	}
	return voted, nil
}

// Results resolves today's poll for scope and tallies every vote cast
// today on any poll of the scope's city. Group polls feed the city tally.
func (l *Ledger) Results(ctx context.Context, scope Scope) (models.PollResults, error) {
	poll, err := l.resolver.Resolve(ctx, scope)
	if err != nil {
		return models.PollResults{}, err
	}

	today := l.clock.Today()
	rows, err := l.db.QueryContext(ctx, `
		WITH city_votes AS (
			SELECT v.bar_id, v.user_id
			FROM vote v
			JOIN poll p ON v.poll_id = p.id
			WHERE p.poll_date = $1 AND p.city_id = $2
			GROUP BY v.bar_id, v.user_id
		)
		SELECT b.id, b.name, COUNT(cv.user_id) AS vote_count
		FROM bar b
		LEFT JOIN city_votes cv ON b.id = cv.bar_id
		WHERE b.city_id = $2
		GROUP BY b.id, b.name
		ORDER BY vote_count DESC, b.name
	`, today, poll.CityID)
	if err != nil {
		return models.PollResults{}, fmt.Errorf("failed to query bar votes: %w", err)
	}

	bars := []models.BarResult{}
	total := 0
	for rows.Next() {
		var bar models.BarResult
		if err := rows.Scan(&bar.ID, &bar.Name, &bar.Votes); err != nil {
			rows.Close()
			return models.PollResults{}, fmt.Errorf("failed to scan bar votes: %w", err)
		}
		bar.Voters = []models.Voter{}
		total += bar.Votes
		bars = append(bars, bar)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return models.PollResults{}, fmt.Errorf("failed to read bar votes: %w", err)
	}
	rows.Close()

	voters, err := l.publicVoters(ctx, today, poll.CityID)
	if err != nil {
		return models.PollResults{}, err
	}

	for i := range bars {
		bars[i].VotePercentage = Percentage(bars[i].Votes, total)
		if v, ok := voters[bars[i].ID]; ok {
			bars[i].Voters = v
		}
	}

	return models.PollResults{
		PollID:     poll.ID,
		Bars:       bars,
		TotalVotes: total,
	}, nil
}

// publicVoters maps bar id to the non-anonymous users who voted for it
// today in cityID, ordered by name.
func (l *Ledger) publicVoters(ctx context.Context, date, cityID string) (map[string][]models.Voter, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT DISTINCT v.bar_id, u.id, u.name
		FROM vote v
		JOIN poll p ON v.poll_id = p.id
		JOIN app_user u ON v.user_id = u.id
		WHERE p.poll_date = $1 AND p.city_id = $2 AND u.anonymous_flag = $3
		ORDER BY u.name, u.id
	`, date, cityID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	voters := make(map[string][]models.Voter)
	for rows.Next() {
		var barID string
		var voter models.Voter
		if err := rows.Scan(&barID, &voter.ID, &voter.Name); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters[barID] = append(voters[barID], voter)
	}
	return voters, rows.Err()
}

// Percentage is votes/total as a whole percent, rounded half up; 0 when
// there are no votes.
func Percentage(votes, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(votes) / float64(total) * 100))
}

// History returns userID's most recent votes, newest first.
func (l *Ledger) History(ctx context.Context, userID string, limit int) ([]models.VoteRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT v.id, v.time_voted, b.name, p.poll_type, p.poll_date, c.name, g.id, g.name
		FROM vote v
		JOIN poll p ON v.poll_id = p.id
		JOIN bar b ON v.bar_id = b.id
		JOIN city c ON p.city_id = c.id
		LEFT JOIN user_group g ON p.group_id = g.id
		WHERE v.user_id = $1
		ORDER BY v.time_voted DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote history: %w", err)
	}
	defer rows.Close()

	records := []models.VoteRecord{}
	for rows.Next() {
		var rec models.VoteRecord
		var groupID, groupName sql.NullString
		err := rows.Scan(&rec.ID, &rec.TimeVoted, &rec.BarName, &rec.PollType, &rec.Date,
			&rec.CityName, &groupID, &groupName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vote history: %w", err)
		}
		if groupID.Valid {
			rec.GroupID = &groupID.String
			rec.GroupName = &groupName.String
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
