// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/liberatoaguilartamu/barpoll/clock"
)

// Opener creates each day's polls: one per city and one per group.
type Opener struct {
	db    *sql.DB
	clock clock.Clock
}

func NewOpener(conn *sql.DB, c clock.Clock) *Opener {
	return &Opener{db: conn, clock: c}
}

type groupScope struct {
	id     string
	cityID string
}

// OpenToday makes sure every city and every group has a poll dated today.
// It returns how many polls it created and is safe to call repeatedly.
func (o *Opener) OpenToday(ctx context.Context) (int, error) {
	today := o.clock.Today()

	cities, err := o.cityIDs(ctx)
	if err != nil {
		return 0, err
	}
	groups, err := o.groups(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, cityID := range cities {
		_, ok, err := InsertPoll(ctx, o.db, today, cityID, "")
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	for _, g := range groups {
		_, ok, err := InsertPoll(ctx, o.db, today, g.cityID, g.id)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	if created > 0 {
		slog.Info("opened daily polls", "date", today, "created", created)
	}
	return created, nil
}

// Run calls OpenToday immediately and then every interval until ctx is
// cancelled. Failures are logged and retried on the next tick.
func (o *Opener) Run(ctx context.Context, interval time.Duration) {
	if _, err := o.OpenToday(ctx); err != nil {
		slog.Error("failed to open daily polls", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := o.OpenToday(ctx); err != nil {
				slog.Error("failed to open daily polls", "error", err)
			}
		}
	}
}

func (o *Opener) cityIDs(ctx context.Context) ([]string, error) {
	rows, err := o.db.QueryContext(ctx, `SELECT id FROM city ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (o *Opener) groups(ctx context.Context) ([]groupScope, error) {
	rows, err := o.db.QueryContext(ctx, `SELECT id, city_id FROM user_group ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []groupScope
	for rows.Next() {
		var g groupScope
		if err := rows.Scan(&g.id, &g.cityID); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
