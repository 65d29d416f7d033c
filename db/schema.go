// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The statements are valid for both PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Cities
CREATE TABLE IF NOT EXISTS city (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

-- Bars
CREATE TABLE IF NOT EXISTS bar (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    city_id TEXT NOT NULL REFERENCES city(id)
);

CREATE INDEX IF NOT EXISTS idx_bar_city_id ON bar(city_id);

-- Users
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    phone_number TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    city_id TEXT NOT NULL REFERENCES city(id),
    anonymous_flag BOOLEAN NOT NULL DEFAULT FALSE,
    last_anonymous_change TIMESTAMP,
    created_at TIMESTAMP NOT NULL
);

-- Groups
CREATE TABLE IF NOT EXISTS user_group (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    city_id TEXT NOT NULL REFERENCES city(id),
    admin_id TEXT NOT NULL REFERENCES app_user(id),
    created_at TIMESTAMP NOT NULL,
    UNIQUE (city_id, name)
);

-- Memberships: one row per (group, user)
CREATE TABLE IF NOT EXISTS group_membership (
    group_id TEXT NOT NULL REFERENCES user_group(id),
    user_id TEXT NOT NULL REFERENCES app_user(id),
    status TEXT NOT NULL CHECK (status IN ('pending', 'accepted', 'denied')),
    PRIMARY KEY (group_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_group_membership_user ON group_membership(user_id, status);

-- Polls: one per (city, day) for city scope, one per (group, day) for group scope
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    poll_date TEXT NOT NULL,
    poll_type TEXT NOT NULL CHECK (poll_type IN ('city', 'group')),
    city_id TEXT NOT NULL REFERENCES city(id),
    group_id TEXT REFERENCES user_group(id),
    CHECK ((poll_type = 'group') = (group_id IS NOT NULL))
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_poll_city_day ON poll(city_id, poll_date) WHERE group_id IS NULL;
CREATE UNIQUE INDEX IF NOT EXISTS uq_poll_group_day ON poll(group_id, poll_date) WHERE group_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_poll_city_date ON poll(city_id, poll_date);

-- Votes: vote_date copies the poll date so one vote per user per day is a constraint
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES app_user(id),
    poll_id TEXT NOT NULL REFERENCES poll(id),
    bar_id TEXT NOT NULL REFERENCES bar(id),
    vote_date TEXT NOT NULL,
    time_voted TIMESTAMP NOT NULL,
    UNIQUE (user_id, vote_date)
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_bar_id ON vote(bar_id);
`
