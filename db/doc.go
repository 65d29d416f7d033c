// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation and transactions.

# Connections

Open accepts "postgres" (github.com/lib/pq) or "sqlite" (modernc.org/sqlite):

	conn, err := db.Open(ctx, db.TypeSQLite, "file:barpoll.db?_pragma=foreign_keys(1)")

All queries use $N placeholders, which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - city: reference data
  - bar: bars per city
  - app_user: users, unique phone number, bcrypt password hash
  - user_group: groups, unique name per city, one admin
  - group_membership: one row per (group, user) with a status
  - poll: one poll per city per day and one per group per day
  - vote: one vote per user per day across all polls

# Relationships

	city 1──* bar
	city 1──* app_user
	city 1──* user_group
	city 1──* poll
	user_group 1──* group_membership *──1 app_user
	user_group 1──* poll
	poll 1──* vote *──1 bar

Foreign keys do not cascade: deleting a group removes its votes, polls and
memberships explicitly inside one transaction (see WithTx).

# Constraint Violations

Uniqueness is enforced by the schema, not by prior reads. Callers insert and
inspect the error:

	if db.IsUniqueViolation(err) {
		return ErrAlreadyVotedToday
	}
*/
package db
