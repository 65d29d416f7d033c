// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the barpoll API server.

barpoll runs one poll per city per day, plus one per group, asking "which
bar tonight?". Each user gets a single vote per calendar day across every
poll, and results are tallied city-wide.

# Starting the Server

The server reads an optional .env, then environment variables and CLI flags:

	DATABASE_URL=file:barpoll.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -tz America/Chicago

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path/URI or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TIMEZONE (-tz): Zone that decides the current day (default: UTC)
  - POLL_OPEN_INTERVAL (-poll-interval): Daily poll check period (default: 15m)
  - RATE_LIMIT_RPS (-rps), RATE_LIMIT_BURST (-burst): Per-client limit
  - LOG_LEVEL (-log-level): debug, info, warn or error

# Architecture

  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, JSON decoding and errors
  - polls: Poll resolution, daily opening, vote ledger and tallies
  - groups: Group lifecycle and membership
  - directory: Users, cities and account operations
  - models: Request/response types
  - apperr: Rejection kinds shared by the domain packages
  - clock: The notion of "today"
  - auth: IDs and password hashing
  - db: Connections, transactions and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
