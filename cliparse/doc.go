// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnv reads an optional .env file, then ParseFlags returns a Config:

	if err := cliparse.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - Timezone: IANA zone that decides which day "today" is (default: UTC)
  - PollOpenInterval: How often missing daily polls are created (default: 15m)
  - RateLimitRPS, RateLimitBurst: Per-client request limit (default: 10/s, burst 20)
  - LogLevel: debug, info, warn or error (default: info)

# CLI Flags and Environment Variables

	-p              PORT
	-d              DATABASE_URL
	-t              DATABASE_TYPE
	-tz             TIMEZONE
	-poll-interval  POLL_OPEN_INTERVAL
	-rps            RATE_LIMIT_RPS
	-burst          RATE_LIMIT_BURST
	-log-level      LOG_LEVEL

CLI flags take precedence over environment variables, and variables already
in the environment take precedence over .env.

# Validation

ParseFlags returns an error if DATABASE_URL is missing or any value cannot be
parsed (unknown database type or time zone, bad duration, bad log level).
*/
package cliparse
