// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package clock defines the notion of "today" used by polls and votes.

Every poll and vote is keyed by a calendar day formatted as YYYY-MM-DD.
The day boundary is fixed by the location of the clock, never by the
database server:

	c, err := clock.NewSystem("America/Chicago")
	today := c.Today() // "2025-04-01"

Tests pin the date with Fixed:

	c := clock.Fixed{At: time.Date(2025, 4, 1, 18, 0, 0, 0, time.UTC)}
*/
package clock
