// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls resolves daily polls, records votes and tallies results.

# Polls

Every city has one city poll per day and every group has one group poll per
day. The schema enforces this with partial unique indexes, so InsertPoll is
idempotent:

	poll, created, err := polls.InsertPoll(ctx, tx, today, cityID, groupID)

The Opener creates the day's polls on a ticker:

	go polls.NewOpener(conn, clk).Run(ctx, 15*time.Minute)

# Resolving

Resolve never creates a poll; it only finds today's poll for a scope:

	poll, err := resolver.Resolve(ctx, polls.Scope{CityID: c, GroupID: g, ViewerID: u})

A group scope with a ViewerID requires an accepted membership.

# Voting

CastVote checks, in order:

 1. the poll is dated today (ErrPollInactive)
 2. the user has no vote today on any poll (ErrAlreadyVotedToday)
 3. the bar is in the poll's city (ErrBarCityMismatch)
 4. the user exists (directory.ErrUserNotFound)

The one-vote-per-day rule is also a UNIQUE(user_id, vote_date) constraint.
Two concurrent votes both pass check 2; the loser's insert fails and is
reported as ErrAlreadyVotedToday.

# Results

Results are city-wide: votes on the city poll and every group poll of the
city are summed per bar. Anonymous voters count toward Votes but are left
out of Voters. Bars are ordered by votes descending, then name.

	Votes: A=3, B=1 → A 75%, B 25%
*/
package polls
