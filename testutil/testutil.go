// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/liberatoaguilartamu/barpoll/auth"
	"github.com/liberatoaguilartamu/barpoll/clock"
	"github.com/liberatoaguilartamu/barpoll/cliparse"
	"github.com/liberatoaguilartamu/barpoll/db"
	"github.com/liberatoaguilartamu/barpoll/models"
)

// Now is the instant every test treats as the present.
var Now = time.Date(2025, 4, 1, 18, 30, 0, 0, time.UTC)

const (
	Today     = "2025-04-01"
	Yesterday = "2025-03-31"
)

// Clock returns a clock pinned to Now.
func Clock() clock.Fixed {
	return clock.Fixed{At: Now}
}

// SetupTestDB creates a fresh SQLite database with the full schema.
// The file lives in a per-test temp dir and is removed afterwards.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "barpoll_test.db")
	conn, err := db.Open(context.Background(), db.TypeSQLite, "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      "file::memory:",
		DatabaseType:     db.TypeSQLite,
		Timezone:         "UTC",
		RateLimitRPS:     1000,
		RateLimitBurst:   1000,
		PollOpenInterval: time.Minute,
		LogLevel:         "error",
	}
}

// CreateCity inserts a city and returns its ID
func CreateCity(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	id := auth.NewID()
	if _, err := conn.Exec(`INSERT INTO city (id, name) VALUES ($1, $2)`, id, name); err != nil {
		t.Fatalf("Failed to create test city: %v", err)
	}
	return id
}

// CreateBar inserts a bar in a city and returns its ID
func CreateBar(t *testing.T, conn *sql.DB, cityID, name string) string {
	t.Helper()

	id := auth.NewID()
	if _, err := conn.Exec(`INSERT INTO bar (id, name, city_id) VALUES ($1, $2, $3)`, id, name, cityID); err != nil {
		t.Fatalf("Failed to create test bar: %v", err)
	}
	return id
}

// CreateUser inserts a user and returns its ID. The password hash is a
// placeholder; sign up through directory.Accounts to test logins.
func CreateUser(t *testing.T, conn *sql.DB, cityID, name, phone string, anonymous bool) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO app_user (id, phone_number, name, password_hash, city_id, anonymous_flag, created_at)
		VALUES ($1, $2, $3, 'x', $4, $5, $6)
	`, id, phone, name, cityID, anonymous, Now)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

// CreateGroup inserts a group with its admin as an accepted member.
// No poll is created; use CreatePoll for that.
func CreateGroup(t *testing.T, conn *sql.DB, cityID, name, adminID string) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO user_group (id, name, city_id, admin_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, name, cityID, adminID, Now)
	if err != nil {
		t.Fatalf("Failed to create test group: %v", err)
	}
	AddMember(t, conn, id, adminID, models.StatusAccepted)
	return id
}

// AddMember inserts a membership row with the given status
func AddMember(t *testing.T, conn *sql.DB, groupID, userID, status string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO group_membership (group_id, user_id, status) VALUES ($1, $2, $3)
	`, groupID, userID, status)
	if err != nil {
		t.Fatalf("Failed to create test membership: %v", err)
	}
}

// CreatePoll inserts a poll for date. An empty groupID makes a city poll.
func CreatePoll(t *testing.T, conn *sql.DB, date, cityID, groupID string) string {
	t.Helper()

	id := auth.NewID()
	pollType := models.PollTypeCity
	var group *string
	if groupID != "" {
		pollType = models.PollTypeGroup
		group = &groupID
	}

	_, err := conn.Exec(`
		INSERT INTO poll (id, poll_date, poll_type, city_id, group_id)
		VALUES ($1, $2, $3, $4, $5)
	`, id, date, pollType, cityID, group)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return id
}

// CreateVote inserts a vote directly, bypassing the ledger checks
func CreateVote(t *testing.T, conn *sql.DB, userID, pollID, barID, date string) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO vote (id, user_id, poll_id, bar_id, vote_date, time_voted)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, userID, pollID, barID, date, Now)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
	return id
}

// Count runs a COUNT(*) query and returns the result
func Count(t *testing.T, conn *sql.DB, query string, args ...any) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	return n
}

// MembershipStatus returns the status of (group, user), or "" if absent
func MembershipStatus(t *testing.T, conn *sql.DB, groupID, userID string) string {
	t.Helper()

	var status string
	err := conn.QueryRow(`
		SELECT status FROM group_membership WHERE group_id = $1 AND user_id = $2
	`, groupID, userID).Scan(&status)
	if err == sql.ErrNoRows {
		return ""
	}
	if err != nil {
		t.Fatalf("Failed to query membership: %v", err)
	}
	return status
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
