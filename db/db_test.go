// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "schema.db")
	conn, err := Open(context.Background(), TypeSQLite, "file:"+path+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, CreateSchema(conn))
	return conn
}

func seedCity(t *testing.T, conn *sql.DB) {
	t.Helper()
	_, err := conn.Exec(`INSERT INTO city (id, name) VALUES ('c1', 'Austin')`)
	require.NoError(t, err)
	_, err = conn.Exec(`
		INSERT INTO app_user (id, phone_number, name, password_hash, city_id, created_at)
		VALUES ('u1', '5125550100', 'Ana', 'x', 'c1', $1)
	`, time.Now().UTC())
	require.NoError(t, err)
}

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	assert.Error(t, err)
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := openTestDB(t)
	assert.NoError(t, CreateSchema(conn))
}

func TestIsUniqueViolation(t *testing.T) {
	conn := openTestDB(t)
	seedCity(t, conn)

	_, err := conn.Exec(`
		INSERT INTO app_user (id, phone_number, name, password_hash, city_id, created_at)
		VALUES ('u2', '5125550100', 'Ben', 'x', 'c1', $1)
	`, time.Now().UTC())
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))

	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestPollUniquePerScopeAndDay(t *testing.T) {
	conn := openTestDB(t)
	seedCity(t, conn)

	insertPoll := func(id string) error {
		_, err := conn.Exec(`
			INSERT INTO poll (id, poll_date, poll_type, city_id, group_id)
			VALUES ($1, '2025-04-01', 'city', 'c1', NULL)
		`, id)
		return err
	}

	require.NoError(t, insertPoll("p1"))
	err := insertPoll("p2")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	// group scope needs a group id
	_, err = conn.Exec(`
		INSERT INTO poll (id, poll_date, poll_type, city_id, group_id)
		VALUES ('p3', '2025-04-01', 'group', 'c1', NULL)
	`)
	assert.Error(t, err)
}

func TestIsForeignKeyViolation(t *testing.T) {
	conn := openTestDB(t)

	_, err := conn.Exec(`INSERT INTO bar (id, name, city_id) VALUES ('b1', 'Nowhere', 'missing')`)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()

	errForced := errors.New("forced")
	err := WithTx(ctx, conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO city (id, name) VALUES ('c9', 'Tyler')`); err != nil {
			return err
		}
		return errForced
	})
	assert.ErrorIs(t, err, errForced)

	var count int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM city`).Scan(&count))
	assert.Equal(t, 0, count)

	err = WithTx(ctx, conn, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO city (id, name) VALUES ('c9', 'Tyler')`)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM city`).Scan(&count))
	assert.Equal(t, 1, count)
}
