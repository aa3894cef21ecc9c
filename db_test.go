package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrateIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "claw.db")
	db, err := openDB(dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, migrate(db))
	require.NoError(t, migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)

	_, err = db.Exec(`INSERT INTO solves (session_id, strategy, guesses, outcome) VALUES ('s', 'minimax', 4, 'solved')`)
	assert.NoError(t, err)
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("SESSION_TTL", "90m")
	assert.Equal(t, 90*time.Minute, envDuration("SESSION_TTL", time.Hour))
	t.Setenv("SESSION_TTL", "15")
	assert.Equal(t, 15*time.Minute, envDuration("SESSION_TTL", time.Hour))
	t.Setenv("SESSION_TTL", "soon")
	assert.Equal(t, time.Hour, envDuration("SESSION_TTL", time.Hour))
	t.Setenv("SESSION_TTL", "")
	assert.Equal(t, time.Hour, envDuration("SESSION_TTL", time.Hour))
}
