package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2026, 10, 20, 5, 0, 0, 0, loc)
	assert.Equal(t, "2026-10-19", DateKey(ts))
}

func TestSecretDeterministic(t *testing.T) {
	day := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	later := time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)

	a, key := Secret(day, "salt")
	b, _ := Secret(later, "salt")
	assert.Equal(t, "2026-10-19", key)
	assert.Equal(t, a, b)
	assert.True(t, a.Valid())
}

func TestSecretIndexRange(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		idx := SecretIndex(day.AddDate(0, 0, i), "salt", 81)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 81)
		seen[idx] = true
	}
	assert.Greater(t, len(seen), 20, "indexes should spread across the universe")
	assert.Zero(t, SecretIndex(day, "salt", 0))
}
