// Package daily derives the daily practice secret. Every server with the
// same salt hands out the same code on the same UTC day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/clawsolver/internal/claw"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// SecretIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func SecretIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Secret returns the day's combination and its date key.
func Secret(date time.Time, salt string) (claw.Combination, string) {
	all := claw.All()
	return all[SecretIndex(date, salt, len(all))], DateKey(date)
}
