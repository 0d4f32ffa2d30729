package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Source returns a random source seeded from HMAC(salt, YYYY-MM-DD), so every
// player drawing a daily secret on the same date gets the same code.
func Source(date time.Time, salt string) *rand.Rand {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return rand.New(rand.NewPCG(
		binary.BigEndian.Uint64(sum[:8]),
		binary.BigEndian.Uint64(sum[8:16]),
	))
}
