package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envDuration parses k as a time.Duration ("90m", "2h"), falling back to def
// when unset or malformed.
func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("key", k).Str("value", v).Msg("invalid duration, using default")
		return def
	}
	return d
}
