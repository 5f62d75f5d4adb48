package helpers

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yigit/kursverwaltung/internal/app/models"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// Today returns the current date in the layout of date fields
func Today(now time.Time) string {
	return now.Format(models.DateLayout)
}
