package timex

import (
	"fmt"
	"time"
)

// StoreLayout encodes instants for TEXT columns compared bytewise. Every
// fractional second is written with all nine digits; RFC3339Nano trims
// trailing zeros, which puts "..00.5Z" before "..00Z" under string
// comparison. Values must be UTC-normalized before formatting.
const StoreLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DurationSeconds returns the whole seconds between start and end.
// Fractional seconds truncate.
func DurationSeconds(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Second)
}

// FormatDuration formats seconds as a human-readable string like
// "1h 1m 1s", "4m 5s" or "30s".
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
