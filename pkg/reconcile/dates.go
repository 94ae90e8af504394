package reconcile

import (
	"strings"
	"time"
)

// Release date layouts seen in store responses: the App Store lookup returns
// RFC 3339 timestamps, Google Play reports a human-readable date.
const (
	isoDateLayout    = "2006-01-02"
	playStoreLayout  = "Jan 2, 2006"
	dateTimeSepIndex = 10 // length of the YYYY-MM-DD prefix
)

// NormalizeReleaseDate converts a raw store release date to ISO 8601
// (YYYY-MM-DD) on a best-effort basis. Unparseable values pass through
// unchanged; the field is never dropped and this never fails.
func NormalizeReleaseDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Drop the time-of-day portion of date-time stamps.
	if strings.Contains(s, "T") && len(s) >= dateTimeSepIndex {
		s = s[:dateTimeSepIndex]
	}

	if _, err := time.Parse(isoDateLayout, s); err == nil {
		return s
	}
	if t, err := time.Parse(playStoreLayout, s); err == nil {
		return t.Format(isoDateLayout)
	}

	return raw
}
