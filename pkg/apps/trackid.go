package apps

import "strings"

// NormalizeTrackID canonicalizes a raw Apple track id into a digits-only
// string. Identifiers arrive from heterogeneous sources (typed spreadsheet
// cells, JSON numbers, JSON strings) and must compare equal when logically
// equal: "284882215", 284882215 and "284882215.0" all normalize to
// "284882215". Returns "" when the input has no digits. Idempotent.
func NormalizeTrackID(raw string) string {
	s := strings.TrimSpace(raw)

	// Numeric round-tripping through spreadsheets and JSON turns integer
	// ids into floats.
	s = strings.TrimSuffix(s, ".0")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
