// Package apps defines the domain model for the appshelf pipeline: input
// entries, per-store source records, and the reconciled app rows that end up
// in the catalog workbook.
package apps

// Entry is one input unit referencing up to two store identifiers for the
// same logical app. Either identifier may be empty; an entry with both empty
// is accepted and simply yields no record downstream.
type Entry struct {
	GoogleID string `json:"google,omitempty" yaml:"google,omitempty"`
	AppleID  string `json:"apple,omitempty" yaml:"apple,omitempty"`
}

// IsEmpty reports whether the entry carries no identifier at all.
func (e Entry) IsEmpty() bool {
	return e.GoogleID == "" && e.AppleID == ""
}
