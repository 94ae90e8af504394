package reconcile

import (
	"github.com/appshelf/appshelf/pkg/apps"
	"github.com/appshelf/appshelf/pkg/errors"
)

// DefaultMaxScreenshots is how many screenshot URLs survive the merge.
const DefaultMaxScreenshots = 3

// Merger merges per-store source records using field authorities.
type Merger struct {
	authorities    []FieldAuthority
	maxScreenshots int
}

// NewMerger creates a merger with the default field authorities.
func NewMerger() *Merger {
	return &Merger{
		authorities:    DefaultFieldAuthorities,
		maxScreenshots: DefaultMaxScreenshots,
	}
}

// WithAuthorities sets custom field authorities.
func (m *Merger) WithAuthorities(authorities []FieldAuthority) *Merger {
	if authorities != nil {
		m.authorities = authorities
	}
	return m
}

// WithMaxScreenshots sets the screenshot cap applied at merge time.
func (m *Merger) WithMaxScreenshots(n int) *Merger {
	if n >= 0 {
		m.maxScreenshots = n
	}
	return m
}

// Merge produces exactly one reconciled app from up to two source records.
// Either record may be nil; both nil returns ErrNoUsableSource and the
// caller drops the entry. The content key is derived from the record ids so
// it is identical whether or not assets end up materialized.
func (m *Merger) Merge(google, apple *apps.SourceRecord) (*apps.App, error) {
	if google == nil && apple == nil {
		return nil, errors.ErrNoUsableSource
	}

	records := map[Origin]*apps.SourceRecord{
		GooglePlay: google,
		AppStore:   apple,
	}

	app := &apps.App{}
	if google != nil {
		app.GoogleID = google.ID
		app.GoogleURL = google.URL
	}
	if apple != nil {
		app.AppleID = apple.ID
		app.AppleURL = apple.URL
	}

	for _, authority := range m.authorities {
		record, ok := m.pick(authority, records)
		if !ok {
			continue
		}
		switch authority.Field {
		case "title":
			app.Title = record.Title
		case "genre":
			app.Genre = record.Genre
		case "installs":
			app.Installs = record.Installs
		case "release_date":
			app.ReleaseDate = NormalizeReleaseDate(record.ReleaseDate)
		case "icon_url":
			app.IconURL = record.IconURL
		case "screenshot_urls":
			app.ScreenshotURLs = capScreenshots(record.ScreenshotURLs, m.maxScreenshots)
		}
	}

	app.ContentKey = apps.ContentKey(app.GoogleID, app.AppleID)
	return app, nil
}

// pick returns the first record in authority order with a non-empty value
// for the field.
func (m *Merger) pick(authority FieldAuthority, records map[Origin]*apps.SourceRecord) (*apps.SourceRecord, bool) {
	for _, origin := range authority.Order {
		record := records[origin]
		if record == nil {
			continue
		}
		if hasField(record, authority.Field) {
			return record, true
		}
	}
	return nil, false
}

// hasField reports whether the record carries a usable value for the field.
func hasField(r *apps.SourceRecord, field string) bool {
	switch field {
	case "title":
		return r.Title != ""
	case "genre":
		return r.Genre != ""
	case "installs":
		return r.Installs != ""
	case "release_date":
		return r.ReleaseDate != ""
	case "icon_url":
		return r.IconURL != ""
	case "screenshot_urls":
		return len(r.ScreenshotURLs) > 0
	}
	return false
}

// capScreenshots copies at most max URLs, preserving source order.
func capScreenshots(urls []string, max int) []string {
	if len(urls) > max {
		urls = urls[:max]
	}
	out := make([]string, len(urls))
	copy(out, urls)
	return out
}
