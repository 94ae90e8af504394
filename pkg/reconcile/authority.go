// Package reconcile merges up to two per-store source records for one
// logical entry into a single reconciled app row, applying per-field source
// authorities and deriving the content key that namespaces the app's assets.
package reconcile

// Origin identifies which store supplied a source record.
type Origin string

// Store origins known to the merger.
const (
	GooglePlay Origin = "google_play"
	AppStore   Origin = "app_store"
)

// FieldAuthority declares which origins may supply a field and in what
// order. The merger takes the first origin in Order whose record has a
// non-empty value; origins absent from Order never contribute the field.
type FieldAuthority struct {
	Field string
	Order []Origin
}

// DefaultFieldAuthorities encodes the merge precedence: Google's value when
// present, else Apple's, except installs, which only Google Play reports.
// Icon and screenshots are taken wholesale from one origin, never
// interleaved.
var DefaultFieldAuthorities = []FieldAuthority{
	{Field: "title", Order: []Origin{GooglePlay, AppStore}},
	{Field: "genre", Order: []Origin{GooglePlay, AppStore}},
	{Field: "installs", Order: []Origin{GooglePlay}},
	{Field: "release_date", Order: []Origin{GooglePlay, AppStore}},
	{Field: "icon_url", Order: []Origin{GooglePlay, AppStore}},
	{Field: "screenshot_urls", Order: []Origin{GooglePlay, AppStore}},
}
