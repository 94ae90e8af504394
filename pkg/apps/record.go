package apps

// SourceRecord is normalized metadata from exactly one store source.
// Fetchers convert the loosely-typed store responses into this fixed shape
// at the boundary; a fetch either yields a full record or a typed error,
// never a partial one. Absence is represented by a nil pointer.
type SourceRecord struct {
	// ID is the store-native identifier: a package name for Google Play,
	// a digits-only track id for the App Store.
	ID string

	Title       string
	Genre       string
	Installs    string
	ReleaseDate string // raw, source-specific format
	URL         string
	IconURL     string

	// ScreenshotURLs preserves the store's ordering.
	ScreenshotURLs []string
}
