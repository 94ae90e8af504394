package apps

// App is the single reconciled record for one entry, merged from up to two
// source records with Google-first field precedence. It is a value object;
// the pipeline emits exactly one per entry that yielded at least one source.
type App struct {
	GoogleID string `json:"google_id,omitempty" yaml:"google_id,omitempty"`
	AppleID  string `json:"apple_id,omitempty" yaml:"apple_id,omitempty"`

	Title       string `json:"title" yaml:"title"`
	Genre       string `json:"genre,omitempty" yaml:"genre,omitempty"`
	Installs    string `json:"installs,omitempty" yaml:"installs,omitempty"`
	ReleaseDate string `json:"release_date,omitempty" yaml:"release_date,omitempty"`

	GoogleURL string `json:"google_url,omitempty" yaml:"google_url,omitempty"`
	AppleURL  string `json:"apple_url,omitempty" yaml:"apple_url,omitempty"`

	IconURL        string   `json:"icon_url,omitempty" yaml:"icon_url,omitempty"`
	ScreenshotURLs []string `json:"screenshot_urls,omitempty" yaml:"screenshot_urls,omitempty"`

	// ContentKey namespaces this app's on-disk asset folder. See ContentKey.
	ContentKey string `json:"content_key" yaml:"content_key"`
}
