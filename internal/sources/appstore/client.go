// Package appstore implements the App Store source using the iTunes lookup
// endpoint.
package appstore

import (
	"context"
	"fmt"
	"net/url"

	"github.com/appshelf/appshelf/internal/sources"
	"github.com/appshelf/appshelf/internal/transport"
	"github.com/appshelf/appshelf/pkg/apps"
	"github.com/appshelf/appshelf/pkg/errors"
)

// DefaultBaseURL is the iTunes lookup endpoint.
const DefaultBaseURL = "https://itunes.apple.com"

// Response represents the iTunes lookup response envelope.
type Response struct {
	ResultCount int      `json:"resultCount"`
	Results     []Result `json:"results"`
}

// Result is the subset of an iTunes lookup result the pipeline consumes.
type Result struct {
	TrackID            int64    `json:"trackId"`
	TrackName          string   `json:"trackName"`
	PrimaryGenreName   string   `json:"primaryGenreName"`
	Genres             []string `json:"genres"`
	ReleaseDate        string   `json:"releaseDate"`
	TrackViewURL       string   `json:"trackViewUrl"`
	ArtworkURL512      string   `json:"artworkUrl512"`
	ArtworkURL100      string   `json:"artworkUrl100"`
	ArtworkURL60       string   `json:"artworkUrl60"`
	ScreenshotURLs     []string `json:"screenshotUrls"`
	IPadScreenshotURLs []string `json:"ipadScreenshotUrls"`
}

// Client implements the sources.Source interface for the App Store.
type Client struct {
	transport *transport.Client
	baseURL   string
	country   string
	lang      string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the lookup endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithLocale sets the store country and language.
func WithLocale(country, lang string) Option {
	return func(c *Client) {
		if country != "" {
			c.country = country
		}
		if lang != "" {
			c.lang = lang
		}
	}
}

// New creates an App Store client.
func New(t *transport.Client, opts ...Option) *Client {
	c := &Client{
		transport: t,
		baseURL:   DefaultBaseURL,
		country:   "us",
		lang:      "en",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the source identifier.
func (c *Client) ID() sources.ID {
	return sources.AppStoreID
}

// Lookup fetches the App Store record for a raw track id. The id is
// normalized first and an id with no digits fails fast with a
// ValidationError before any network IO.
func (c *Client) Lookup(ctx context.Context, rawID string) (*apps.SourceRecord, error) {
	trackID := apps.NormalizeTrackID(rawID)
	if trackID == "" {
		return nil, errors.NewValidationError("apple_id", rawID, "no digits after normalization")
	}

	query := url.Values{}
	query.Set("id", trackID)
	query.Set("country", c.country)
	query.Set("lang", c.lang)
	lookupURL := c.baseURL + "/lookup?" + query.Encode()

	resp, err := c.transport.Get(ctx, lookupURL)
	if err != nil {
		return nil, errors.WrapAPI(sources.AppStoreID.String(), 0, err)
	}

	var result Response
	if err := transport.DecodeJSON(resp, sources.AppStoreID.String(), &result); err != nil {
		return nil, err
	}

	if result.ResultCount < 1 || len(result.Results) == 0 {
		return nil, errors.NewNotFoundError(sources.AppStoreID.String(), trackID)
	}

	return record(result.Results[0], trackID), nil
}

// record maps the first lookup result into the fixed source-record shape.
func record(r Result, trackID string) *apps.SourceRecord {
	id := trackID
	if r.TrackID != 0 {
		id = fmt.Sprintf("%d", r.TrackID)
	}

	release := r.ReleaseDate
	if len(release) > 10 {
		release = release[:10] // date portion only
	}

	genre := r.PrimaryGenreName
	if genre == "" && len(r.Genres) > 0 {
		genre = r.Genres[0]
	}

	// Phone screenshots before tablet screenshots, store order preserved
	// within each.
	shots := make([]string, 0, len(r.ScreenshotURLs)+len(r.IPadScreenshotURLs))
	shots = append(shots, r.ScreenshotURLs...)
	shots = append(shots, r.IPadScreenshotURLs...)

	return &apps.SourceRecord{
		ID:             id,
		Title:          r.TrackName,
		Genre:          genre,
		ReleaseDate:    release,
		URL:            r.TrackViewURL,
		IconURL:        artwork(r),
		ScreenshotURLs: shots,
	}
}

// artwork picks the highest-resolution icon available.
func artwork(r Result) string {
	for _, u := range []string{r.ArtworkURL512, r.ArtworkURL100, r.ArtworkURL60} {
		if u != "" {
			return u
		}
	}
	return ""
}
