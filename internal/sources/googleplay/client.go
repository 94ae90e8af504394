// Package googleplay implements the Google Play source. The Play Store has
// no public lookup API, so the client scrapes the app details page the same
// way the store's own web frontend renders it.
package googleplay

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/appshelf/appshelf/internal/sources"
	"github.com/appshelf/appshelf/internal/transport"
	"github.com/appshelf/appshelf/pkg/apps"
	"github.com/appshelf/appshelf/pkg/errors"
)

// DefaultBaseURL is the Play Store web frontend.
const DefaultBaseURL = "https://play.google.com"

// titleSuffix is appended by the Play frontend to the og:title meta tag.
const titleSuffix = " - Apps on Google Play"

// Client implements the sources.Source interface for Google Play.
type Client struct {
	transport *transport.Client
	baseURL   string
	country   string
	lang      string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the store frontend URL, used by tests.
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

// New creates a Google Play client.
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
	return sources.GooglePlayID
}

// Lookup fetches and parses the details page for a package name.
func (c *Client) Lookup(ctx context.Context, pkg string) (*apps.SourceRecord, error) {
	if strings.TrimSpace(pkg) == "" {
		return nil, errors.NewValidationError("google_id", pkg, "empty package name")
	}

	query := url.Values{}
	query.Set("id", pkg)
	query.Set("hl", c.lang)
	query.Set("gl", c.country)
	detailsURL := c.baseURL + "/store/apps/details?" + query.Encode()

	resp, err := c.transport.Get(ctx, detailsURL)
	if err != nil {
		return nil, errors.WrapAPI(sources.GooglePlayID.String(), 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NewNotFoundError(sources.GooglePlayID.String(), pkg)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.NewAPIError(sources.GooglePlayID.String(), resp.StatusCode, "details page request failed")
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.WrapParse("html", detailsURL, err)
	}

	return c.record(doc, pkg, detailsURL)
}

// record maps the parsed details page into the fixed source-record shape.
func (c *Client) record(doc *goquery.Document, pkg, detailsURL string) (*apps.SourceRecord, error) {
	title := strings.TrimSuffix(metaContent(doc, "og:title"), titleSuffix)
	if title == "" {
		// Interstitial or consent page instead of app details.
		return nil, errors.NewParseError("html", detailsURL, "details page has no og:title", nil)
	}

	return &apps.SourceRecord{
		ID:             pkg,
		Title:          title,
		Genre:          genre(doc),
		Installs:       labelledPrev(doc, "Downloads"),
		ReleaseDate:    labelledNext(doc, "Released on"),
		URL:            detailsURL,
		IconURL:        metaContent(doc, "og:image"),
		ScreenshotURLs: screenshots(doc),
	}, nil
}

// metaContent returns the content attribute of an og meta tag.
func metaContent(doc *goquery.Document, property string) string {
	return doc.Find(`meta[property="` + property + `"]`).AttrOr("content", "")
}

// genre reads the category link from the details page.
func genre(doc *goquery.Document) string {
	if g := strings.TrimSpace(doc.Find(`a[itemprop="genre"] span`).First().Text()); g != "" {
		return g
	}
	return strings.TrimSpace(doc.Find(`[itemprop="genre"]`).First().Text())
}

// screenshots collects the screenshot carousel image URLs in page order.
func screenshots(doc *goquery.Document) []string {
	var urls []string
	doc.Find(`img[data-screenshot-index], img[alt="Screenshot image"]`).Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		if src == "" {
			// Lazy-loaded images carry a srcset of "url width" pairs.
			srcset := s.AttrOr("srcset", "")
			if fields := strings.Fields(srcset); len(fields) > 0 {
				src = fields[0]
			}
		}
		if src != "" {
			urls = append(urls, src)
		}
	})
	return urls
}

// labelledPrev returns the text of the element preceding a stats label.
// The header stats strip renders the value above its caption, e.g.
// "10,000,000+" followed by "Downloads".
func labelledPrev(doc *goquery.Document, label string) string {
	value := ""
	doc.Find("div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) != label {
			return true
		}
		value = strings.TrimSpace(s.Prev().Text())
		return false
	})
	return value
}

// labelledNext returns the text of the element following an about-section
// label, e.g. "Released on" followed by "Feb 22, 2016".
func labelledNext(doc *goquery.Document, label string) string {
	value := ""
	doc.Find("div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) != label {
			return true
		}
		value = strings.TrimSpace(s.Next().Text())
		return false
	})
	return value
}
