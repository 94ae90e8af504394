// Package site renders the catalog workbook and its asset tree into a static
// searchable HTML page.
package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/appshelf/appshelf/internal/assets"
	"github.com/appshelf/appshelf/internal/workbook"
	"github.com/appshelf/appshelf/pkg/apps"
	"github.com/appshelf/appshelf/pkg/errors"
	"github.com/appshelf/appshelf/pkg/logging"
)

//go:embed templates/index.html.tmpl templates/styles.css
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html.tmpl"))

// Defaults for the rendered page chrome.
const (
	DefaultTitle    = "Apps I’ve Worked On"
	DefaultSubtitle = "A curated list of mobile apps where I contributed to development. " +
		"Use the buttons to open the store page and browse screenshots."
	DefaultNote = "This page is generated automatically."

	IndexFileName  = "index.html"
	StylesFileName = "styles.css"
	assetsDirName  = "assets"
)

// page is the root template context.
type page struct {
	Title    string
	Subtitle string
	Note     string
	Cards    []card
}

// card is one app on the page. Paths are relative to the site root.
type card struct {
	Name        string
	GoogleID    string
	AppleID     string
	GoogleURL   string
	AppleURL    string
	Chips       []string
	IconPath    string
	Screenshots []string
	Search      string

	installs int64
}

// Renderer turns a workbook plus its content directory into a static site.
type Renderer struct {
	contentDir string
	outDir     string

	title    string
	subtitle string
	note     string

	genreCaser cases.Caser
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTitle overrides the page heading.
func WithTitle(title string) Option {
	return func(r *Renderer) { r.title = title }
}

// WithSubtitle overrides the page subtitle.
func WithSubtitle(subtitle string) Option {
	return func(r *Renderer) { r.subtitle = subtitle }
}

// NewRenderer creates a renderer reading assets from contentDir and writing
// the site under outDir.
func NewRenderer(contentDir, outDir string, opts ...Option) *Renderer {
	r := &Renderer{
		contentDir: contentDir,
		outDir:     outDir,
		title:      DefaultTitle,
		subtitle:   DefaultSubtitle,
		note:       DefaultNote,
		genreCaser: cases.Title(language.English),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render reads the workbook, copies each row's materialized assets into the
// site tree and writes index.html and styles.css. Rows are ordered by numeric
// install count descending; rows whose installs do not parse keep their
// workbook order at the bottom. Missing assets only lose that image.
func (r *Renderer) Render(workbookPath string) error {
	rows, err := workbook.Read(workbookPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(r.outDir, assetsDirName), 0o755); err != nil {
		return errors.WrapIO("create", r.outDir, err)
	}

	styles, err := templatesFS.ReadFile("templates/" + StylesFileName)
	if err != nil {
		return errors.WrapIO("read", StylesFileName, err)
	}
	stylesPath := filepath.Join(r.outDir, StylesFileName)
	if err := os.WriteFile(stylesPath, styles, 0o644); err != nil {
		return errors.WrapIO("write", stylesPath, err)
	}

	cards := make([]card, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, r.buildCard(row))
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].installs > cards[j].installs
	})

	indexPath := filepath.Join(r.outDir, IndexFileName)
	f, err := os.Create(indexPath)
	if err != nil {
		return errors.WrapIO("create", indexPath, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn().Err(err).Str("path", indexPath).Msg("Failed to close index file")
		}
	}()

	if err := indexTemplate.Execute(f, page{
		Title:    r.title,
		Subtitle: r.subtitle,
		Note:     r.note,
		Cards:    cards,
	}); err != nil {
		return errors.WrapIO("write", indexPath, err)
	}

	logging.Info().Int("apps", len(cards)).Str("dir", r.outDir).Msg("Site rendered")
	return nil
}

// buildCard copies the row's assets into the site tree and assembles its
// view model. The asset folder is derived from the ids exactly as the
// pipeline derives it, so renderer and pipeline always agree on the key.
func (r *Renderer) buildCard(row workbook.Row) card {
	appleID := apps.NormalizeTrackID(row.AppleID)
	key := apps.ContentKey(row.GoogleID, appleID)

	c := card{
		Name:      row.Title,
		GoogleID:  row.GoogleID,
		AppleID:   appleID,
		GoogleURL: webURL(row.GoogleURL),
		AppleURL:  webURL(row.AppleURL),
		installs:  installsNumber(row.Installs),
		Search: strings.ToLower(strings.Join([]string{
			row.Title, row.GoogleID, appleID, row.Genre,
		}, " ")),
	}

	if row.Genre != "" {
		c.Chips = append(c.Chips, r.genreCaser.String(row.Genre))
	}
	if row.Installs != "" {
		c.Chips = append(c.Chips, row.Installs+" installs")
	}
	if pretty := prettyDate(row.ReleaseDate); pretty != "" {
		c.Chips = append(c.Chips, "Released: "+pretty)
	}

	if rel, ok := r.copyAsset(key, assets.IconFileName); ok {
		c.IconPath = rel
	}
	for i := 0; i < assets.DefaultMaxScreenshots; i++ {
		if rel, ok := r.copyAsset(key, fmt.Sprintf(assets.ScreenshotFilePattern, i)); ok {
			c.Screenshots = append(c.Screenshots, rel)
		}
	}
	return c
}

// copyAsset copies one file from the content tree into the site's assets
// directory and returns its site-relative URL path. A missing source file is
// not an error; the card just omits that image.
func (r *Renderer) copyAsset(key, name string) (string, bool) {
	src := filepath.Join(r.contentDir, key, name)
	if _, err := os.Stat(src); err != nil {
		return "", false
	}

	dstDir := filepath.Join(r.outDir, assetsDirName, key)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		logging.Warn().Err(err).Str("dir", dstDir).Msg("Failed to create asset dir")
		return "", false
	}
	if err := copyFile(src, filepath.Join(dstDir, name)); err != nil {
		logging.Warn().Err(err).Str("src", src).Msg("Failed to copy asset")
		return "", false
	}
	return path.Join(assetsDirName, key, name), true
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// webURL passes through http(s) links and drops anything else, so store
// deep links and stray cell values never become buttons.
func webURL(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return ""
}

// installsNumber parses values like "1,000,000+" into a sortable count.
// Anything non-numeric sorts as zero.
func installsNumber(s string) int64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "+")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// prettyDate renders an ISO date as "Jan 2, 2006". Values that are already in
// that form, or that do not parse at all, pass through unchanged.
func prettyDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 2006")
}
