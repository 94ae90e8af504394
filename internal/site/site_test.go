package site_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appshelf/appshelf/internal/site"
	"github.com/appshelf/appshelf/internal/workbook"
	"github.com/appshelf/appshelf/pkg/apps"
)

// buildWorkbook writes a small catalog workbook the renderer can read back.
func buildWorkbook(t *testing.T, path string, rows ...*apps.App) {
	t.Helper()
	w, err := workbook.NewWriter(path)
	require.NoError(t, err)
	for _, row := range rows {
		require.NoError(t, w.Append(row, "", nil))
	}
	require.NoError(t, w.Save())
	require.NoError(t, w.Close())
}

func seedAsset(t *testing.T, contentDir, key, name string) {
	t.Helper()
	dir := filepath.Join(contentDir, key)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("png"), 0o644))
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	contentDir := filepath.Join(dir, "apps_content")
	outDir := filepath.Join(dir, "site")
	wbPath := filepath.Join(dir, "apps.xlsx")

	buildWorkbook(t, wbPath,
		&apps.App{
			GoogleID:    "com.example.small",
			Title:       "Small App",
			Genre:       "puzzle",
			Installs:    "500+",
			ReleaseDate: "2019-03-01",
			GoogleURL:   "https://play.google.com/store/apps/details?id=com.example.small",
		},
		&apps.App{
			GoogleID:    "com.example.big",
			AppleID:     "284882215",
			Title:       "Big App",
			Genre:       "Arcade",
			Installs:    "1,000,000+",
			ReleaseDate: "2016-02-22",
			GoogleURL:   "https://play.google.com/store/apps/details?id=com.example.big",
			AppleURL:    "https://apps.apple.com/us/app/id284882215",
		},
	)

	seedAsset(t, contentDir, "com.example.big", "icon.png")
	seedAsset(t, contentDir, "com.example.big", "screenshot0.png")
	seedAsset(t, contentDir, "com.example.big", "screenshot1.png")

	r := site.NewRenderer(contentDir, outDir)
	require.NoError(t, r.Render(wbPath))

	html, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	require.NoError(t, err)
	body := string(html)

	// Higher install count renders first.
	assert.Less(t, strings.Index(body, "Big App"), strings.Index(body, "Small App"))

	assert.Contains(t, body, site.DefaultTitle)
	assert.Contains(t, body, "assets/com.example.big/icon.png")
	assert.Contains(t, body, "assets/com.example.big/screenshot1.png")
	assert.Contains(t, body, "1,000,000+ installs")
	assert.Contains(t, body, "Released: Feb 22, 2016")
	assert.Contains(t, body, "Puzzle", "genre chip is title-cased")
	assert.Contains(t, body, `href="https://apps.apple.com/us/app/id284882215"`)

	// The row without materialized assets gets the placeholder treatment.
	assert.Contains(t, body, "icon-ph")
	assert.Contains(t, body, "No screenshots")

	_, err = os.Stat(filepath.Join(outDir, "styles.css"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "assets", "com.example.big", "screenshot0.png"))
	assert.NoError(t, err)
}

func TestRenderSkipsNonWebURLs(t *testing.T) {
	dir := t.TempDir()
	wbPath := filepath.Join(dir, "apps.xlsx")

	buildWorkbook(t, wbPath, &apps.App{
		GoogleID:  "com.example.app",
		Title:     "Example",
		GoogleURL: "market://details?id=com.example.app",
	})

	r := site.NewRenderer(filepath.Join(dir, "apps_content"), filepath.Join(dir, "site"))
	require.NoError(t, r.Render(wbPath))

	html, err := os.ReadFile(filepath.Join(dir, "site", "index.html"))
	require.NoError(t, err)
	assert.NotContains(t, string(html), "market://")
	assert.NotContains(t, string(html), "Google Play</a>")
}

func TestRenderAppleOnlyKey(t *testing.T) {
	dir := t.TempDir()
	contentDir := filepath.Join(dir, "apps_content")
	wbPath := filepath.Join(dir, "apps.xlsx")

	buildWorkbook(t, wbPath, &apps.App{
		AppleID: "6448311069.0",
		Title:   "Apple Only",
	})
	seedAsset(t, contentDir, "apple_6448311069", "icon.png")

	r := site.NewRenderer(contentDir, filepath.Join(dir, "site"))
	require.NoError(t, r.Render(wbPath))

	html, err := os.ReadFile(filepath.Join(dir, "site", "index.html"))
	require.NoError(t, err)
	body := string(html)

	// Track id is normalized before deriving the asset key, matching the
	// folder the pipeline wrote into.
	assert.Contains(t, body, "assets/apple_6448311069/icon.png")
	assert.Contains(t, body, "Apple: 6448311069")
}

func TestRenderCustomChrome(t *testing.T) {
	dir := t.TempDir()
	wbPath := filepath.Join(dir, "apps.xlsx")
	buildWorkbook(t, wbPath, &apps.App{GoogleID: "com.example.app", Title: "Example"})

	r := site.NewRenderer(filepath.Join(dir, "apps_content"), filepath.Join(dir, "site"),
		site.WithTitle("Portfolio"),
		site.WithSubtitle("Shipped games"))
	require.NoError(t, r.Render(wbPath))

	html, err := os.ReadFile(filepath.Join(dir, "site", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Portfolio</h1>")
	assert.Contains(t, string(html), "Shipped games")
}

func TestRenderMissingWorkbook(t *testing.T) {
	dir := t.TempDir()
	r := site.NewRenderer(dir, dir)
	assert.Error(t, r.Render(filepath.Join(dir, "nope.xlsx")))
}
