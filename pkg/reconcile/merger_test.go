package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appshelf/appshelf/pkg/apps"
	"github.com/appshelf/appshelf/pkg/errors"
	"github.com/appshelf/appshelf/pkg/reconcile"
)

func googleRecord() *apps.SourceRecord {
	return &apps.SourceRecord{
		ID:          "com.example.game",
		Title:       "G",
		Genre:       "Puzzle",
		Installs:    "1,000,000+",
		ReleaseDate: "Jan 5, 2024",
		URL:         "https://play.google.com/store/apps/details?id=com.example.game",
		IconURL:     "https://img.example/google-icon.png",
		ScreenshotURLs: []string{
			"https://img.example/g0.png",
			"https://img.example/g1.png",
		},
	}
}

func appleRecord() *apps.SourceRecord {
	return &apps.SourceRecord{
		ID:          "284882215",
		Title:       "A",
		Genre:       "Games",
		ReleaseDate: "2023-11-20T08:00:00Z",
		URL:         "https://apps.apple.com/us/app/id284882215",
		IconURL:     "https://img.example/apple-icon.png",
		ScreenshotURLs: []string{
			"https://img.example/a0.png",
			"https://img.example/a1.png",
			"https://img.example/a2.png",
			"https://img.example/a3.png",
		},
	}
}

func TestMergeBothSources(t *testing.T) {
	app, err := reconcile.NewMerger().Merge(googleRecord(), appleRecord())
	require.NoError(t, err)

	assert.Equal(t, "com.example.game", app.GoogleID)
	assert.Equal(t, "284882215", app.AppleID)

	// Google wins wherever it has a value.
	assert.Equal(t, "G", app.Title)
	assert.Equal(t, "Puzzle", app.Genre)
	assert.Equal(t, "1,000,000+", app.Installs)
	assert.Equal(t, "2024-01-05", app.ReleaseDate)
	assert.Equal(t, "https://img.example/google-icon.png", app.IconURL)
	assert.Equal(t, []string{
		"https://img.example/g0.png",
		"https://img.example/g1.png",
	}, app.ScreenshotURLs, "screenshot lists are never interleaved")

	assert.Equal(t, "https://play.google.com/store/apps/details?id=com.example.game", app.GoogleURL)
	assert.Equal(t, "https://apps.apple.com/us/app/id284882215", app.AppleURL)
	assert.Equal(t, "com.example.game", app.ContentKey)
}

func TestMergeGoogleAbsent(t *testing.T) {
	app, err := reconcile.NewMerger().Merge(nil, appleRecord())
	require.NoError(t, err)

	assert.Equal(t, "A", app.Title)
	assert.Equal(t, "Games", app.Genre)
	assert.Empty(t, app.Installs, "installs comes only from Google")
	assert.Equal(t, "2023-11-20", app.ReleaseDate)
	assert.Empty(t, app.GoogleID)
	assert.Empty(t, app.GoogleURL)
	assert.Equal(t, "apple_284882215", app.ContentKey)
	assert.Len(t, app.ScreenshotURLs, 3, "capped at the default maximum")
}

func TestMergeAppleAbsent(t *testing.T) {
	app, err := reconcile.NewMerger().Merge(googleRecord(), nil)
	require.NoError(t, err)

	assert.Equal(t, "G", app.Title)
	assert.Empty(t, app.AppleID)
	assert.Empty(t, app.AppleURL)
	assert.Equal(t, "com.example.game", app.ContentKey)
}

func TestMergeGooglePartiallyEmpty(t *testing.T) {
	google := googleRecord()
	google.Genre = ""
	google.IconURL = ""
	google.ScreenshotURLs = nil

	app, err := reconcile.NewMerger().Merge(google, appleRecord())
	require.NoError(t, err)

	// Empty Google fields fall through to Apple, field by field.
	assert.Equal(t, "G", app.Title)
	assert.Equal(t, "Games", app.Genre)
	assert.Equal(t, "https://img.example/apple-icon.png", app.IconURL)
	assert.Equal(t, []string{
		"https://img.example/a0.png",
		"https://img.example/a1.png",
		"https://img.example/a2.png",
	}, app.ScreenshotURLs)
}

func TestMergeNoUsableSource(t *testing.T) {
	app, err := reconcile.NewMerger().Merge(nil, nil)
	assert.Nil(t, app)
	assert.ErrorIs(t, err, errors.ErrNoUsableSource)
}

func TestMergeMaxScreenshots(t *testing.T) {
	app, err := reconcile.NewMerger().WithMaxScreenshots(1).Merge(nil, appleRecord())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example/a0.png"}, app.ScreenshotURLs)
}
