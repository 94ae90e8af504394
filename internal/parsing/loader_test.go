package parsing_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appshelf/appshelf/internal/parsing"
	"github.com/appshelf/appshelf/pkg/apps"
	"github.com/appshelf/appshelf/pkg/errors"
)

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEntriesText(t *testing.T) {
	path := writeInput(t, "packages.txt", `
# portfolio apps
com.example.one

com.example.two
  # indented comment
`)

	entries, err := parsing.LoadEntries(path)
	require.NoError(t, err)
	assert.Equal(t, []apps.Entry{
		{GoogleID: "com.example.one"},
		{GoogleID: "com.example.two"},
	}, entries)
}

func TestLoadEntriesJSONStrings(t *testing.T) {
	path := writeInput(t, "apps.json", `["com.example.one", " com.example.two ", ""]`)

	entries, err := parsing.LoadEntries(path)
	require.NoError(t, err)
	assert.Equal(t, []apps.Entry{
		{GoogleID: "com.example.one"},
		{GoogleID: "com.example.two"},
	}, entries)
}

func TestLoadEntriesJSONObjects(t *testing.T) {
	path := writeInput(t, "apps.json", `[
		{"google": "com.example.one", "apple": "284882215"},
		{"Package": "com.example.two"},
		{"trackId": 6448311069},
		{"ios": 123.0}
	]`)

	entries, err := parsing.LoadEntries(path)
	require.NoError(t, err)
	assert.Equal(t, []apps.Entry{
		{GoogleID: "com.example.one", AppleID: "284882215"},
		{GoogleID: "com.example.two"},
		{AppleID: "6448311069"},
		{AppleID: "123"},
	}, entries)
}

func TestLoadEntriesJSONSingleObject(t *testing.T) {
	path := writeInput(t, "app.json", `{"android": "com.example.solo"}`)

	entries, err := parsing.LoadEntries(path)
	require.NoError(t, err)
	assert.Equal(t, []apps.Entry{{GoogleID: "com.example.solo"}}, entries)
}

func TestLoadEntriesJSONWithoutExtension(t *testing.T) {
	// Format detection falls back to the first byte.
	path := writeInput(t, "list.txt", `["com.example.one"]`)

	entries, err := parsing.LoadEntries(path)
	require.NoError(t, err)
	assert.Equal(t, []apps.Entry{{GoogleID: "com.example.one"}}, entries)
}

func TestLoadEntriesEmptyFile(t *testing.T) {
	path := writeInput(t, "empty.txt", "   \n\n")

	entries, err := parsing.LoadEntries(path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadEntriesMalformedJSON(t *testing.T) {
	path := writeInput(t, "broken.json", `{"google": `)

	_, err := parsing.LoadEntries(path)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestLoadEntriesUnsupportedShape(t *testing.T) {
	path := writeInput(t, "nums.json", `[1, 2, 3]`)

	_, err := parsing.LoadEntries(path)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestLoadEntriesMissingFile(t *testing.T) {
	_, err := parsing.LoadEntries(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
