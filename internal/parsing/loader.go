// Package parsing loads the input entry list. Two formats are accepted: a
// plain-text file with one Google package name per line, and a JSON file
// holding an array of strings, a single object, or an array of objects with
// case-tolerant identifier keys.
package parsing

import (
	"bytes"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/appshelf/appshelf/pkg/apps"
	"github.com/appshelf/appshelf/pkg/errors"
)

// Identifier keys accepted on JSON entry objects, matched case-insensitively.
var (
	googleKeys = []string{"google", "package", "android"}
	appleKeys  = []string{"apple", "trackid", "ios"}
)

// LoadEntries reads and parses the input file. Structurally invalid input
// (unreadable file, malformed JSON, unsupported JSON shape) is a fatal
// error; an empty file yields no entries and no error.
func LoadEntries(path string) ([]apps.Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	if isJSON(path, raw) {
		return parseJSON(path, raw)
	}
	return parseLines(raw), nil
}

// isJSON decides the format from the file extension or the first byte.
func isJSON(path string, raw []byte) bool {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return true
	}
	return raw[0] == '[' || raw[0] == '{'
}

// parseLines reads a plain-text package list: one Google package name per
// line, '#' comments and blank lines ignored.
func parseLines(raw []byte) []apps.Entry {
	var entries []apps.Entry
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, apps.Entry{GoogleID: line})
	}
	return entries
}

// parseJSON accepts ["com.x", ...], {"google": ...}, or [{"google": ...}, ...].
func parseJSON(path string, raw []byte) ([]apps.Entry, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	switch v := value.(type) {
	case map[string]any:
		return []apps.Entry{entryFromObject(v)}, nil
	case []any:
		return entriesFromArray(path, v)
	default:
		return nil, errors.NewParseError("json", path, "expected an array or object of entries", nil)
	}
}

// entriesFromArray handles both array shapes: all strings (Google package
// names) or all objects.
func entriesFromArray(path string, items []any) ([]apps.Entry, error) {
	entries := make([]apps.Entry, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				entries = append(entries, apps.Entry{GoogleID: s})
			}
		case map[string]any:
			entries = append(entries, entryFromObject(v))
		default:
			return nil, errors.NewParseError("json", path, "expected list of strings or list of objects", nil)
		}
	}
	return entries, nil
}

// entryFromObject reads the identifier keys case-insensitively. Track ids
// may arrive as JSON numbers; they are rendered without an exponent so the
// normalizer sees all the digits.
func entryFromObject(obj map[string]any) apps.Entry {
	lowered := make(map[string]any, len(obj))
	for k, v := range obj {
		lowered[strings.ToLower(k)] = v
	}

	return apps.Entry{
		GoogleID: stringValue(lowered, googleKeys),
		AppleID:  stringValue(lowered, appleKeys),
	}
}

// stringValue returns the first present key's value rendered as a trimmed
// string.
func stringValue(obj map[string]any, keys []string) string {
	for _, key := range keys {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			return strings.TrimSpace(t)
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return ""
}
