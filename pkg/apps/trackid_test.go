package apps_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/appshelf/appshelf/pkg/apps"
)

func TestNormalizeTrackID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain digits", in: "284882215", want: "284882215"},
		{name: "float artifact", in: "123.0", want: "123"},
		{name: "surrounding junk", in: " id: 45 ", want: "45"},
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "   ", want: ""},
		{name: "no digits", in: "abc", want: ""},
		{name: "mixed digits and letters", in: "id284882215", want: "284882215"},
		{name: "float artifact with spaces", in: " 6448311069.0 ", want: "6448311069"},
		{name: "decimal that is not an artifact", in: "1.50", want: "150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apps.NormalizeTrackID(tt.in))
		})
	}
}

func TestNormalizeTrackIDIdempotent(t *testing.T) {
	inputs := []string{"123.0", " id: 45 ", "abc", "", "999"}
	for _, in := range inputs {
		once := apps.NormalizeTrackID(in)
		assert.Equal(t, once, apps.NormalizeTrackID(once), "normalize(normalize(%q))", in)
	}
}

func TestContentKey(t *testing.T) {
	tests := []struct {
		name     string
		googleID string
		appleID  string
		want     string
	}{
		{name: "google id wins", googleID: "com.foo", appleID: "999", want: "com.foo"},
		{name: "apple fallback", googleID: "", appleID: "999", want: "apple_999"},
		{name: "apple fallback normalizes", googleID: "", appleID: " 999.0 ", want: "apple_999"},
		{name: "sentinel", googleID: "", appleID: "", want: apps.UnknownKey},
		{name: "sentinel for garbage apple id", googleID: "", appleID: "notanumber", want: apps.UnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apps.ContentKey(tt.googleID, tt.appleID))
		})
	}
}

func TestEntryIsEmpty(t *testing.T) {
	assert.True(t, apps.Entry{}.IsEmpty())
	assert.False(t, apps.Entry{GoogleID: "com.foo"}.IsEmpty())
	assert.False(t, apps.Entry{AppleID: "999"}.IsEmpty())
}
