package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/appshelf/appshelf/pkg/reconcile"
)

func TestNormalizeReleaseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "rfc3339 truncated", in: "2024-01-05T10:00:00Z", want: "2024-01-05"},
		{name: "already iso", in: "2024-01-05", want: "2024-01-05"},
		{name: "play store format", in: "Jan 5, 2024", want: "2024-01-05"},
		{name: "play store double digit day", in: "Dec 31, 2019", want: "2019-12-31"},
		{name: "garbled passes through", in: "garbled", want: "garbled"},
		{name: "garbled with separator passes through", in: "not-a-dateTstill-not", want: "not-a-dateTstill-not"},
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reconcile.NormalizeReleaseDate(tt.in))
		})
	}
}
