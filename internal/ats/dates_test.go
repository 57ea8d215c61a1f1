package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"rfc3339 utc", "2026-07-15T10:00:00Z", "2026-07-15T10:00:00Z"},
		{"rfc3339 offset", "2026-08-01T12:00:00+02:00", "2026-08-01T10:00:00Z"},
		{"rfc2822 numeric zone", "Mon, 02 Jan 2006 15:04:05 -0700", "2006-01-02T22:04:05Z"},
		{"rfc2822 named zone", "Mon, 02 Jan 2006 15:04:05 UTC", "2006-01-02T15:04:05Z"},
		{"epoch seconds", "1700000000", "2023-11-14T22:13:20Z"},
		{"epoch milliseconds", "1700000000000", "2023-11-14T22:13:20Z"},
		{"garbage passes through", "sometime next week", "sometime next week"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.raw))
		})
	}
}
