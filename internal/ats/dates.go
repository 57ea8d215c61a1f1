package ats

import (
	"strconv"
	"time"
)

// epochMillisThreshold separates second from millisecond epochs: values
// above 10^10 cannot be second timestamps for any plausible posting date.
const epochMillisThreshold = 10_000_000_000

// NormalizeDate coerces vendor timestamps to RFC-3339 UTC. Accepted inputs
// are RFC-3339, RFC-2822 and integer epochs in seconds or milliseconds.
// Unparseable values pass through unchanged.
func NormalizeDate(raw string) string {
	if raw == "" {
		return ""
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format(time.RFC3339)
	}

	// RFC 2822, e.g. "Mon, 02 Jan 2006 15:04:05 -0700"
	for _, layout := range []string{time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}

	if ts, err := strconv.ParseInt(raw, 10, 64); err == nil {
		var t time.Time
		if ts > epochMillisThreshold {
			t = time.UnixMilli(ts)
		} else {
			t = time.Unix(ts, 0)
		}
		return t.UTC().Format(time.RFC3339)
	}

	return raw
}
