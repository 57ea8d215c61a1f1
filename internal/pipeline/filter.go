package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Filter applies the title keyword gate and the recency cutoff.
type Filter struct {
	positive *regexp.Regexp
	negative *regexp.Regexp

	maxAge    time.Duration
	eoiMaxAge time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

// eoiRe matches the abbreviation as a standalone token so titles merely
// containing the letters, like "Geoinformatics", keep the standard window.
var eoiRe = regexp.MustCompile(`\beoi\b`)

// NewFilter compiles the keyword expressions. maxAgeDays is the default
// recency cutoff; eoiMaxAgeDays applies to expression-of-interest roles,
// which stay open far longer than normal postings.
func NewFilter(positivePattern, negativePattern string, maxAgeDays, eoiMaxAgeDays int) (*Filter, error) {
	positive, err := regexp.Compile(positivePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid keywords regex: %w", err)
	}
	negative, err := regexp.Compile(negativePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid negative keywords regex: %w", err)
	}

	return &Filter{
		positive:  positive,
		negative:  negative,
		maxAge:    time.Duration(maxAgeDays) * 24 * time.Hour,
		eoiMaxAge: time.Duration(eoiMaxAgeDays) * 24 * time.Hour,
		now:       time.Now,
	}, nil
}

// Keep reports whether a job passes the title and recency gates.
// Jobs with empty or unparseable posted timestamps pass the recency gate.
func (f *Filter) Keep(title, posted string) bool {
	if !f.positive.MatchString(title) {
		return false
	}
	if f.negative.MatchString(title) {
		return false
	}

	if posted == "" {
		return true
	}
	instant, err := time.Parse(time.RFC3339, posted)
	if err != nil {
		return true
	}

	cutoff := f.maxAge
	lower := strings.ToLower(title)
	if strings.Contains(lower, "expression of interest") || eoiRe.MatchString(lower) {
		cutoff = f.eoiMaxAge
	}
	return instant.After(f.now().Add(-cutoff))
}
