// -----------------------------------------------------------------------
// Tag Engine - Maps keyword matches in free text to standardized tags
// -----------------------------------------------------------------------

package tagging

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule declares a keyword pattern and the tag it emits. A rule may require
// a positive context pattern (optionally within a word distance) and may be
// vetoed by a forbidden pattern (unconditionally, or within a distance).
type Rule struct {
	pattern string
	tag     string

	context         string
	contextDistance int

	forbidden string
	// forbiddenDistance < 0 rejects on any co-occurrence; >= 0 rejects
	// only when keyword and forbidden text are within that many words.
	forbiddenDistance int
	hasForbidden      bool
}

// NewRule creates a simple pattern -> tag rule. Patterns are compiled
// case-insensitive.
func NewRule(pattern, tag string) Rule {
	return Rule{pattern: pattern, tag: tag, contextDistance: -1, forbiddenDistance: -1}
}

// WithContext requires the context pattern to also match, with some
// keyword occurrence within maxWordDistance words of a context occurrence.
func (r Rule) WithContext(pattern string, maxWordDistance int) Rule {
	r.context = pattern
	r.contextDistance = maxWordDistance
	return r
}

// WithForbidden rejects the rule whenever the forbidden pattern matches.
func (r Rule) WithForbidden(pattern string) Rule {
	r.forbidden = pattern
	r.forbiddenDistance = -1
	r.hasForbidden = true
	return r
}

// WithForbiddenDistance rejects the rule only when a keyword occurrence
// lies within maxWordDistance words of a forbidden occurrence.
func (r Rule) WithForbiddenDistance(pattern string, maxWordDistance int) Rule {
	r.forbidden = pattern
	r.forbiddenDistance = maxWordDistance
	r.hasForbidden = true
	return r
}

type compiledRule struct {
	re  *regexp.Regexp
	tag string

	context         *regexp.Regexp
	contextDistance int

	forbidden         *regexp.Regexp
	forbiddenDistance int
}

// Engine detects tags in free text. Built once at startup and shared
// read-only by every worker; safe for concurrent use.
type Engine struct {
	rules []compiledRule

	// anyPattern is the alternation of every rule pattern, used as a
	// single-pass pre-filter before per-rule confirmation.
	anyPattern *regexp.Regexp
}

// NewEngine compiles the given rules into an engine.
func NewEngine(rules []Rule) (*Engine, error) {
	compiled := make([]compiledRule, 0, len(rules))
	alternates := make([]string, 0, len(rules))

	for _, r := range rules {
		re, err := regexp.Compile("(?i)(?:" + r.pattern + ")")
		if err != nil {
			return nil, fmt.Errorf("invalid keyword pattern %q: %w", r.pattern, err)
		}
		cr := compiledRule{re: re, tag: r.tag, contextDistance: r.contextDistance, forbiddenDistance: r.forbiddenDistance}

		if r.context != "" {
			cr.context, err = regexp.Compile("(?i)(?:" + r.context + ")")
			if err != nil {
				return nil, fmt.Errorf("invalid context pattern %q: %w", r.context, err)
			}
		}
		if r.hasForbidden {
			cr.forbidden, err = regexp.Compile("(?i)(?:" + r.forbidden + ")")
			if err != nil {
				return nil, fmt.Errorf("invalid forbidden pattern %q: %w", r.forbidden, err)
			}
		}

		compiled = append(compiled, cr)
		alternates = append(alternates, "(?:"+r.pattern+")")
	}

	anyPattern, err := regexp.Compile("(?i)" + strings.Join(alternates, "|"))
	if err != nil {
		return nil, fmt.Errorf("failed to assemble multi-pattern matcher: %w", err)
	}

	return &Engine{rules: compiled, anyPattern: anyPattern}, nil
}

// NewDefaultEngine builds the engine from the built-in rule set.
// Panics on an invalid built-in pattern; that is a programming error.
func NewDefaultEngine() *Engine {
	engine, err := NewEngine(DefaultRules())
	if err != nil {
		panic(err)
	}
	return engine
}

// DetectTags returns the set of tags matching the text. The result
// depends only on the text: detection is idempotent and order-independent.
func (e *Engine) DetectTags(text string) []string {
	if text == "" || !e.anyPattern.MatchString(text) {
		return nil
	}

	seen := make(map[string]struct{})
	var tags []string

	for _, rule := range e.rules {
		if !rule.re.MatchString(text) {
			continue
		}

		if rule.context != nil {
			if !rule.context.MatchString(text) {
				continue
			}
			if rule.contextDistance > 0 && !withinWordDistance(text, rule.re, rule.context, rule.contextDistance) {
				continue
			}
		}

		if rule.forbidden != nil && rule.forbidden.MatchString(text) {
			if rule.forbiddenDistance < 0 {
				continue
			}
			if withinWordDistance(text, rule.re, rule.forbidden, rule.forbiddenDistance) {
				continue
			}
		}

		if _, dup := seen[rule.tag]; !dup {
			seen[rule.tag] = struct{}{}
			tags = append(tags, rule.tag)
		}
	}

	return tags
}

// withinWordDistance reports whether any occurrence of a lies within
// maxDist whitespace-separated words of any occurrence of b, measured
// over the substring between the two match starts.
func withinWordDistance(text string, a, b *regexp.Regexp, maxDist int) bool {
	aMatches := a.FindAllStringIndex(text, -1)
	bMatches := b.FindAllStringIndex(text, -1)

	for _, am := range aMatches {
		for _, bm := range bMatches {
			start, end := am[0], bm[0]
			if start > end {
				start, end = end, start
			}
			if len(strings.Fields(text[start:end])) <= maxDist {
				return true
			}
		}
	}
	return false
}
