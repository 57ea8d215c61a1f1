package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTags(t *testing.T) {
	engine := NewDefaultEngine()

	text := "We are looking for a Rust developer who knows Python and Docker. Experience with Next.js is a plus."
	tags := engine.DetectTags(text)

	assert.Contains(t, tags, "Rust")
	assert.Contains(t, tags, "Python")
	assert.Contains(t, tags, "Docker")
	assert.Contains(t, tags, "Next.js")
	assert.Len(t, tags, 4)
}

func TestDetectTagsCaseInsensitive(t *testing.T) {
	engine := NewDefaultEngine()

	tags := engine.DetectTags("react node.js Golang")

	assert.Contains(t, tags, "React")
	assert.Contains(t, tags, "Node.js")
	assert.Contains(t, tags, "Go")
}

func TestDetectTagsWordBoundaries(t *testing.T) {
	engine := NewDefaultEngine()

	tags := engine.DetectTags("I like running fast. reaction.")

	assert.NotContains(t, tags, "React")
}

func TestDetectTagsEmptyText(t *testing.T) {
	engine := NewDefaultEngine()

	assert.Empty(t, engine.DetectTags(""))
	assert.Empty(t, engine.DetectTags("nothing relevant here"))
}

func TestDetectTagsMultidisciplinary(t *testing.T) {
	engine := NewDefaultEngine()

	text := "We need a Product Manager who knows SQL and has experience with Accounting reconciliation and FP&A models."
	tags := engine.DetectTags(text)

	assert.Contains(t, tags, "Product Management")
	assert.Contains(t, tags, "SQL")
	assert.Contains(t, tags, "Accounting")
	assert.Contains(t, tags, "FP&A")
}

func TestDetectTagsGeneral(t *testing.T) {
	engine := NewDefaultEngine()

	tags := engine.DetectTags("Paid internship. LGBTQ+ friendly. Visa sponsorship. Remote work.")

	assert.Contains(t, tags, "Paid")
	assert.Contains(t, tags, "LGBTQ+ Friendly")
	assert.Contains(t, tags, "Visa Sponsorship")
	assert.Contains(t, tags, "Remote")
}

func TestDetectTagsMarketingJargon(t *testing.T) {
	engine := NewDefaultEngine()

	text := "B2B Marketing Specialist with PPC, SEO optimization, and Go-to-Market launch strategies."
	tags := engine.DetectTags(text)

	assert.Contains(t, tags, "B2B")
	assert.Contains(t, tags, "PPC")
	assert.Contains(t, tags, "SEO")
	assert.Contains(t, tags, "Go-to-Market")
}

func TestDetectTagsStrictGoRule(t *testing.T) {
	engine := NewDefaultEngine()

	assert.Contains(t, engine.DetectTags("Looking for a Golang developer"), "Go")
	assert.Contains(t, engine.DetectTags("Must know the Go programming language"), "Go")

	// Keyword and context present but more than five words apart.
	far := "Go to the store to buy some milk and bread and then verify the programming language syntax."
	assert.NotContains(t, engine.DetectTags(far), "Go")

	assert.NotContains(t, engine.DetectTags("We go fast here"), "Go")
}

func TestDetectTagsStrictContextRules(t *testing.T) {
	engine := NewDefaultEngine()

	tests := []struct {
		name    string
		text    string
		tag     string
		matched bool
	}{
		{"b2b company boilerplate", "We are a B2B company focused on excellence.", "B2B", false},
		{"b2b sales role", "Looking for a B2B Sales Associate to drive growth.", "B2B", true},
		{"seo company boilerplate", "Our company specializes in SEO services.", "SEO", false},
		{"seo specialist role", "Hiring an SEO Specialist to improve our rankings.", "SEO", true},
		{"accounting firm boilerplate", "We are a leading Accounting firm.", "Accounting", false},
		{"accounting clerk role", "We need a Staff Accounting Clerk for our finance team.", "Accounting", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := engine.DetectTags(tt.text)
			if tt.matched {
				assert.Contains(t, tags, tt.tag)
			} else {
				assert.NotContains(t, tags, tt.tag)
			}
		})
	}
}

func TestDetectTagsJavaForbiddenContext(t *testing.T) {
	engine := NewDefaultEngine()

	assert.Contains(t, engine.DetectTags("I know Java well."), "Java")

	// "Java Script" split across two words still counts as JavaScript.
	tags := engine.DetectTags("I know Java Script.")
	assert.NotContains(t, tags, "Java")

	// A distant "script" mention does not suppress Java.
	far := "Senior Java developer. You will occasionally review a deployment script for the platform team."
	assert.Contains(t, engine.DetectTags(far), "Java")

	// "JavaScript" as one word never matches the \bjava\b keyword.
	tags = engine.DetectTags("JavaScript developer wanted")
	assert.Contains(t, tags, "JavaScript")
	assert.NotContains(t, tags, "Java")
}

func TestDetectTagsIdempotent(t *testing.T) {
	engine := NewDefaultEngine()

	text := "Remote Rust role with Kubernetes and PostgreSQL. Rust experience required."
	first := engine.DetectTags(text)
	second := engine.DetectTags(text)

	assert.Equal(t, first, second)

	seen := make(map[string]int)
	for _, tag := range first {
		seen[tag]++
	}
	for tag, n := range seen {
		assert.Equal(t, 1, n, "tag %q appears more than once", tag)
	}
}

func TestNewEngineInvalidPattern(t *testing.T) {
	_, err := NewEngine([]Rule{NewRule(`[unclosed`, "Broken")})
	require.Error(t, err)
}

func TestDetectEducation(t *testing.T) {
	text := "Currently studying toward a Bachelor's degree in Computer Science or Informatics."
	degrees, subjects := DetectEducation(text)

	assert.Contains(t, degrees, "Bachelor's")
	assert.Contains(t, subjects, "Computer Science")
	assert.Contains(t, subjects, "Informatics")
}

func TestDetectEducationRequiresGateWord(t *testing.T) {
	// Mentions subjects but never the candidate's education.
	degrees, subjects := DetectEducation("Our law and medicine clients need support.")

	assert.Empty(t, degrees)
	assert.Empty(t, subjects)
}

func TestDetectEducationMultipleLevels(t *testing.T) {
	text := "Graduate students pursuing a Master's or PhD in Mathematics are encouraged to apply."
	degrees, subjects := DetectEducation(text)

	assert.Contains(t, degrees, "Master's")
	assert.Contains(t, degrees, "PhD")
	assert.Contains(t, subjects, "Mathematics")
}
