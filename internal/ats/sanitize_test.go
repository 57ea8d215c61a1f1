package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanHTMLStripsScripts(t *testing.T) {
	out := CleanHTML(`<p>Hello <script>alert(1)</script>world</p>`)
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "world")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "alert")
}

func TestCleanHTMLKeepsFormatting(t *testing.T) {
	out := CleanHTML(`<h3>Requirements</h3><ul><li>Go</li></ul>`)
	assert.Contains(t, out, "<h3>Requirements</h3>")
	assert.Contains(t, out, "<li>Go</li>")
}

func TestCleanHTMLDecodesDoubleEscapedMarkup(t *testing.T) {
	out := CleanHTML(`&lt;p&gt;We use &lt;b&gt;Kubernetes&lt;/b&gt;&lt;/p&gt;`)
	assert.Contains(t, out, "<b>Kubernetes</b>")
	assert.NotContains(t, out, "&lt;")
}

func TestCleanHTMLDecodedScriptStillStripped(t *testing.T) {
	out := CleanHTML(`&lt;script&gt;steal()&lt;/script&gt;Join us`)
	assert.Contains(t, out, "Join us")
	assert.NotContains(t, out, "steal")
}

func TestCleanHTMLEmpty(t *testing.T) {
	assert.Empty(t, CleanHTML(""))
}
