package ats

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// sanitizer is the shared allowlist policy for job descriptions.
// UGCPolicy keeps formatting tags (headings, lists, links) and strips
// everything executable. Built once; bluemonday policies are safe for
// concurrent use.
var sanitizer = bluemonday.UGCPolicy()

var entityDecoder = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

// CleanHTML sanitizes a vendor description. Payloads sometimes arrive
// double-escaped; common entities are decoded first so the allowlist sees
// real markup instead of literal text.
func CleanHTML(html string) string {
	if html == "" {
		return ""
	}

	if strings.Contains(html, "&lt;") || strings.Contains(html, "&gt;") || strings.Contains(html, "&amp;") {
		html = entityDecoder.Replace(html)
	}

	return sanitizer.Sanitize(html)
}
