package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// bodyPolicy is an allowlist. Elements, attributes and URL schemes it does
// not name are dropped.
var bodyPolicy = newBodyPolicy()

func newBodyPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("article", "section", "div", "span", "figure", "figcaption")
	return p
}

// SanitizeBody reduces a node body to allowlisted markup before it is bound
// into the template as trusted HTML.
func SanitizeBody(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	return bodyPolicy.Sanitize(html)
}
