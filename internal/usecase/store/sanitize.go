package store

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	domstore "github.com/modestbazar/storefront/internal/domain/store"
)

// descriptionPolicy strips every tag; store pages render descriptions as text.
var descriptionPolicy = bluemonday.StrictPolicy()

// plainText removes markup from owner-written text and unescapes the
// entities the policy leaves behind.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(descriptionPolicy.Sanitize(s)))
}

// sanitizePatch returns a copy of p with free-text fields reduced to plain text.
func sanitizePatch(p domstore.Patch) domstore.Patch {
	if p.Description != nil {
		clean := plainText(*p.Description)
		p.Description = &clean
	}
	return p
}
