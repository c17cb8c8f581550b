package forms

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips markup from free text. Values without angle brackets
// pass through untouched so ampersands and quotes are not entity-encoded.
func sanitizeText(raw string) string {
	if !strings.ContainsAny(raw, "<>") {
		return raw
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(textPolicy.Sanitize(raw))
}
