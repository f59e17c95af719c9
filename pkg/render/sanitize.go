package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	introPolicyOnce sync.Once
	introPolicy     *bluemonday.Policy
)

// SanitizeIntro strips everything but basic inline text markup and links
// from operator supplied intro HTML.
func SanitizeIntro(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(introSanitizer().Sanitize(trimmed))
}

func introSanitizer() *bluemonday.Policy {
	introPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("p", "br", "strong", "em", "b", "i", "small", "span")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("p", "span")
		introPolicy = policy
	})
	return introPolicy
}
