package common

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars   = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// DeriveSlug turns a display name into a URL-safe slug: lowercase, trim,
// strip everything that is not a word character, space, or hyphen, then
// collapse whitespace runs to single hyphens. The derivation is pure and
// idempotent: DeriveSlug(DeriveSlug(s)) == DeriveSlug(s).
//
// "Joe's Mechanics!!" -> "joes-mechanics"
func DeriveSlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, "-")
	return s
}
