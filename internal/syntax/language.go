// internal/syntax/language.go
package syntax

import (
	"regexp"
	"strings"
)

// Rule pairs an anchored pattern with the token kind it produces.
// Rules are evaluated in declaration order; the first rule whose
// pattern matches at the current scan position wins.
//
// If the pattern contains a capture group, the token covers group 1
// only and scanning resumes after it. This lets a rule use trailing
// context (e.g. an identifier followed by '(') without consuming it.
type Rule struct {
	re   *regexp.Regexp
	kind Kind
}

// NewRule compiles pattern anchored to the scan position.
// Panics on an invalid pattern; rule tables are static configuration,
// so a bad pattern is a programming error caught at startup.
func NewRule(pattern string, kind Kind) Rule {
	return Rule{
		re:   regexp.MustCompile(`\A(?:` + pattern + `)`),
		kind: kind,
	}
}

// Language is an immutable ordered rule table for one language.
// Shared read-only across all artifacts of the same language.
type Language struct {
	// Name is the display name of the language.
	Name string

	// Aliases are lowercase tags that resolve to this language
	// (e.g. "py", "golang").
	Aliases []string

	// Extensions maps file extensions to this language, used as a
	// fallback when an artifact carries no language tag.
	Extensions []string

	rules []Rule
}

// wordAlternation builds a pattern matching any of the given words.
// Words ending in a word character get a trailing \b so that e.g.
// "for" does not match inside "format"; words ending in punctuation
// (Rust macros like "println!") are matched literally.
func wordAlternation(words []string) string {
	alts := make([]string, len(words))
	for i, w := range words {
		p := regexp.QuoteMeta(w)
		if isWordByte(w[len(w)-1]) {
			p += `\b`
		}
		alts[i] = p
	}
	return `(?:` + strings.Join(alts, "|") + `)`
}

func isWordByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
