// internal/syntax/tokenizer.go
package syntax

import "unicode/utf8"

// TokenizeLine scans one line and returns its styled spans.
//
// The scan is left to right: at each position the language's rules are
// tried in declaration order and the first one matching exactly at that
// position wins (earliest-declared, not longest-match). Positions no
// rule matches are folded into Text tokens, so the returned tokens are
// contiguous, non-overlapping, and together cover the whole line.
//
// Tokenization is strictly line-local; no state carries across lines.
// Multi-line constructs (block comments, multi-line strings) therefore
// highlight incorrectly past their first line. See DESIGN.md.
//
// A nil language yields a single Text token spanning the line.
func TokenizeLine(line string, lang *Language) []Token {
	if line == "" {
		return nil
	}
	if lang == nil || len(lang.rules) == 0 {
		return []Token{{Start: 0, End: len(line), Kind: KindText}}
	}

	var tokens []Token
	textStart := -1 // Start of a pending Text token, -1 if none

	flushText := func(end int) {
		if textStart >= 0 {
			tokens = append(tokens, Token{Start: textStart, End: end, Kind: KindText})
			textStart = -1
		}
	}

	pos := 0
	for pos < len(line) {
		matched := false
		for _, rule := range lang.rules {
			loc := rule.re.FindStringSubmatchIndex(line[pos:])
			if loc == nil {
				continue
			}
			start, end := loc[0], loc[1]
			if len(loc) >= 4 && loc[2] >= 0 {
				// Capture group present: token covers the group, the
				// trailing context is rescanned.
				start, end = loc[2], loc[3]
			}
			if end == 0 {
				continue // Zero-width match cannot advance the scan
			}
			if start > 0 && textStart < 0 {
				textStart = pos // Uncaptured prefix stays Text
			}
			flushText(pos + start)
			tokens = append(tokens, Token{
				Start: pos + start,
				End:   pos + end,
				Kind:  rule.kind,
			})
			pos += end
			matched = true
			break
		}
		if !matched {
			// Grow the pending Text token by one rune and retry.
			if textStart < 0 {
				textStart = pos
			}
			_, size := utf8.DecodeRuneInString(line[pos:])
			pos += size
		}
	}
	flushText(len(line))

	return tokens
}
