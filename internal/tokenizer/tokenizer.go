package tokenizer

import (
	"strings"
	"unicode"
)

// Split returns the tokens of line in order.
//
// Whitespace (see isSeparator) outside quotes separates tokens and consecutive whitespace
// never yields empty tokens. A double or single quote outside a quoted
// span opens one that is closed by the same character. Everything in
// between, whitespace included, is copied into the current token and the
// delimiters are dropped. Empty or all-whitespace input yields an empty
// slice.
//
// Example:
//
//	commit "my message"  →  ["commit", "my message"]
//	add "foo             →  ["add", "foo"]
func Split(line string) []string {
	tokens := []string{}
	var current strings.Builder

	// quote is the closing delimiter of the open span, 0 outside quotes.
	var quote rune

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range line {
		switch {
		case quote == 0 && (r == '"' || r == '\''):
			quote = r
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && isSeparator(r):
			flush()
		default:
			current.WriteRune(r)
		}
	}

	// An open span at end of line is closed implicitly.
	flush()
	return tokens
}

// isSeparator reports whether r separates tokens: ASCII control whitespace,
// the information separators U+001C..U+001F and the Unicode space, line
// and paragraph separators. The no-break spaces U+00A0, U+2007 and U+202F
// and NEL (U+0085) are ordinary token characters.
func isSeparator(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f':
		return false
	case '\t', '\n', '\v', '\f', '\r', '\u001c', '\u001d', '\u001e', '\u001f':
		return true
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}
