// Package text holds the display transforms applied to raw catalog
// strings before they reach a template: repo-style identifiers become
// readable titles, and filter labels get escaped so punctuation-heavy
// tags like "C++" filter literally instead of acting as pattern syntax.
package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// filterReserved is the set of characters with special meaning in the
// filter pattern syntax. It includes '/' because labels end up inside
// slash-delimited patterns on the client side, which regexp.QuoteMeta
// would leave untouched.
const filterReserved = `\.+*?()|[]{}^$/`

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || unicode.IsSpace(r)
}

// FormatTitle turns a repo-style identifier into a display title:
// segments split on '-', '_', or whitespace are capitalized and joined
// with single spaces. "game-of_life" becomes "Game Of Life".
func FormatTitle(s string) string {
	fields := strings.FieldsFunc(s, isSeparator)
	if len(fields) == 0 {
		return ""
	}

	for i, f := range fields {
		r, size := utf8.DecodeRuneInString(f)
		fields[i] = string(unicode.ToUpper(r)) + f[size:]
	}
	return strings.Join(fields, " ")
}

// EscapeFilter backslash-escapes every reserved pattern character in a
// filter label so the label matches and renders as literal text.
func EscapeFilter(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		if r < utf8.RuneSelf && strings.ContainsRune(filterReserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FilterPattern compiles an anchored, case-insensitive pattern that
// matches exactly the given label. The label is escaped first, so
// labels like "C++" are always valid patterns.
func FilterPattern(label string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)^` + EscapeFilter(label) + `$`)
}
