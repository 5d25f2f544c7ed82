package lexical

import (
	"strings"
	"unicode"
)

const minTokenRunes = 2

// Tokenize lowercases s and returns runs of letters, digits and underscores
// that are at least two runes long and not stop words.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, 24)
	var b strings.Builder
	runes := 0
	flush := func() {
		if runes >= minTokenRunes {
			token := b.String()
			if !IsStopWord(token) {
				out = append(out, token)
			}
		}
		b.Reset()
		runes = 0
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
			runes++
			continue
		}
		flush()
	}
	flush()
	return out
}
