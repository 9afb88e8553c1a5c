package target

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var wordRE = regexp.MustCompile(`\w+`)

// Normalize lowercases s (Unicode-aware), trims it, and collapses internal
// whitespace runs to single spaces. Targets and queries share this so match
// keys compare byte-for-byte.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = cases.Lower(language.Und).String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Tokenize returns the \w+ word runs of an already-normalized string.
func Tokenize(s string) []string {
	return wordRE.FindAllString(s, -1)
}

// HasToken reports whether tok appears in tokens.
func HasToken(tokens []string, tok string) bool {
	for _, t := range tokens {
		if t == tok {
			return true
		}
	}
	return false
}
