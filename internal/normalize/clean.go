package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlPattern   = regexp.MustCompile(`http\S+|www\S+`)
	emailPattern = regexp.MustCompile(`\S+@\S+`)
	// Everything except word characters, whitespace and light punctuation.
	charPattern  = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?-]`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// clean canonicalizes raw text: lowercases, strips URLs and email-like
// substrings, drops stray symbols, and collapses whitespace.
func clean(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	text = charPattern.ReplaceAllString(text, "")
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// tokenize splits cleaned text into word tokens on non-alphanumeric
// boundaries, so trailing punctuation never sticks to a token.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
