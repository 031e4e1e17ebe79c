package retriever

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// stopWords are common function words plus a few domain-agnostic query
// words that carry no retrieval signal.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "of": {}, "to": {},
	"for": {}, "in": {}, "on": {}, "at": {}, "with": {}, "do": {},
	"does": {}, "did": {}, "have": {}, "has": {}, "is": {}, "are": {},
	"was": {}, "be": {}, "by": {}, "from": {}, "it": {}, "this": {},
	"that": {}, "what": {}, "how": {}, "can": {}, "will": {}, "would": {},
	"i": {}, "we": {}, "you": {}, "they": {}, "our": {}, "your": {},
	"us": {}, "me": {}, "about": {}, "please": {}, "tell": {}, "know": {},
}

// Normalize lowercases the input, replaces every rune that is not a letter
// or digit with a space, collapses whitespace runs, and trims. Total and
// idempotent: empty input yields empty output.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normalizes and splits the input, discarding stop-words and
// single-rune tokens. Order and repetition of surviving tokens are
// preserved; term-frequency counting needs the repeats.
func Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := make([]string, 0, len(fields))
	for _, word := range fields {
		if utf8.RuneCountInString(word) <= 1 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
