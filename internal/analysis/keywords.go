// Package analysis scores a résumé against a job description using lexical matching.
//
// Every exported function is pure: results depend only on the arguments and the
// package's read-only tables, so callers may run them from any number of goroutines.
package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minKeywordLength is the shortest token (in runes) kept as a keyword, exclusive.
const minKeywordLength = 2

// stopWords are dropped from keyword sets.
var stopWords = map[string]struct{}{
	"the": {}, "is": {}, "at": {}, "which": {}, "on": {}, "and": {}, "a": {}, "to": {},
	"are": {}, "as": {}, "was": {}, "with": {}, "of": {}, "for": {}, "in": {}, "an": {},
	"by": {}, "be": {}, "or": {}, "will": {}, "have": {}, "has": {}, "had": {}, "can": {},
	"this": {}, "that": {}, "from": {}, "they": {}, "we": {}, "been": {}, "their": {},
	"said": {}, "each": {}, "would": {},
}

// KeywordSet is a de-duplicated list of lowercase keywords in first-seen order.
type KeywordSet []string

// ExtractKeywords tokenizes text into a KeywordSet.
// Punctuation becomes whitespace, tokens of two runes or fewer and stop words are
// dropped, and duplicates keep their first position. No stemming is applied.
func ExtractKeywords(text string) KeywordSet {
	if text == "" {
		return KeywordSet{}
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	fields := strings.Fields(cleaned)
	keywords := make(KeywordSet, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, word := range fields {
		if utf8.RuneCountInString(word) <= minKeywordLength {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}

	return keywords
}

