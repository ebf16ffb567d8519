package domain

import (
	"strings"
	"unicode"
)

// LemmaSearchKey folds an OMW lemma into the form used for lookups: lower
// case, with every run of whitespace or underscores (WordNet's multiword
// joiner) collapsed to a single space and the ends trimmed. The same key is
// stored next to each lemma and computed for each query, so both sides
// always agree regardless of the database collation.
func LemmaSearchKey(lemma string) string {
	words := strings.FieldsFunc(strings.ToLower(lemma), func(r rune) bool {
		return r == '_' || unicode.IsSpace(r)
	})
	return strings.Join(words, " ")
}
