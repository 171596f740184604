// Package analytics computes word frequencies over free-text survey
// answers. Tokenization is Unicode-aware since panel answers arrive in
// Hebrew, Arabic and Cyrillic scripts as well as English.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

type Analytics struct{}

// stopwords are high-frequency function words excluded from keyword counts.
// English plus the Hebrew function words that dominate panel answers.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "because": {}, "but": {}, "by": {},
	"do": {}, "don't": {}, "for": {}, "from": {},
	"had": {}, "has": {}, "have": {}, "he": {}, "her": {}, "his": {},
	"i": {}, "if": {}, "in": {}, "is": {}, "it": {}, "its": {},
	"me": {}, "my": {}, "no": {}, "not": {}, "of": {}, "on": {}, "or": {},
	"she": {}, "so": {}, "that": {}, "the": {}, "they": {}, "this": {},
	"to": {}, "was": {}, "we": {}, "what": {}, "which": {}, "who": {},
	"will": {}, "with": {}, "would": {}, "yes": {}, "you": {},

	"של": {}, "לא": {}, "כן": {}, "זה": {}, "אני": {}, "על": {},
	"את": {}, "הוא": {}, "היא": {}, "יש": {}, "אין": {}, "גם": {},
	"כי": {}, "או": {}, "אם": {}, "מה": {}, "כל": {},
}

// IsStopword reports whether a word is excluded from keyword counts.
func IsStopword(word string) bool {
	_, exists := stopwords[strings.ToLower(word)]
	return exists
}

// WordFrequency counts the non-stopword tokens of one answer text.
func (a *Analytics) WordFrequency(text string) map[string]int {
	words := strings.Fields(strings.ToLower(text))
	frequencies := make(map[string]int)

	for _, word := range words {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if _, exists := stopwords[word]; exists || word == "" {
			continue
		}
		frequencies[word]++
	}

	return frequencies
}

// MergeCounts aggregates per-answer frequency maps into one.
func MergeCounts(intermediate []map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, counts := range intermediate {
		for word, count := range counts {
			merged[word] += count
		}
	}
	return merged
}

// TopKeywords returns the n most frequent words as "word:count" strings,
// ordered by descending count with lexical order breaking ties.
func TopKeywords(wordCounts map[string]int, n int) []string {
	type kv struct {
		Key   string
		Value int
	}

	ss := make([]kv, 0, len(wordCounts))
	for k, v := range wordCounts {
		ss = append(ss, kv{k, v})
	}
	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	keywords := make([]string, limit)
	for i := 0; i < limit; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}
	return keywords
}
