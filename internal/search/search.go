// Package search filters levels by a free-text query with trigram matching,
// so small typos still find the song.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/llehouerou/songbrowser/internal/level"
)

// minCoverage is the fraction of a query word's trigrams that must appear in
// a level for the word to match.
const minCoverage = 0.4

// Matcher holds the precomputed trigrams of a set of levels.
type Matcher struct {
	levels     []level.Level
	normalized []string
	trigrams   []map[string]struct{}
}

// NewMatcher indexes levels by song name, sub name and author.
func NewMatcher(levels []level.Level) *Matcher {
	m := &Matcher{
		levels:     levels,
		normalized: make([]string, len(levels)),
		trigrams:   make([]map[string]struct{}, len(levels)),
	}
	for i, l := range levels {
		text := Normalize(l.DisplayName() + " " + l.AuthorName)
		m.normalized[i] = text
		m.trigrams[i] = trigrams(text)
	}
	return m
}

// Match returns the indexes of the levels matching every word of query, in
// input order. An empty query matches everything.
func (m *Matcher) Match(query string) []int {
	words := strings.Fields(Normalize(query))

	var out []int
	for i := range m.levels {
		if m.matches(i, words) {
			out = append(out, i)
		}
	}
	return out
}

// Filter returns the matching levels, in input order.
func (m *Matcher) Filter(query string) []level.Level {
	idx := m.Match(query)
	out := make([]level.Level, len(idx))
	for i, j := range idx {
		out[i] = m.levels[j]
	}
	return out
}

// Filter is a one-shot NewMatcher(levels).Filter(query).
func Filter(levels []level.Level, query string) []level.Level {
	if strings.TrimSpace(query) == "" {
		return levels
	}
	return NewMatcher(levels).Filter(query)
}

func (m *Matcher) matches(i int, words []string) bool {
	text := m.normalized[i]
	for _, word := range words {
		// Too short for trigrams
		if len([]rune(word)) <= 2 {
			if !strings.Contains(text, word) {
				return false
			}
			continue
		}
		if strings.Contains(text, word) {
			continue
		}
		if coverage(trigrams(word), m.trigrams[i]) < minCoverage {
			return false
		}
	}
	return true
}

// Normalize case-folds s and strips diacritics, so "Café" matches "cafe".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(strings.Join(strings.Fields(stripped), " "))
}

// trigrams returns the set of trigrams of s, padded so prefixes and
// suffixes count.
func trigrams(s string) map[string]struct{} {
	if s == "" {
		return nil
	}
	padded := []rune("  " + s + "  ")
	tris := make(map[string]struct{}, len(padded))
	for i := 0; i+3 <= len(padded); i++ {
		tri := string(padded[i : i+3])
		if strings.TrimSpace(tri) != "" {
			tris[tri] = struct{}{}
		}
	}
	return tris
}

// coverage is |query ∩ item| / |query|. Unlike Jaccard it does not penalize
// short queries against long titles.
func coverage(query, item map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	hits := 0
	for tri := range query {
		if _, ok := item[tri]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}
