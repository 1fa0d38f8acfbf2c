package search

import (
	"slices"
	"strings"

	"github.com/re-minder/lobsterMoneyBot/core"
)

// Match scores, one per tier. A higher tier is strictly harder to
// satisfy, so the first tier that holds is the score.
const (
	ScoreExact       = 100
	ScorePrefix      = 80
	ScoreSubstring   = 60
	ScoreSubsequence = 40
)

// Score rates how well a query matches a stored phrase. Both strings are
// lowercased and trimmed of surrounding whitespace before comparison.
//
// Tiers, evaluated in order:
//
//	100  exact match
//	 80  phrase starts with the query
//	 60  query occurs anywhere inside the phrase
//	 40  every query character appears in the phrase, in order
//	  0  no match (including empty query or phrase)
func Score(query, phrase string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	p := strings.ToLower(strings.TrimSpace(phrase))
	if q == "" || p == "" {
		return 0
	}
	if q == p {
		return ScoreExact
	}
	if strings.HasPrefix(p, q) {
		return ScorePrefix
	}
	if strings.Contains(p, q) {
		return ScoreSubstring
	}
	if isSubsequence(q, p) {
		return ScoreSubsequence
	}
	return 0
}

// isSubsequence reports whether every rune of needle appears in haystack
// in order. Greedy left-to-right scan: each needed rune consumes the
// first remaining occurrence before the search continues.
func isSubsequence(needle, haystack string) bool {
	hs := []rune(haystack)
	i := 0
	for _, ch := range needle {
		for i < len(hs) && hs[i] != ch {
			i++
		}
		if i == len(hs) {
			return false
		}
		i++
	}
	return true
}

// Match filters and ranks candidates against the query, returning at most
// limit results, best first. Candidates scoring 0 are excluded. Pure:
// identical inputs always produce identical output.
func Match(query string, candidates []*core.MappingRecord, limit int) []*core.SearchResult {
	results := make([]*core.SearchResult, 0, len(candidates))
	for _, record := range candidates {
		if record == nil {
			continue
		}
		if score := Score(query, record.Phrase); score > 0 {
			results = append(results, &core.SearchResult{Record: record, Score: score})
		}
	}
	return rankAndTruncate(results, limit)
}

// rankAndTruncate sorts results by score descending, CreatedAt descending,
// then ID descending, and truncates to limit. A non-positive limit yields
// an empty result.
func rankAndTruncate(results []*core.SearchResult, limit int) []*core.SearchResult {
	slices.SortFunc(results, compareResults)
	if limit < 0 {
		limit = 0
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// compareResults defines the total result order: score descending, then
// CreatedAt descending, then ID descending as the final deterministic
// tie-break for equal timestamps.
func compareResults(a, b *core.SearchResult) int {
	if a.Score != b.Score {
		if a.Score > b.Score {
			return -1
		}
		return 1
	}
	if !a.Record.CreatedAt.Equal(b.Record.CreatedAt) {
		if a.Record.CreatedAt.After(b.Record.CreatedAt) {
			return -1
		}
		return 1
	}
	if a.Record.Id != b.Record.Id {
		if a.Record.Id > b.Record.Id {
			return -1
		}
		return 1
	}
	return 0
}
