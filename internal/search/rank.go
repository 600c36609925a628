package search

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/vmunix/cinesearch/pkg/omdb"
)

// SortMode orders displayed results.
type SortMode int

const (
	SortUpstream  SortMode = iota // order returned by the API
	SortRelevance                 // title similarity to the query
	SortYear                      // newest first
	SortTitle                     // alphabetical
)

var sortModeNames = []string{"upstream", "relevance", "year", "title"}

func (m SortMode) String() string {
	if int(m) < 0 || int(m) >= len(sortModeNames) {
		return "unknown"
	}
	return sortModeNames[m]
}

// Next cycles to the following sort mode.
func (m SortMode) Next() SortMode {
	return SortMode((int(m) + 1) % len(sortModeNames))
}

// ParseSortMode parses a mode name as accepted on the command line.
func ParseSortMode(s string) (SortMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortUpstream, nil
	}
	for i, name := range sortModeNames {
		if name == s {
			return SortMode(i), nil
		}
	}
	return SortUpstream, fmt.Errorf("unknown sort mode %q (want one of %s)", s, strings.Join(sortModeNames, ", "))
}

// Similarity scores how closely title matches query, from 0 to 1.
func Similarity(query, title string) float64 {
	q, t := CleanTitle(query), CleanTitle(title)
	if q == "" || t == "" {
		return 0
	}
	return float64(edlib.JaroWinklerSimilarity(q, t))
}

// SortResults returns a sorted copy of results. The sort is stable so
// ties keep upstream order.
func SortResults(results []omdb.SearchResult, mode SortMode, query string) []omdb.SearchResult {
	out := slices.Clone(results)

	switch mode {
	case SortRelevance:
		scores := make(map[string]float64, len(out))
		for _, r := range out {
			scores[r.IMDbID] = Similarity(query, r.Title)
		}
		slices.SortStableFunc(out, func(a, b omdb.SearchResult) int {
			return cmp.Compare(scores[b.IMDbID], scores[a.IMDbID])
		})
	case SortYear:
		slices.SortStableFunc(out, func(a, b omdb.SearchResult) int {
			return cmp.Compare(b.ReleaseYear(), a.ReleaseYear())
		})
	case SortTitle:
		slices.SortStableFunc(out, func(a, b omdb.SearchResult) int {
			return cmp.Compare(CleanTitle(a.Title), CleanTitle(b.Title))
		})
	}
	return out
}

// DidYouMean picks the known title closest to a query that found nothing.
// It reports false when no title is close enough or the query already
// names one exactly.
func DidYouMean(query string, titles []string) (string, bool) {
	query = NormalizeQuery(query)
	if query == "" || len(titles) == 0 {
		return "", false
	}
	for _, t := range titles {
		if strings.EqualFold(t, query) {
			return "", false
		}
	}

	// Subsequence matches first ("btmn" -> "Batman")
	if ranks := fuzzy.RankFindFold(query, titles); len(ranks) > 0 {
		slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
			return cmp.Compare(a.Distance, b.Distance)
		})
		return ranks[0].Target, true
	}

	// Otherwise allow a few typos ("Incepshun" -> "Inception")
	best, bestDist := "", -1
	lq := strings.ToLower(query)
	for _, t := range titles {
		d := fuzzy.LevenshteinDistance(lq, strings.ToLower(t))
		if bestDist < 0 || d < bestDist {
			best, bestDist = t, d
		}
	}
	if bestDist >= 0 && bestDist <= max(2, len(lq)/3) {
		return best, true
	}
	return "", false
}
