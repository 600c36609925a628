package search

import (
	"strings"

	sfuzzy "github.com/sahilm/fuzzy"
	"github.com/vmunix/cinesearch/pkg/omdb"
)

// Filter narrows displayed results to titles fuzzily matching query,
// best matches first. An empty query returns results unchanged.
func Filter(results []omdb.SearchResult, query string) []omdb.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return results
	}

	lowerTitles := make([]string, len(results))
	for i, r := range results {
		lowerTitles[i] = strings.ToLower(r.Title)
	}

	matches := sfuzzy.Find(strings.ToLower(query), lowerTitles)

	out := make([]omdb.SearchResult, len(matches))
	for i, m := range matches {
		out[i] = results[m.Index]
	}
	return out
}
