package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/cinesearch/pkg/omdb"
)

func titles(results []omdb.SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Title
	}
	return out
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SortMode
		wantErr bool
	}{
		{"", SortUpstream, false},
		{"upstream", SortUpstream, false},
		{"Relevance", SortRelevance, false},
		{" year ", SortYear, false},
		{"title", SortTitle, false},
		{"rating", SortUpstream, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortMode_Next(t *testing.T) {
	assert.Equal(t, SortRelevance, SortUpstream.Next())
	assert.Equal(t, SortUpstream, SortTitle.Next())
	assert.Equal(t, "year", SortYear.String())
	assert.Equal(t, "unknown", SortMode(42).String())
}

func TestSortResults(t *testing.T) {
	results := []omdb.SearchResult{
		{IMDbID: "tt1", Title: "The Matrix", Year: "1999"},
		{IMDbID: "tt2", Title: "Batman Begins", Year: "2005"},
		{IMDbID: "tt3", Title: "Avatar", Year: "2009"},
		{IMDbID: "tt4", Title: "Batman", Year: "1989"},
	}

	t.Run("upstream keeps order", func(t *testing.T) {
		got := SortResults(results, SortUpstream, "batman")
		assert.Equal(t, titles(results), titles(got))
	})

	t.Run("year newest first", func(t *testing.T) {
		got := SortResults(results, SortYear, "")
		assert.Equal(t, []string{"Avatar", "Batman Begins", "The Matrix", "Batman"}, titles(got))
	})

	t.Run("title ignores leading article", func(t *testing.T) {
		got := SortResults(results, SortTitle, "")
		assert.Equal(t, []string{"Avatar", "Batman", "Batman Begins", "The Matrix"}, titles(got))
	})

	t.Run("relevance puts exact match first", func(t *testing.T) {
		got := SortResults(results, SortRelevance, "batman")
		require.Len(t, got, 4)
		assert.Equal(t, "Batman", got[0].Title)
		assert.Equal(t, "Batman Begins", got[1].Title)
	})

	t.Run("input untouched", func(t *testing.T) {
		_ = SortResults(results, SortTitle, "")
		assert.Equal(t, "The Matrix", results[0].Title)
	})
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("The Matrix", "matrix"), 0.001)
	assert.Equal(t, 0.0, Similarity("", "Batman"))
	assert.Greater(t, Similarity("batman", "Batman Begins"), Similarity("batman", "Superman"))
}

func TestDidYouMean(t *testing.T) {
	known := []string{"Inception", "Batman", "The Matrix"}

	tests := []struct {
		name   string
		query  string
		want   string
		wantOK bool
	}{
		{name: "subsequence", query: "btmn", want: "Batman", wantOK: true},
		{name: "typos", query: "Incepshun", want: "Inception", wantOK: true},
		{name: "exact match", query: "batman", wantOK: false},
		{name: "too far", query: "zzzzzzzz", wantOK: false},
		{name: "empty", query: "  ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DidYouMean(tt.query, known)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
