// Package omdb provides a client for the OMDb movie metadata API.
package omdb

import (
	"strconv"
	"strings"
)

// notAvailable is the placeholder OMDb uses for missing fields.
const notAvailable = "N/A"

// SearchResult is one entry of a title search.
type SearchResult struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"` // "2005" or "2005–2008" for series
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"` // movie, series, episode
	Poster string `json:"Poster"`
}

// ID returns the external identifier used for deduplication.
func (r SearchResult) ID() string {
	return r.IMDbID
}

// HasPoster reports whether a poster URL is available.
func (r SearchResult) HasPoster() bool {
	return hasValue(r.Poster)
}

// ReleaseYear extracts the first year, or 0 if none can be parsed.
func (r SearchResult) ReleaseYear() int {
	return parseYear(r.Year)
}

// SearchResponse is the payload of a title search.
type SearchResponse struct {
	Search       []SearchResult `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error,omitempty"`
}

// Total parses totalResults, returning 0 when it is missing or malformed.
func (r *SearchResponse) Total() int {
	n, err := strconv.Atoi(strings.TrimSpace(r.TotalResults))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// HasMore reports whether pages beyond page remain for the given page size.
func (r *SearchResponse) HasMore(page, pageSize int) bool {
	return HasMore(page, pageSize, r.Total())
}

// HasMore reports whether page*pageSize is still below total.
func HasMore(page, pageSize, total int) bool {
	if pageSize <= 0 {
		return false
	}
	return page*pageSize < total
}

// Rating is a score from a single source (IMDb, Rotten Tomatoes, Metacritic).
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// Details is the full record returned by an id lookup.
type Details struct {
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Rated      string   `json:"Rated"`
	Released   string   `json:"Released"`
	Runtime    string   `json:"Runtime"`
	Genre      string   `json:"Genre"`
	Director   string   `json:"Director"`
	Writer     string   `json:"Writer"`
	Actors     string   `json:"Actors"`
	Plot       string   `json:"Plot"`
	Language   string   `json:"Language"`
	Country    string   `json:"Country"`
	Awards     string   `json:"Awards"`
	Poster     string   `json:"Poster"`
	Ratings    []Rating `json:"Ratings"`
	Metascore  string   `json:"Metascore"`
	IMDbRating string   `json:"imdbRating"`
	IMDbVotes  string   `json:"imdbVotes"`
	IMDbID     string   `json:"imdbID"`
	Type       string   `json:"Type"`
	DVD        string   `json:"DVD,omitempty"`
	BoxOffice  string   `json:"BoxOffice,omitempty"`
	Production string   `json:"Production,omitempty"`
	Website    string   `json:"Website,omitempty"`
	Response   string   `json:"Response"`
	Error      string   `json:"Error,omitempty"`
}

// HasPoster reports whether a poster URL is available.
func (d *Details) HasPoster() bool {
	return hasValue(d.Poster)
}

// HasAwards reports whether the record lists any awards.
func (d *Details) HasAwards() bool {
	return hasValue(d.Awards)
}

// Genres splits the comma separated genre list.
func (d *Details) Genres() []string {
	return splitList(d.Genre)
}

// Cast splits the comma separated actor list.
func (d *Details) Cast() []string {
	return splitList(d.Actors)
}

// Value returns v unless it is empty or "N/A", in which case fallback is returned.
func Value(v, fallback string) string {
	if !hasValue(v) {
		return fallback
	}
	return v
}

func hasValue(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != notAvailable
}

func splitList(s string) []string {
	if !hasValue(s) {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseYear(s string) int {
	if len(s) < 4 {
		return 0
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0
	}
	return year
}
