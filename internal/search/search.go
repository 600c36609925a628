// Package search orchestrates movie searches: suggestion fan-out, paging,
// deduplication, and the session state machine the UI renders.
package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/vmunix/cinesearch/pkg/omdb"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -destination=mocks/mock_api.go -package=mocks . API

// DefaultPageSize is the number of results OMDb returns per page.
const DefaultPageSize = 10

// DefaultSuggestionCount is how many well-known titles are looked up.
const DefaultSuggestionCount = 6

// DefaultSuggestionTitles are the well-known titles shown when no query is active.
var DefaultSuggestionTitles = []string{
	"Batman", "Avengers", "Spider-Man", "Superman", "Iron Man",
	"The Dark Knight", "Inception", "Interstellar", "Joker", "Wonder Woman",
}

// API is the subset of the OMDb client the service depends on.
type API interface {
	SearchMovies(ctx context.Context, query string, page int) (*omdb.SearchResponse, error)
	GetDetails(ctx context.Context, imdbID string) (*omdb.Details, error)
}

// Page is one deduplicated page of search results.
type Page struct {
	Query   string
	Number  int
	Results []omdb.SearchResult
	Total   int
}

// Options configures a Service.
type Options struct {
	PageSize        int
	Titles          []string // well-known titles for suggestion mode
	SuggestionCount int      // how many of Titles to look up
}

// Service runs searches against the API.
type Service struct {
	api      API
	pageSize int
	titles   []string
	log      *slog.Logger
}

// NewService creates a search service. Zero option values take defaults.
func NewService(api API, opts Options, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if len(opts.Titles) == 0 {
		opts.Titles = DefaultSuggestionTitles
	}
	if opts.SuggestionCount <= 0 {
		opts.SuggestionCount = DefaultSuggestionCount
	}
	titles := opts.Titles
	if opts.SuggestionCount < len(titles) {
		titles = titles[:opts.SuggestionCount]
	}
	return &Service{
		api:      api,
		pageSize: opts.PageSize,
		titles:   titles,
		log:      log.With("component", "search"),
	}
}

// PageSize returns the number of results per upstream page.
func (s *Service) PageSize() int {
	return s.pageSize
}

// SuggestionTitles returns the titles looked up in suggestion mode.
func (s *Service) SuggestionTitles() []string {
	return s.titles
}

// Search fetches one page of results for query, with duplicates removed.
func (s *Service) Search(ctx context.Context, query string, page int) (*Page, error) {
	query = NormalizeQuery(query)
	if page < 1 {
		page = 1
	}

	start := time.Now()
	resp, err := s.api.SearchMovies(ctx, query, page)
	if err != nil {
		s.log.Debug("search failed", "query", query, "page", page, "error", err)
		return nil, err
	}

	results := DedupeByKey(resp.Search, omdb.SearchResult.ID)
	s.log.Debug("search returned",
		"query", query,
		"page", page,
		"results", len(results),
		"duplicates", len(resp.Search)-len(results),
		"total", resp.Total(),
		"duration_ms", time.Since(start).Milliseconds())

	return &Page{
		Query:   query,
		Number:  page,
		Results: results,
		Total:   resp.Total(),
	}, nil
}

// Suggestions looks up every suggestion title concurrently and keeps the
// first result of each. Individual failures are logged and skipped; the
// call only fails if ctx is cancelled.
func (s *Service) Suggestions(ctx context.Context) ([]omdb.SearchResult, error) {
	start := time.Now()
	firsts := make([]*omdb.SearchResult, len(s.titles))

	var (
		mu     sync.Mutex
		failed []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(s.titles))

	for i, title := range s.titles {
		g.Go(func() error {
			resp, err := s.api.SearchMovies(gctx, title, 1)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				s.log.Warn("suggestion lookup failed", "title", title, "error", err)
				mu.Lock()
				failed = append(failed, title)
				mu.Unlock()
				return nil
			}
			if len(resp.Search) > 0 {
				first := resp.Search[0]
				firsts[i] = &first
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]omdb.SearchResult, 0, len(firsts))
	for _, r := range firsts {
		if r != nil {
			results = append(results, *r)
		}
	}
	results = DedupeByKey(results, omdb.SearchResult.ID)

	s.log.Debug("suggestions loaded",
		"titles", len(s.titles),
		"results", len(results),
		"failed", strings.Join(failed, ", "),
		"duration_ms", time.Since(start).Milliseconds())

	return results, nil
}

// Details fetches the full record for one IMDb id.
func (s *Service) Details(ctx context.Context, imdbID string) (*omdb.Details, error) {
	details, err := s.api.GetDetails(ctx, imdbID)
	if err != nil {
		s.log.Debug("details failed", "imdb_id", imdbID, "error", err)
		return nil, err
	}
	return details, nil
}
