package search

import (
	"github.com/vmunix/cinesearch/pkg/omdb"
)

// State is the phase of a search session.
type State int

const (
	StateSuggestions State = iota // showing well-known titles
	StateSearching                // first page of a query in flight
	StateResults                  // query returned results
	StateEmpty                    // query returned nothing
	StateError                    // last operation failed
)

func (s State) String() string {
	switch s {
	case StateSuggestions:
		return "suggestions"
	case StateSearching:
		return "searching"
	case StateResults:
		return "results"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Mode distinguishes suggestion display from query results.
type Mode int

const (
	ModeSuggestions Mode = iota
	ModeSearch
)

// Kind identifies what a Request fetches.
type Kind int

const (
	KindSuggestions Kind = iota
	KindSearch
	KindDetails
)

// Request describes a fetch issued by a Session. Seq tags it so that a
// response can be matched against the latest request of its kind.
type Request struct {
	Seq    uint64
	Kind   Kind
	Query  string
	Page   int
	IMDbID string
}

// Session holds the state of one search screen. It performs no I/O:
// callers Begin a request, execute it, and Apply the outcome. Responses
// whose sequence is not the latest issued are discarded, so a slow
// earlier response can never overwrite a newer one.
type Session struct {
	pageSize int

	state   State
	mode    Mode
	query   string
	page    int
	total   int
	results []omdb.SearchResult
	loading bool
	err     error
	seq     uint64

	details        *omdb.Details
	detailsLoading bool
	detailSeq      uint64
}

// NewSession creates a session in suggestion mode.
func NewSession(pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Session{
		pageSize: pageSize,
		state:    StateSuggestions,
		mode:     ModeSuggestions,
		page:     1,
	}
}

// BeginSuggestions switches to suggestion mode and issues the fan-out
// request. Results of a previous query are dropped right away.
func (s *Session) BeginSuggestions() Request {
	s.seq++
	s.mode = ModeSuggestions
	s.state = StateSuggestions
	s.query = ""
	s.results = nil
	s.total = 0
	s.page = 1
	s.loading = true
	s.err = nil
	return Request{Seq: s.seq, Kind: KindSuggestions, Page: 1}
}

// BeginSearch issues a first-page search for query. An empty query
// returns to suggestion mode instead.
func (s *Session) BeginSearch(query string) Request {
	query = NormalizeQuery(query)
	if query == "" {
		return s.BeginSuggestions()
	}

	s.seq++
	s.mode = ModeSearch
	s.state = StateSearching
	s.query = query
	s.loading = true
	s.err = nil
	return Request{Seq: s.seq, Kind: KindSearch, Query: query, Page: 1}
}

// BeginLoadMore issues a request for the next page. It reports false when
// not in search mode, while a request is in flight, or when no pages remain.
func (s *Session) BeginLoadMore() (Request, bool) {
	if s.mode != ModeSearch || s.loading || !s.HasMore() {
		return Request{}, false
	}

	s.seq++
	s.loading = true
	s.err = nil
	return Request{Seq: s.seq, Kind: KindSearch, Query: s.query, Page: s.page + 1}, true
}

// ApplySuggestions records the outcome of a suggestions request.
// It reports false if req has been superseded.
func (s *Session) ApplySuggestions(req Request, results []omdb.SearchResult, err error) bool {
	if req.Kind != KindSuggestions || req.Seq != s.seq {
		return false
	}
	s.loading = false

	if err != nil {
		s.err = err
		s.state = StateError
		return true
	}

	s.results = DedupeByKey(results, omdb.SearchResult.ID)
	s.total = len(s.results)
	s.page = 1
	s.state = StateSuggestions
	return true
}

// ApplySearch records the outcome of a search request. A first page
// replaces the accumulated results; later pages are appended and the union
// deduplicated. A failed first page clears results, a failed later page
// keeps them. It reports false if req has been superseded.
func (s *Session) ApplySearch(req Request, page *Page, err error) bool {
	if req.Kind != KindSearch || req.Seq != s.seq {
		return false
	}
	s.loading = false

	if err != nil {
		s.err = err
		s.state = StateError
		if req.Page <= 1 {
			s.results = nil
			s.total = 0
			s.page = 1
		}
		return true
	}

	var fetched []omdb.SearchResult
	if page != nil {
		fetched = page.Results
		s.total = page.Total
	}

	if req.Page <= 1 {
		s.results = DedupeByKey(fetched, omdb.SearchResult.ID)
	} else {
		union := make([]omdb.SearchResult, 0, len(s.results)+len(fetched))
		union = append(union, s.results...)
		union = append(union, fetched...)
		s.results = DedupeByKey(union, omdb.SearchResult.ID)
	}
	s.page = max(req.Page, 1)
	s.state = s.settledState()
	return true
}

// BeginDetails issues a details request for one result.
func (s *Session) BeginDetails(imdbID string) Request {
	s.detailSeq++
	s.detailsLoading = true
	s.err = nil
	if s.state == StateError {
		s.state = s.settledState()
	}
	return Request{Seq: s.detailSeq, Kind: KindDetails, IMDbID: imdbID}
}

// ApplyDetails records the outcome of a details request. Results are
// preserved on failure. It reports false if req has been superseded.
func (s *Session) ApplyDetails(req Request, details *omdb.Details, err error) bool {
	if req.Kind != KindDetails || req.Seq != s.detailSeq {
		return false
	}
	s.detailsLoading = false

	if err != nil {
		s.err = err
		s.state = StateError
		return true
	}
	s.details = details
	return true
}

// CloseDetails hides the detail record and discards any in-flight lookup.
func (s *Session) CloseDetails() {
	s.detailSeq++
	s.details = nil
	s.detailsLoading = false
}

// DismissError clears the current error and restores the state implied
// by the displayed results.
func (s *Session) DismissError() {
	if s.err == nil {
		return
	}
	s.err = nil
	s.state = s.settledState()
}

func (s *Session) settledState() State {
	if s.mode == ModeSuggestions {
		return StateSuggestions
	}
	if s.loading && s.page <= 1 {
		return StateSearching
	}
	if len(s.results) == 0 {
		return StateEmpty
	}
	return StateResults
}

// HasMore reports whether another page can be requested.
func (s *Session) HasMore() bool {
	return s.mode == ModeSearch && omdb.HasMore(s.page, s.pageSize, s.total)
}

// CanLoadMore reports whether BeginLoadMore would issue a request.
func (s *Session) CanLoadMore() bool {
	return !s.loading && s.HasMore()
}

// Results returns the accumulated, deduplicated results.
func (s *Session) Results() []omdb.SearchResult { return s.results }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Query returns the active query, empty in suggestion mode.
func (s *Session) Query() string { return s.query }

// Page returns the last successfully fetched page number.
func (s *Session) Page() int { return s.page }

// PageSize returns the upstream page size.
func (s *Session) PageSize() int { return s.pageSize }

// Total returns the upstream total result count.
func (s *Session) Total() int { return s.total }

// Loading reports whether a suggestions or search request is in flight.
func (s *Session) Loading() bool { return s.loading }

// Err returns the last error, if not dismissed.
func (s *Session) Err() error { return s.err }

// Details returns the open detail record, if any.
func (s *Session) Details() *omdb.Details { return s.details }

// DetailsLoading reports whether a details request is in flight.
func (s *Session) DetailsLoading() bool { return s.detailsLoading }
