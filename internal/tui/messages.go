package tui

import (
	"github.com/vmunix/cinesearch/internal/search"
	"github.com/vmunix/cinesearch/pkg/omdb"
)

// Message types for the TUI. Every response carries the Request it
// answers so the session can drop superseded ones.

// queryTickMsg carries a typed query once the debounce window closes
type queryTickMsg struct {
	Gen   uint64
	Query string
}

// suggestionsLoadedMsg carries the well-known titles fan-out
type suggestionsLoadedMsg struct {
	Req     search.Request
	Results []omdb.SearchResult
	Err     error
}

// searchLoadedMsg carries one page of query results
type searchLoadedMsg struct {
	Req  search.Request
	Page *search.Page
	Err  error
}

// detailsLoadedMsg carries a full record for the modal
type detailsLoadedMsg struct {
	Req     search.Request
	Details *omdb.Details
	Err     error
}
