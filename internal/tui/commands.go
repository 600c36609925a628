package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vmunix/cinesearch/internal/debounce"
	"github.com/vmunix/cinesearch/internal/search"
)

// Command factories for async operations

// forwardQueries feeds settled queries into p until the debouncer stops
func forwardQueries(d *debounce.Debouncer[queryTickMsg], p *tea.Program) {
	for msg := range d.C() {
		p.Send(msg)
	}
}

// fetchCmd executes req against the service
func fetchCmd(svc *search.Service, req search.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		switch req.Kind {
		case search.KindSuggestions:
			results, err := svc.Suggestions(ctx)
			return suggestionsLoadedMsg{Req: req, Results: results, Err: search.Classify(err)}
		case search.KindDetails:
			details, err := svc.Details(ctx, req.IMDbID)
			return detailsLoadedMsg{Req: req, Details: details, Err: search.Classify(err)}
		default:
			page, err := svc.Search(ctx, req.Query, req.Page)
			return searchLoadedMsg{Req: req, Page: page, Err: search.Classify(err)}
		}
	}
}
