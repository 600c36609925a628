// Package tui implements the interactive movie search screen.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vmunix/cinesearch/internal/debounce"
	"github.com/vmunix/cinesearch/internal/logging"
	"github.com/vmunix/cinesearch/internal/search"
	"github.com/vmunix/cinesearch/internal/tui/components"
	"github.com/vmunix/cinesearch/internal/tui/styles"
	"github.com/vmunix/cinesearch/pkg/omdb"
)

// Defaults applied to zero Options fields
const (
	DefaultDebounce       = 300 * time.Millisecond
	DefaultRequestTimeout = 30 * time.Second
)

// Vertical chrome: header, search box (3 with border), status, footer, gap
const chromeHeight = 7

// Options configures the screen.
type Options struct {
	Debounce       time.Duration
	GridColumns    int // 0 fits the terminal width
	RequestTimeout time.Duration
}

// Model is the main Bubble Tea model for the application
type Model struct {
	svc     *search.Service
	session *search.Session
	log     *slog.Logger
	keys    KeyMap
	opts    Options

	// Typed queries settle here; the generation lets submit and clear
	// invalidate a value that is already pending
	queries *debounce.Debouncer[queryTickMsg]
	gen     *debounce.Gen

	sortMode search.SortMode
	errOp    search.Op
	hint     string

	searchBox components.SearchBox
	grid      components.Grid
	modal     components.DetailsModal
	spinner   spinner.Model
	help      help.Model

	width  int
	height int
	ready  bool
}

// NewModel creates the screen in suggestion mode.
func NewModel(svc *search.Service, opts Options, log *slog.Logger) Model {
	if log == nil {
		log = logging.Null()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle

	return Model{
		svc:       svc,
		session:   search.NewSession(svc.PageSize()),
		log:       log.With("component", "tui"),
		keys:      DefaultKeyMap(),
		opts:      opts,
		queries:   debounce.New[queryTickMsg](opts.Debounce),
		gen:       &debounce.Gen{},
		searchBox: components.NewSearchBox(),
		grid:      components.NewGrid(opts.GridColumns),
		modal:     components.NewDetailsModal(),
		spinner:   sp,
		help:      help.New(),
	}
}

// Run shows the screen and blocks until the user quits.
func Run(m Model, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(m, opts...)
	defer m.queries.Stop()
	go forwardQueries(m.queries, p)

	_, err := p.Run()
	return err
}

// Init starts the suggestions fan-out
func (m Model) Init() tea.Cmd {
	req := m.session.BeginSuggestions()
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.fetch(req),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case queryTickMsg:
		if !m.gen.Current(msg.Gen) {
			return m, nil
		}
		return m, m.searchIfChanged(msg.Query)

	case suggestionsLoadedMsg:
		if !m.session.ApplySuggestions(msg.Req, msg.Results, msg.Err) {
			m.log.Debug("dropped stale suggestions", "seq", msg.Req.Seq)
			return m, nil
		}
		m.errOp = search.OpSuggestions
		m.hint = ""
		m.refreshGrid()
		return m, nil

	case searchLoadedMsg:
		if !m.session.ApplySearch(msg.Req, msg.Page, msg.Err) {
			m.log.Debug("dropped stale results", "seq", msg.Req.Seq, "query", msg.Req.Query, "page", msg.Req.Page)
			return m, nil
		}
		if msg.Err != nil {
			m.log.Warn("search failed", "query", msg.Req.Query, "page", msg.Req.Page, "error", msg.Err)
		}
		m.errOp = search.OpSearch
		m.refreshGrid()
		m.updateHint()
		return m, nil

	case detailsLoadedMsg:
		if !m.session.ApplyDetails(msg.Req, msg.Details, msg.Err) {
			return m, nil
		}
		if msg.Err != nil {
			m.log.Warn("details failed", "id", msg.Req.IMDbID, "error", msg.Err)
			m.errOp = search.OpDetails
			m.modal.Hide()
			return m, nil
		}
		m.modal.SetDetails(m.session.Details())
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other input housekeeping
	var cmd tea.Cmd
	m.searchBox, cmd, _ = m.searchBox.Update(msg)
	return m, cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch {
	case m.modal.IsVisible():
		return m.handleModalKey(msg)
	case m.grid.Filtering():
		return m.handleFilterKey(msg)
	case m.searchBox.Focused():
		return m.handleSearchKey(msg)
	default:
		return m.handleGridKey(msg)
	}
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Close) {
		m.session.CloseDetails()
		m.modal.Hide()
		return m, nil
	}
	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.grid.StopFilter()
		return m, nil
	case tea.KeyEnter:
		m.grid.AcceptFilter()
		return m, nil
	}
	return m, m.grid.UpdateFilter(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Clear):
		return m, m.clearQuery()

	case key.Matches(msg, m.keys.Submit):
		// Search immediately instead of waiting for the query to settle
		m.gen.Next()
		cmd := m.searchIfChanged(m.searchBox.Value())
		m.searchBox.Blur()
		return m, cmd

	case key.Matches(msg, m.keys.ToGrid):
		m.searchBox.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	var changed bool
	m.searchBox, cmd, changed = m.searchBox.Update(msg)
	if !changed {
		return m, cmd
	}
	m.queries.Set(queryTickMsg{Gen: m.gen.Next(), Query: m.searchBox.Value()})
	return m, cmd
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.grid.Move(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.grid.Move(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.grid.Move(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.grid.Move(1, 0)

	case key.Matches(msg, m.keys.Open):
		sel := m.grid.Selected()
		if sel == nil {
			return m, nil
		}
		req := m.session.BeginDetails(sel.IMDbID)
		m.modal.ShowLoading(sel.Title)
		return m, m.fetch(req)

	case key.Matches(msg, m.keys.LoadMore):
		req, ok := m.session.BeginLoadMore()
		if !ok {
			return m, nil
		}
		return m, m.fetch(req)

	case key.Matches(msg, m.keys.Filter):
		return m, m.grid.StartFilter()

	case key.Matches(msg, m.keys.Sort):
		m.sortMode = m.sortMode.Next()
		m.refreshGrid()

	case key.Matches(msg, m.keys.DismissError):
		m.session.DismissError()

	case key.Matches(msg, m.keys.Clear):
		return m, m.clearQuery()

	case key.Matches(msg, m.keys.ToSearch):
		return m, m.searchBox.Focus()
	}
	return m, nil
}

// clearQuery empties the search box and returns to suggestions
func (m *Model) clearQuery() tea.Cmd {
	m.gen.Next()
	focus := m.searchBox.Focus()
	if m.searchBox.Value() == "" && m.session.Mode() == search.ModeSuggestions {
		return focus
	}
	m.searchBox.SetValue("")
	m.grid.StopFilter()
	return tea.Batch(focus, m.startSearch(""))
}

// searchIfChanged starts a search unless query is already the one shown.
// A failed query is retried.
func (m *Model) searchIfChanged(query string) tea.Cmd {
	query = search.NormalizeQuery(query)
	if query == m.session.Query() && m.session.State() != search.StateError {
		return nil
	}
	return m.startSearch(query)
}

// startSearch issues a first-page search, or suggestions for an empty query
func (m *Model) startSearch(query string) tea.Cmd {
	m.hint = ""
	req := m.session.BeginSearch(query)
	m.refreshGrid()
	return m.fetch(req)
}

func (m *Model) fetch(req search.Request) tea.Cmd {
	m.log.Debug("request issued", "seq", req.Seq, "kind", req.Kind, "query", req.Query, "page", req.Page, "id", req.IMDbID)
	return fetchCmd(m.svc, req, m.opts.RequestTimeout)
}

func (m *Model) refreshGrid() {
	m.grid.SetResults(search.SortResults(m.session.Results(), m.sortMode, m.session.Query()))
}

// updateHint suggests a well-known title after a search found nothing
func (m *Model) updateHint() {
	m.hint = ""
	if m.session.Mode() != search.ModeSearch {
		return
	}
	notFound := m.session.State() == search.StateEmpty ||
		(m.session.State() == search.StateError && omdb.IsNotFound(m.session.Err()))
	if !notFound {
		return
	}
	if title, ok := search.DidYouMean(m.session.Query(), m.svc.SuggestionTitles()); ok {
		m.hint = title
	}
}

func (m *Model) updateLayout() {
	m.searchBox.SetWidth(m.width)
	m.grid.SetSize(m.width, max(m.height-chromeHeight, components.CardHeight))
	m.modal.SetSize(m.width, m.height)
	m.help.Width = m.width
}
