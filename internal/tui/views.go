package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vmunix/cinesearch/internal/search"
	"github.com/vmunix/cinesearch/internal/tui/styles"
)

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	body := m.grid.View()
	if m.grid.Len() == 0 && m.grid.FilterQuery() == "" {
		body = m.renderEmpty()
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.searchBox.View(),
		m.renderStatus(),
		body,
	)

	// Pin the footer to the bottom line
	gap := m.height - lipgloss.Height(view) - 1
	if gap > 0 {
		view += strings.Repeat("\n", gap)
	}
	view += "\n" + m.renderFooter()

	if m.modal.IsVisible() {
		view = lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.modal.View(m.spinner.View()))
	}

	return view
}

// renderHeader renders the title and mode line
func (m Model) renderHeader() string {
	title := styles.AccentStyle.Bold(true).Render("cinesearch")

	var mode string
	if m.session.Mode() == search.ModeSuggestions {
		mode = "Popular movies"
	} else {
		mode = fmt.Sprintf("Results for %q: %d of %d", m.session.Query(), len(m.session.Results()), m.session.Total())
	}
	if m.sortMode != search.SortUpstream {
		mode += styles.DimStyle.Render(" · sorted by " + m.sortMode.String())
	}
	return title + "  " + styles.SubtitleStyle.Render(mode)
}

// renderStatus renders loading, error and hint information
func (m Model) renderStatus() string {
	var parts []string

	if m.session.Loading() {
		parts = append(parts, m.spinner.View()+" "+styles.DimStyle.Render(m.loadingText()))
	}

	if err := m.session.Err(); err != nil {
		msg := styles.ErrorStyle.Render(search.Describe(err, m.errOp))
		parts = append(parts, msg+styles.DimStyle.Render("  (x to dismiss)"))
	}

	if m.hint != "" {
		parts = append(parts, styles.HintStyle.Render(fmt.Sprintf("Did you mean %q?", m.hint)))
	}

	if !m.session.Loading() && m.session.CanLoadMore() {
		parts = append(parts, styles.DimStyle.Render("m to load more"))
	}

	if m.grid.FilterQuery() != "" {
		parts = append(parts, styles.DimStyle.Render(fmt.Sprintf("%d shown", m.grid.Len())))
	}

	return strings.Join(parts, "   ")
}

func (m Model) loadingText() string {
	switch {
	case m.session.Mode() == search.ModeSuggestions:
		return "Loading suggestions..."
	case m.session.State() == search.StateSearching:
		return "Searching..."
	default:
		return "Loading more..."
	}
}

// renderEmpty renders the placeholder shown when there are no cards
func (m Model) renderEmpty() string {
	switch m.session.State() {
	case search.StateEmpty:
		return styles.DimStyle.Render(fmt.Sprintf("No movies found for %q", m.session.Query()))
	case search.StateSearching:
		return ""
	case search.StateError:
		return ""
	}
	if m.session.Loading() {
		return ""
	}
	return styles.DimStyle.Render("Start typing to search")
}

// renderFooter renders the key help line
func (m Model) renderFooter() string {
	if m.searchBox.Focused() {
		return m.help.ShortHelpView(m.keys.InputHelp())
	}
	return m.help.ShortHelpView(m.keys.GridHelp())
}
