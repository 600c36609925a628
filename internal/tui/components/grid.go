package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vmunix/cinesearch/internal/search"
	"github.com/vmunix/cinesearch/internal/tui/styles"
	"github.com/vmunix/cinesearch/pkg/omdb"
)

// Layout constants for grid
const (
	// Card width including horizontal padding; the border adds two columns
	CardWidth      = 28
	CardTextWidth  = CardWidth - 2
	CardOuterWidth = CardWidth + 2

	// Title, year/type and poster lines plus the border
	CardHeight = 5

	MinColumns = 1
)

// Grid displays results as cards with a movable cursor
type Grid struct {
	results  []omdb.SearchResult
	filtered []omdb.SearchResult

	cursor  int
	offset  int // first visible row
	columns int // fixed column count, 0 = fit to width

	width  int
	height int

	filterActive bool
	filterInput  textinput.Model
}

// NewGrid creates a new grid; columns of 0 fits the terminal width
func NewGrid(columns int) Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.PlaceholderStyle = styles.DimStyle
	ti.CharLimit = 60

	return Grid{
		columns:     columns,
		filterInput: ti,
	}
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.filterInput.Width = max(width-4, 10)
	g.ensureVisible()
}

// SetResults replaces the displayed results, keeping the selected movie
// under the cursor when it is still present
func (g *Grid) SetResults(results []omdb.SearchResult) {
	var selectedID string
	if sel := g.Selected(); sel != nil {
		selectedID = sel.IMDbID
	}

	g.results = results
	g.applyFilter()

	g.cursor = 0
	for i, r := range g.filtered {
		if r.IMDbID == selectedID {
			g.cursor = i
			break
		}
	}
	g.ensureVisible()
}

// Reset clears results, cursor and filter
func (g *Grid) Reset() {
	g.results = nil
	g.filtered = nil
	g.cursor = 0
	g.offset = 0
	g.StopFilter()
}

// Results returns the displayed (filtered) results
func (g Grid) Results() []omdb.SearchResult {
	return g.filtered
}

// Len returns the number of displayed cards
func (g Grid) Len() int {
	return len(g.filtered)
}

// Cursor returns the index of the selected card
func (g Grid) Cursor() int {
	return g.cursor
}

// Selected returns the movie under the cursor
func (g Grid) Selected() *omdb.SearchResult {
	if g.cursor < 0 || g.cursor >= len(g.filtered) {
		return nil
	}
	r := g.filtered[g.cursor]
	return &r
}

// Columns returns the effective number of columns
func (g Grid) Columns() int {
	if g.columns > 0 {
		return g.columns
	}
	return max(g.width/CardOuterWidth, MinColumns)
}

func (g Grid) visibleRows() int {
	h := g.height
	if g.filterActive || g.FilterQuery() != "" {
		h--
	}
	return max(h/CardHeight, 1)
}

// Move shifts the cursor by dx columns and dy rows, clamped to the grid
func (g *Grid) Move(dx, dy int) {
	if len(g.filtered) == 0 {
		return
	}
	cols := g.Columns()
	next := g.cursor + dx + dy*cols

	// Horizontal moves stay within the row
	if dx != 0 && next/cols != g.cursor/cols {
		return
	}
	if next < 0 || next >= len(g.filtered) {
		if dy > 0 {
			next = len(g.filtered) - 1
		} else {
			return
		}
	}
	g.cursor = next
	g.ensureVisible()
}

// AtEnd reports whether the cursor is on the last row
func (g Grid) AtEnd() bool {
	cols := g.Columns()
	return len(g.filtered) == 0 || g.cursor/cols == (len(g.filtered)-1)/cols
}

func (g *Grid) ensureVisible() {
	cols := g.Columns()
	row := g.cursor / cols
	rows := g.visibleRows()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+rows {
		g.offset = row - rows + 1
	}
	if g.offset < 0 {
		g.offset = 0
	}
}

// StartFilter focuses the filter input
func (g *Grid) StartFilter() tea.Cmd {
	g.filterActive = true
	return g.filterInput.Focus()
}

// StopFilter clears and blurs the filter input
func (g *Grid) StopFilter() {
	g.filterActive = false
	g.filterInput.Blur()
	g.filterInput.SetValue("")
	g.applyFilter()
}

// AcceptFilter blurs the filter input but keeps the query applied
func (g *Grid) AcceptFilter() {
	g.filterActive = false
	g.filterInput.Blur()
}

// Filtering reports whether the filter input has focus
func (g Grid) Filtering() bool {
	return g.filterActive
}

// FilterQuery returns the active local filter
func (g Grid) FilterQuery() string {
	return strings.TrimSpace(g.filterInput.Value())
}

// UpdateFilter forwards a message to the filter input and refilters
func (g *Grid) UpdateFilter(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	g.filterInput, cmd = g.filterInput.Update(msg)
	g.applyFilter()
	g.cursor = 0
	g.offset = 0
	return cmd
}

func (g *Grid) applyFilter() {
	g.filtered = search.Filter(g.results, g.FilterQuery())
	if g.cursor >= len(g.filtered) {
		g.cursor = max(len(g.filtered)-1, 0)
	}
}

// View renders the grid
func (g Grid) View() string {
	var b strings.Builder

	if g.filterActive || g.FilterQuery() != "" {
		b.WriteString(g.filterInput.View())
		b.WriteString("\n")
	}

	if len(g.filtered) == 0 {
		if g.FilterQuery() != "" {
			b.WriteString(styles.DimStyle.Render("No titles match the filter"))
		}
		return b.String()
	}

	cols := g.Columns()
	rows := g.visibleRows()
	start := g.offset * cols
	end := min(start+rows*cols, len(g.filtered))

	var lines []string
	for rowStart := start; rowStart < end; rowStart += cols {
		var cards []string
		for i := rowStart; i < min(rowStart+cols, end); i++ {
			cards = append(cards, renderCard(g.filtered[i], i == g.cursor))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, lines...))

	if end < len(g.filtered) {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("↓ %d more", len(g.filtered)-end)))
	}
	return b.String()
}

func renderCard(r omdb.SearchResult, selected bool) string {
	style := styles.CardStyle
	titleStyle := styles.SubtitleStyle
	if selected {
		style = styles.SelectedCardStyle
		titleStyle = styles.TitleStyle
	}

	poster := styles.DimStyle.Render("no poster")
	if r.HasPoster() {
		poster = styles.SuccessStyle.Render("▣ poster")
	}

	meta := omdb.Value(r.Year, "????")
	if r.Type != "" {
		meta += " · " + r.Type
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(Truncate(r.Title, CardTextWidth)),
		styles.DimStyle.Render(Truncate(meta, CardTextWidth)),
		poster,
	)
	return style.Width(CardWidth).Render(body)
}

// Truncate shortens s to width runes, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
