package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vmunix/cinesearch/internal/tui/styles"
)

// SearchBox is the query input at the top of the screen
type SearchBox struct {
	input   textinput.Model
	focused bool
	width   int
}

// NewSearchBox creates a focused search box
func NewSearchBox() SearchBox {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.CharLimit = 100
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.Focus()

	return SearchBox{input: ti, focused: true}
}

// Focus gives the box keyboard focus
func (s *SearchBox) Focus() tea.Cmd {
	s.focused = true
	return s.input.Focus()
}

// Blur removes keyboard focus
func (s *SearchBox) Blur() {
	s.focused = false
	s.input.Blur()
}

// Focused reports whether the box has keyboard focus
func (s SearchBox) Focused() bool {
	return s.focused
}

// Value returns the raw query text
func (s SearchBox) Value() string {
	return s.input.Value()
}

// SetValue replaces the query text
func (s *SearchBox) SetValue(v string) {
	s.input.SetValue(v)
	s.input.CursorEnd()
}

// SetWidth updates the component width
func (s *SearchBox) SetWidth(width int) {
	s.width = width
	s.input.Width = max(width-8, 10)
}

// Update forwards a message to the input. changed reports whether the
// text differs afterwards.
func (s SearchBox) Update(msg tea.Msg) (SearchBox, tea.Cmd, bool) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, s.input.Value() != before
}

// View renders the box
func (s SearchBox) View() string {
	style := styles.SearchBoxStyle
	if s.focused {
		style = styles.FocusedSearchBoxStyle
	}
	if s.width > 4 {
		style = style.Width(s.width - 2)
	}
	return style.Render(s.input.View())
}
