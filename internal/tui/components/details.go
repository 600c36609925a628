package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vmunix/cinesearch/internal/tui/styles"
	"github.com/vmunix/cinesearch/pkg/omdb"
)

// DetailsModal shows the full record for one movie in a scrollable viewport
type DetailsModal struct {
	viewport viewport.Model
	details  *omdb.Details
	title    string
	loading  bool
	visible  bool
	width    int
	height   int
}

// NewDetailsModal creates a hidden modal
func NewDetailsModal() DetailsModal {
	return DetailsModal{viewport: viewport.New(0, 0)}
}

// ShowLoading opens the modal while the record for title is fetched
func (d *DetailsModal) ShowLoading(title string) {
	d.visible = true
	d.loading = true
	d.details = nil
	d.title = title
	d.viewport.SetContent("")
}

// SetDetails fills the modal with a loaded record
func (d *DetailsModal) SetDetails(details *omdb.Details) {
	d.visible = true
	d.loading = false
	d.details = details
	if details != nil {
		d.title = details.Title
	}
	d.viewport.SetContent(RenderDetails(details, d.contentWidth()))
	d.viewport.GotoTop()
}

// Hide closes the modal
func (d *DetailsModal) Hide() {
	d.visible = false
	d.loading = false
	d.details = nil
}

// IsVisible returns true if the modal is open
func (d DetailsModal) IsVisible() bool {
	return d.visible
}

// Loading reports whether the modal is waiting for its record
func (d DetailsModal) Loading() bool {
	return d.loading
}

// SetSize updates the component dimensions
func (d *DetailsModal) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = d.contentWidth()
	d.viewport.Height = max(height*3/4-4, 5)
	if d.details != nil {
		d.viewport.SetContent(RenderDetails(d.details, d.contentWidth()))
	}
}

func (d DetailsModal) contentWidth() int {
	return max(min(d.width-10, 90), 30)
}

// Update scrolls the viewport
func (d DetailsModal) Update(msg tea.Msg) (DetailsModal, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// View renders the modal
func (d DetailsModal) View(spinner string) string {
	var body string
	if d.loading {
		body = spinner + " " + styles.DimStyle.Render("Loading "+d.title+"...")
	} else {
		body = d.viewport.View()
	}

	footer := styles.DimStyle.Render("j/k scroll · esc/q close")
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, "", footer))
}

// RenderDetails formats a record as labelled lines wrapped to width
func RenderDetails(d *omdb.Details, width int) string {
	if d == nil {
		return ""
	}

	var b strings.Builder
	heading := d.Title
	if y := omdb.Value(d.Year, ""); y != "" {
		heading += " (" + y + ")"
	}
	b.WriteString(styles.ModalTitleStyle.Render(heading))
	b.WriteString("\n")

	meta := []string{omdb.Value(d.Rated, ""), omdb.Value(d.Runtime, ""), omdb.Value(d.Genre, "")}
	b.WriteString(styles.SubtitleStyle.Render(joinNonEmpty(meta, " · ")))
	b.WriteString("\n\n")

	if plot := omdb.Value(d.Plot, ""); plot != "" {
		b.WriteString(lipgloss.NewStyle().Width(width).Render(plot))
		b.WriteString("\n\n")
	}

	fields := []struct{ label, value string }{
		{"Released", d.Released},
		{"Director", d.Director},
		{"Writer", d.Writer},
		{"Actors", d.Actors},
		{"Language", d.Language},
		{"Country", d.Country},
		{"Awards", d.Awards},
		{"IMDb", imdbLine(d)},
		{"Metascore", d.Metascore},
		{"Box office", d.BoxOffice},
		{"Production", d.Production},
		{"Website", d.Website},
		{"Poster", d.Poster},
	}
	valueStyle := lipgloss.NewStyle().Width(max(width-12, 10))
	for _, f := range fields {
		v := omdb.Value(f.value, "")
		if v == "" {
			continue
		}
		label := styles.LabelStyle.Width(12).Render(f.label)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, valueStyle.Render(v)))
		b.WriteString("\n")
	}

	if len(d.Ratings) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.LabelStyle.Render("Ratings"))
		b.WriteString("\n")
		for _, r := range d.Ratings {
			b.WriteString(fmt.Sprintf("  %-26s %s\n", r.Source, r.Value))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func imdbLine(d *omdb.Details) string {
	rating := omdb.Value(d.IMDbRating, "")
	if rating == "" {
		return ""
	}
	if votes := omdb.Value(d.IMDbVotes, ""); votes != "" {
		return fmt.Sprintf("%s/10 (%s votes)", rating, votes)
	}
	return rating + "/10"
}

func joinNonEmpty(parts []string, sep string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
