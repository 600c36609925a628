package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/vmunix/cinesearch/internal/tui/components"
	"github.com/vmunix/cinesearch/internal/tui/styles"
	"github.com/vmunix/cinesearch/pkg/omdb"
)

const maxTitleWidth = 48

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResults renders results as a numbered table
func printResults(w io.Writer, results []omdb.SearchResult) {
	rows := make([][]string, len(results))
	for i, r := range results {
		poster := "-"
		if r.HasPoster() {
			poster = "yes"
		}
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			components.Truncate(r.Title, maxTitleWidth),
			omdb.Value(r.Year, "?"),
			r.IMDbID,
			poster,
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.DimStyle).
		Headers("#", "TITLE", "YEAR", "IMDB ID", "POSTER").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.HeaderCellStyle.Padding(0, 1)
			}
			return styles.CellStyle.Padding(0, 1)
		})

	fmt.Fprintln(w, t.Render())
}

// printDetails renders one record as labelled lines
func printDetails(w io.Writer, d *omdb.Details) {
	fmt.Fprintln(w, components.RenderDetails(d, 80))
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
