package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	focusStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// table renders rows as aligned columns. The first row is the header.
type table struct {
	rows [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) write(w io.Writer) error {
	if len(t.rows) == 0 {
		return nil
	}
	widths := make([]int, len(t.rows[0]))
	for _, row := range t.rows {
		for i, c := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}

	var b strings.Builder
	for r, row := range t.rows {
		for i, c := range row {
			if i >= len(widths) {
				break
			}
			style := cellStyle.Width(widths[i] + cellStyle.GetPaddingRight())
			if i == len(widths)-1 {
				style = lipgloss.NewStyle()
			}
			if r == 0 {
				style = style.Inherit(headerStyle)
			}
			b.WriteString(style.Render(c))
		}
		b.WriteString("\n")
	}
	_, err := fmt.Fprint(w, b.String())
	return err
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return dimStyle.Render("no")
}
