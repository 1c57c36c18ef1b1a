// Package render lays out completion candidate lists for display.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// columnGap separates adjacent columns.
	columnGap = 2
)

var (
	// DirStyle marks directory candidates in listings.
	DirStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// Columns arranges candidates into as many columns as fit in width, in
// row-major order. Directory candidates (trailing slash) are styled; the
// layout itself is computed on the plain text so it stays stable regardless
// of the terminal's color profile.
func Columns(candidates []string, width int) string {
	if len(candidates) == 0 {
		return ""
	}

	colWidth := 0
	for _, c := range candidates {
		if w := lipgloss.Width(c); w > colWidth {
			colWidth = w
		}
	}
	colWidth += columnGap

	cols := width / colWidth
	if cols < 1 {
		cols = 1
	}

	var b strings.Builder
	for i, c := range candidates {
		pad := colWidth - lipgloss.Width(c)
		cell := c
		if strings.HasSuffix(c, "/") {
			cell = DirStyle.Render(c)
		}
		b.WriteString(cell)

		last := i == len(candidates)-1
		endOfRow := (i+1)%cols == 0
		if last || endOfRow {
			b.WriteString("\n")
			continue
		}
		b.WriteString(strings.Repeat(" ", pad))
	}
	return strings.TrimRight(b.String(), "\n")
}
