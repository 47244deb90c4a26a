// Package cli renders command line output.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorAccent = lipgloss.Color("#3AA99F")
	colorRed    = lipgloss.Color("#D14D41")

	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	borderStyle = lipgloss.NewStyle().Foreground(colorBorder)
	valueStyle  = lipgloss.NewStyle()
	alertStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// Separator is a row that renders as a horizontal rule.
var Separator = []string{"---"}

// Table is a bordered text table. The first column is left aligned,
// all others are right aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a title in a rounded box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

// Alert renders text that needs attention, e.g. an exceeded budget.
func Alert(s string) string {
	return alertStyle.Render(s)
}

func (t Table) widths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	return widths
}

func rule(b *strings.Builder, widths []int, left, middle, right string) {
	b.WriteString(borderStyle.Render(left))
	for i, w := range widths {
		b.WriteString(borderStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(borderStyle.Render(middle))
		}
	}
	b.WriteString(borderStyle.Render(right))
	b.WriteString("\n")
}

// pad pads a cell to the width. Styled cells are measured by their
// visible width.
func pad(cell string, width int, left bool) string {
	fill := strings.Repeat(" ", max(width-lipgloss.Width(cell), 0))
	if left {
		return fmt.Sprintf(" %s%s ", cell, fill)
	}
	return fmt.Sprintf(" %s%s ", fill, cell)
}

// Render renders the table.
func (t Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := t.widths()
	var b strings.Builder

	if t.Title != "" {
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule(&b, widths, "╭", "┬", "╮")

	b.WriteString(borderStyle.Render("│"))
	for i, h := range t.Headers {
		b.WriteString(headerStyle.Render(pad(h, widths[i], i == 0)))
		b.WriteString(borderStyle.Render("│"))
	}
	b.WriteString("\n")
	rule(&b, widths, "├", "┼", "┤")

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == Separator[0] {
			rule(&b, widths, "├", "┼", "┤")
			continue
		}

		b.WriteString(borderStyle.Render("│"))
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(pad(cell, widths[i], i == 0)))
			b.WriteString(borderStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	rule(&b, widths, "╰", "┴", "╯")

	return b.String()
}
