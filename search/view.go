package search

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	listStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#CBD5E1")).
			Padding(0, 1)

	symbolStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0F172A"))
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
	exchangeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#E2E8F0"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

const maxNameWidth = 32

// View renders the input box and, when open, the suggestion list
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	if m.state == Fetching {
		b.WriteString(" ")
		b.WriteString(m.spinner.View())
		b.WriteString(hintStyle.Render(" searching…"))
	}

	if !m.open || len(m.results) == 0 {
		return b.String()
	}

	rows := make([]string, 0, len(m.results))
	for i, r := range m.results {
		name := r.Name
		if len([]rune(name)) > maxNameWidth {
			name = string([]rune(name)[:maxNameWidth-1]) + "…"
		}
		row := symbolStyle.Render(r.Symbol) + "  " + nameStyle.Render(name)
		if r.Exchange != "" {
			row += "  " + exchangeStyle.Render(r.Exchange)
		}
		if i == m.cursor {
			row = cursorStyle.Render(row)
		}
		rows = append(rows, row)
	}
	b.WriteString("\n")
	b.WriteString(listStyle.Render(strings.Join(rows, "\n")))
	return b.String()
}
