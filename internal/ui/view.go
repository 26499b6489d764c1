package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const statusWidth = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	statusStyles = map[Status]lipgloss.Style{
		StatusQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		StatusWorking: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.headline()))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-4, 20)
	for _, r := range m.rows {
		label := statusStyles[r.status].Render(fmt.Sprintf("%*s", statusWidth, r.label()))
		fmt.Fprintf(&b, "  %s %s\n", label, truncate(r.name, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) headline() string {
	h := m.title
	if m.header != "" {
		h += " (" + m.header + ")"
	}
	if m.done {
		return "done: " + h
	}
	return m.spin.View() + " " + h
}

// truncate shortens value to width cells, ending in "..." when there is
// room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
