package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) updateMembers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "m", "enter":
		m.mode = modeRoom
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) viewMembers() string {
	room, ok := m.store.Active()
	if !ok {
		return m.viewRoom()
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")).
		Padding(1, 2).
		Width(48)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Render(fmt.Sprintf("Members — %s", room.Name))

	members := room.Participants()
	var rows []string
	limit := m.height - 8
	if limit < 4 {
		limit = 4
	}
	for i, p := range members {
		if i >= limit {
			rows = append(rows, dimStyle.Render(fmt.Sprintf("… and %d more", len(members)-i)))
			break
		}
		rows = append(rows, fmt.Sprintf("%s  %s", authorStyle.Render(initial(p.Name)), p.Name))
	}
	if len(rows) == 0 {
		rows = append(rows, dimStyle.Render("no members"))
	}

	content := title + "\n\n" + strings.Join(rows, "\n") + "\n\n" +
		dimStyle.Render("Esc: close")

	box := boxStyle.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// initial mirrors the avatar fallback of the exported web view: the first
// rune of the display name.
func initial(name string) string {
	for _, r := range name {
		return string(r)
	}
	return "?"
}
