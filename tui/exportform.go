package tui

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/masahirokokubo0513/chatwork-like-viewer/export"
	"github.com/masahirokokubo0513/chatwork-like-viewer/search"
)

// exportDoneMsg is sent when the workbook write has finished.
type exportDoneMsg struct {
	path string
	err  error
}

func exportCmd(path, term string, matches []search.Match) tea.Cmd {
	return func() tea.Msg {
		err := export.WriteMatches(path, term, matches)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m Model) enterExportForm() (Model, tea.Cmd) {
	name := export.DefaultFileName(m.activeTerm, time.Now())
	m.exportInput.SetValue(filepath.Join(m.cfg.ExportDir, name))
	m.exportInput.Focus()
	m.exportInput.CursorEnd()
	m.mode = modeExport
	return m, nil
}

func (m Model) updateExportForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.exportInput.Blur()
		m.mode = modeSearchResults
		return m, nil

	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		path := m.exportInput.Value()
		if path == "" {
			return m, nil
		}
		m.exportInput.Blur()
		m.mode = modeSearchResults
		m.status = "exporting..."
		m.statusAlert = false

		// export what is on screen: the current grouping's row order
		matches := make([]search.Match, 0, len(m.results))
		for _, row := range m.rows {
			if row.hasMatch {
				matches = append(matches, row.match)
			}
		}
		return m, exportCmd(path, m.activeTerm, matches)
	}

	var cmd tea.Cmd
	m.exportInput, cmd = m.exportInput.Update(msg)
	return m, cmd
}

func (m Model) updateExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = fmt.Sprintf("export failed: %v", msg.err)
		m.statusAlert = true
		m.log.Warn("export failed", zap.String("path", msg.path), zap.Error(msg.err))
	} else {
		m.status = fmt.Sprintf("exported to %s", msg.path)
		m.statusAlert = false
		m.log.Info("exported search results", zap.String("path", msg.path))
	}
	return m, nil
}

func (m Model) viewExportForm() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")).
		Padding(1, 2).
		Width(64)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Render("Export Search Results")

	content := fmt.Sprintf(
		"%s\n\n%s\n%s\n\n%s",
		title,
		dimStyle.Render(fmt.Sprintf("%d matches, %s grouping", len(m.results), m.groupMode)),
		m.exportInput.View(),
		dimStyle.Render("Enter: write .xlsx  Esc: cancel"),
	)

	box := boxStyle.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
