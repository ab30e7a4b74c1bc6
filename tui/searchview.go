package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/masahirokokubo0513/chatwork-like-viewer/search"
)

// resultRow is one line of the grouped result listing. Header and separator
// rows are not selectable.
type resultRow struct {
	text     string
	match    search.Match
	hasMatch bool
}

func (m Model) enterSearch(returnTo mode) (Model, tea.Cmd) {
	m.searchReturn = returnTo
	m.searchInput.Focus()
	m.searchInput.CursorEnd()
	m.mode = modeSearch
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.Blur()
		m.mode = m.searchReturn
		return m, nil

	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "ctrl+l":
		// clear both the draft and the committed term
		m.searchInput.SetValue("")
		m.activeTerm = ""
		m.results = nil
		m.rows = nil
		return m, nil

	case "enter":
		// the term only takes effect on this explicit commit
		m.activeTerm = m.searchInput.Value()
		m.searchInput.Blur()
		m.refreshResults()
		m.searchCursor = m.firstSelectable()
		m.searchOffset = 0
		m.clampSearchOffset()
		m.mode = modeSearchResults
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) updateSearchResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = m.searchReturn
		return m, nil

	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "/":
		m.searchInput.Focus()
		m.searchInput.CursorEnd()
		m.mode = modeSearch
		return m, nil

	case "tab":
		m.groupMode = m.groupMode.Next()
		m.rebuildRows()
		m.searchCursor = m.firstSelectable()
		m.searchOffset = 0
		m.clampSearchOffset()
		return m, nil

	case "up", "k":
		m.moveSearchCursor(-1)
	case "down", "j":
		m.moveSearchCursor(1)
	case "pgup":
		for i := 0; i < m.searchVisibleRows(); i++ {
			m.moveSearchCursor(-1)
		}
	case "pgdown":
		for i := 0; i < m.searchVisibleRows(); i++ {
			m.moveSearchCursor(1)
		}
	case "home", "g":
		m.searchCursor = m.firstSelectable()
		m.clampSearchOffset()
	case "end", "G":
		m.searchCursor = m.lastSelectable()
		m.clampSearchOffset()

	case "e":
		if len(m.results) > 0 {
			return m.enterExportForm()
		}

	case "enter":
		if m.searchCursor >= 0 && m.searchCursor < len(m.rows) {
			row := m.rows[m.searchCursor]
			if row.hasMatch {
				return m.selectMessage(row.match)
			}
		}
	}

	return m, nil
}

// refreshResults recomputes the committed search over the current rooms and
// rebuilds the grouped rows. Called on commit and whenever the room set
// changes under an active term.
func (m *Model) refreshResults() {
	m.results = search.AllRooms(m.store.Rooms(), m.activeTerm)
	m.rebuildRows()
	if m.searchCursor >= len(m.rows) {
		m.searchCursor = m.firstSelectable()
	}
	m.clampSearchOffset()
}

func (m *Model) rebuildRows() {
	m.rows = nil
	width := m.width - 4
	if width < 40 {
		width = 40
	}

	switch m.groupMode {
	case search.GroupByRoomMode:
		for _, sec := range search.GroupByRoom(m.store.Rooms(), m.results) {
			m.rows = append(m.rows, resultRow{
				text: sectionStyle.Render(fmt.Sprintf("%s (%d)", sec.Title, len(sec.Matches))),
			})
			for _, match := range sec.Matches {
				m.rows = append(m.rows, matchRow(match, false, width))
			}
			m.rows = append(m.rows, resultRow{})
		}

	case search.GroupByTimeMode:
		for _, match := range search.GroupByTime(m.results, m.cfg.DatetimeLayout) {
			m.rows = append(m.rows, matchRow(match, true, width))
		}

	case search.GroupByParticipantMode:
		for _, sec := range search.GroupByParticipant(m.results) {
			m.rows = append(m.rows, resultRow{
				text: sectionStyle.Render(fmt.Sprintf("%s (%d)", sec.Title, len(sec.Matches))),
			})
			for _, match := range sec.Matches {
				m.rows = append(m.rows, matchRow(match, true, width))
			}
			m.rows = append(m.rows, resultRow{})
		}
	}
}

// matchRow renders one hit. withRoom prefixes the source room, used by the
// flat and participant groupings where the room is not implied by a section.
func matchRow(match search.Match, withRoom bool, width int) resultRow {
	parts := []string{}
	if withRoom {
		parts = append(parts, dimStyle.Render("["+match.RoomName+"]"))
	}
	parts = append(parts,
		authorStyle.Render(match.AuthorName),
		dimStyle.Render(match.Datetime),
	)
	head := strings.Join(parts, " ")

	used := len([]rune(match.RoomName)) + len([]rune(match.AuthorName)) + len([]rune(match.Datetime)) + 6
	body := truncate(match.DisplayText(), max(16, width-used))

	return resultRow{
		text:     "  " + head + " " + body,
		match:    match,
		hasMatch: true,
	}
}

func (m *Model) moveSearchCursor(delta int) {
	i := m.searchCursor
	for {
		i += delta
		if i < 0 || i >= len(m.rows) {
			return // stay on the current row at either edge
		}
		if m.rows[i].hasMatch {
			m.searchCursor = i
			m.clampSearchOffset()
			return
		}
	}
}

func (m Model) firstSelectable() int {
	for i, row := range m.rows {
		if row.hasMatch {
			return i
		}
	}
	return 0
}

func (m Model) lastSelectable() int {
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].hasMatch {
			return i
		}
	}
	return 0
}

func (m *Model) clampSearchOffset() {
	visible := m.searchVisibleRows()
	if m.searchCursor < m.searchOffset {
		m.searchOffset = m.searchCursor
	}
	if m.searchCursor >= m.searchOffset+visible {
		m.searchOffset = m.searchCursor - visible + 1
	}
	if m.searchOffset < 0 {
		m.searchOffset = 0
	}
}

func (m Model) searchVisibleRows() int {
	// title + input + tabs + bottom bar
	rows := m.height - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) viewSearch() string {
	var b strings.Builder

	title := titleStyle.Render("Global Search")
	if m.activeTerm != "" {
		title += dimStyle.Render(fmt.Sprintf("  %d matches for %q", len(m.results), m.activeTerm))
	}
	b.WriteString(title + "\n")

	b.WriteString(statusBarStyle.Render("Search: ") + m.searchInput.View() + "\n")

	b.WriteString(m.renderTabs() + "\n")

	if m.activeTerm == "" {
		// idle until a term is committed: an empty term matches nothing
		b.WriteString(dimStyle.Render("  type a keyword and press Enter") + "\n")
		for i := 1; i < m.searchVisibleRows(); i++ {
			b.WriteString("\n")
		}
	} else {
		visible := m.searchVisibleRows()
		end := min(m.searchOffset+visible, len(m.rows))
		for i := m.searchOffset; i < end; i++ {
			row := m.rows[i]
			text := row.text
			if row.hasMatch && i == m.searchCursor && m.mode == modeSearchResults {
				text = selectedStyle.Render(row.text)
				text = lipgloss.PlaceHorizontal(m.width, lipgloss.Left, text)
			}
			b.WriteString(text + "\n")
		}
		for i := end - m.searchOffset; i < visible; i++ {
			b.WriteString("\n")
		}
	}

	switch m.mode {
	case modeSearch:
		b.WriteString(m.statusBar("Enter: run  Ctrl+L: clear  Esc: close"))
	default:
		b.WriteString(m.statusBar("Enter: jump  Tab: grouping  /: edit term  e: export  Esc: close"))
	}
	return b.String()
}

func (m Model) renderTabs() string {
	var tabs []string
	for _, g := range []search.GroupMode{
		search.GroupByRoomMode,
		search.GroupByTimeMode,
		search.GroupByParticipantMode,
	} {
		if g == m.groupMode {
			tabs = append(tabs, activeTabStyle.Render(g.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(g.String()))
		}
	}
	return strings.Join(tabs, " ")
}
