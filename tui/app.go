package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/masahirokokubo0513/chatwork-like-viewer/archive"
	"github.com/masahirokokubo0513/chatwork-like-viewer/config"
	"github.com/masahirokokubo0513/chatwork-like-viewer/search"
	"github.com/masahirokokubo0513/chatwork-like-viewer/store"
)

type mode int

const (
	modeList mode = iota
	modeRoom
	modeRoomFilter
	modeMembers
	modeSearch        // global search overlay, input focused
	modeSearchResults // global search overlay, results focused
	modeExport
)

type Model struct {
	store   *store.RoomStore
	cfg     config.Config
	log     *zap.Logger
	watcher *archive.Watcher
	paths   []string // export files to read on startup

	width  int
	height int
	mode   mode

	// room list
	cursor int
	offset int

	// room view
	filterInput textinput.Model
	roomLines   []roomLine
	roomOffset  int
	pendingID   string // message waiting for a one-shot scroll-into-view
	highlightID string

	// global search overlay
	searchInput  textinput.Model
	searchReturn mode // where Esc takes us back to
	activeTerm   string
	results      []search.Match
	groupMode    search.GroupMode
	rows         []resultRow
	searchCursor int
	searchOffset int

	// export form
	exportInput textinput.Model

	status      string
	statusAlert bool // render status as a failure
	loading     int  // outstanding startup file reads
	quitting    bool
}

func NewModel(st *store.RoomStore, cfg config.Config, log *zap.Logger, paths []string, watcher *archive.Watcher) Model {
	fi := textinput.New()
	fi.Placeholder = "filter messages..."
	fi.CharLimit = 100

	si := textinput.New()
	si.Placeholder = "search all rooms, Enter to run..."
	si.CharLimit = 100

	ei := textinput.New()
	ei.CharLimit = 300

	return Model{
		store:       st,
		cfg:         cfg,
		log:         log,
		watcher:     watcher,
		paths:       paths,
		filterInput: fi,
		searchInput: si,
		exportInput: ei,
		loading:     len(paths),
		width:       120,
		height:      30,
	}
}

func (m Model) Init() tea.Cmd {
	// every export file is read by its own command, so files finish
	// independently and in no particular order
	var cmds []tea.Cmd
	for _, p := range m.paths {
		cmds = append(cmds, loadRoomCmd(p))
	}
	if m.watcher != nil {
		cmds = append(cmds, waitWatchRoom(m.watcher), waitWatchErr(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildRoomLines()
		m.rebuildRows()
		m.clampOffset()
		return m, nil

	case roomLoadedMsg:
		return m.updateRoomLoaded(msg)

	case roomFailedMsg:
		return m.updateRoomFailed(msg)

	case watcherClosedMsg:
		return m, nil

	case exportDoneMsg:
		return m.updateExportDone(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeList:
			return m.updateList(msg)
		case modeRoom:
			return m.updateRoom(msg)
		case modeRoomFilter:
			return m.updateRoomFilter(msg)
		case modeMembers:
			return m.updateMembers(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeSearchResults:
			return m.updateSearchResults(msg)
		case modeExport:
			return m.updateExportForm(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.clampOffset()
		}

	case "down", "j":
		if m.cursor < m.store.Len()-1 {
			m.cursor++
			m.clampOffset()
		}

	case "home", "g":
		m.cursor = 0
		m.clampOffset()

	case "end", "G":
		m.cursor = max(0, m.store.Len()-1)
		m.clampOffset()

	case "pgup":
		m.cursor = max(0, m.cursor-m.visibleRows())
		m.clampOffset()

	case "pgdown":
		m.cursor = min(max(0, m.store.Len()-1), m.cursor+m.visibleRows())
		m.clampOffset()

	case "enter":
		rooms := m.store.Rooms()
		if m.cursor < len(rooms) {
			m.store.SetActive(rooms[m.cursor].ID)
			return m.enterRoom()
		}

	case "d":
		rooms := m.store.Rooms()
		if m.cursor < len(rooms) {
			room := rooms[m.cursor]
			m.store.Remove(room.ID)
			m.status = fmt.Sprintf("deleted %s", room.Name)
			m.statusAlert = false
			if m.cursor >= m.store.Len() {
				m.cursor = max(0, m.store.Len()-1)
			}
			m.clampOffset()
		}

	case "s", "/":
		return m.enterSearch(modeList)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeRoom, modeRoomFilter:
		return m.viewRoom()
	case modeMembers:
		return m.viewMembers()
	case modeSearch, modeSearchResults:
		return m.viewSearch()
	case modeExport:
		return m.viewExportForm()
	}

	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	title := titleStyle.Render("cwview")
	info := dimStyle.Render(fmt.Sprintf("  %d rooms", m.store.Len()))
	if m.loading > 0 {
		info += dimStyle.Render(fmt.Sprintf("  loading %d...", m.loading))
	}
	b.WriteString(title + info + "\n")

	b.WriteString(m.renderListHeader() + "\n")

	rooms := m.store.Rooms()
	visible := m.visibleRows()
	end := min(m.offset+visible, len(rooms))

	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderListRow(i, i == m.cursor) + "\n")
	}
	for i := end - m.offset; i < visible; i++ {
		b.WriteString("\n")
	}

	b.WriteString(m.statusBar("Enter: open  d: delete  s: search all  q: quit"))
	return b.String()
}

func (m Model) renderListHeader() string {
	w := m.listColWidths()
	cols := []string{
		pad("Room", w.name),
		pad("Messages", w.count),
		pad("Members", w.members),
		pad("Last activity", w.last),
	}
	return headerStyle.Render(strings.Join(cols, " "))
}

func (m Model) renderListRow(i int, selected bool) string {
	room := m.store.Rooms()[i]
	w := m.listColWidths()

	name := room.Name
	if room.ID == m.store.ActiveID() {
		name = "* " + name
	}
	cols := []string{
		pad(name, w.name),
		pad(fmt.Sprintf("%d", len(room.Messages)), w.count),
		pad(fmt.Sprintf("%d", len(room.Participants())), w.members),
		pad(room.LastDatetime(), w.last),
	}
	row := strings.Join(cols, " ")

	if selected {
		row = selectedStyle.Render(row)
		row = lipgloss.PlaceHorizontal(m.width, lipgloss.Left, row)
	}
	return row
}

type listCols struct {
	name    int
	count   int
	members int
	last    int
}

func (m Model) listColWidths() listCols {
	w := listCols{count: 8, members: 8, last: 20}
	used := w.count + w.members + w.last + 5
	w.name = m.width - used
	if w.name < 16 {
		w.name = 16
	}
	return w
}

func (m Model) statusBar(help string) string {
	bar := helpStyle.Render("  " + help)
	if m.status != "" {
		if m.statusAlert {
			bar += "  " + alertStyle.Render(m.status)
		} else {
			bar += "  " + dimStyle.Render(m.status)
		}
	}
	return bar
}

func (m Model) visibleRows() int {
	// title + header + bottom bar
	rows := m.height - 3
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) clampOffset() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 2 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-2]) + ".."
}
