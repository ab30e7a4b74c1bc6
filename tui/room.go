package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/masahirokokubo0513/chatwork-like-viewer/model"
	"github.com/masahirokokubo0513/chatwork-like-viewer/search"
)

// roomLine is one rendered line of the room view. msgID ties the line back to
// its message so a selected message can be scrolled to and highlighted.
type roomLine struct {
	text   string
	plain  string // unstyled text, used when the line is highlighted
	msgID  string
	anchor bool // first line of the message
}

func (m Model) enterRoom() (Model, tea.Cmd) {
	m.filterInput.SetValue("")
	m.filterInput.Blur()
	m.highlightID = ""
	m.roomOffset = 0
	m.mode = modeRoom
	m.rebuildRoomLines()
	return m, nil
}

// selectMessage jumps from a global search result into its room. The room
// switch is a no-op when the room has been deleted since the search ran: the
// previous active room stays. Either way the overlay closes.
func (m Model) selectMessage(match search.Match) (Model, tea.Cmd) {
	if !m.store.SetActive(match.RoomID) {
		m.status = fmt.Sprintf("room %s is no longer loaded", match.RoomName)
		m.statusAlert = true
		m.mode = m.searchReturn
		return m, nil
	}
	m.filterInput.SetValue("")
	m.filterInput.Blur()
	m.pendingID = match.ID
	m.mode = modeRoom
	m.rebuildRoomLines()
	return m, nil
}

// rebuildRoomLines re-renders the active room and, when a message is pending,
// performs its one-shot scroll-into-view.
func (m *Model) rebuildRoomLines() {
	m.roomLines = nil

	room, ok := m.store.Active()
	if !ok {
		return
	}

	messages := room.Messages
	if term := m.filterInput.Value(); term != "" {
		messages = search.InRoom(room, term)
	}

	maxWidth := m.width - 2
	if maxWidth < 40 {
		maxWidth = 40
	}

	for _, msg := range messages {
		m.roomLines = append(m.roomLines, renderMessageLines(msg, maxWidth)...)
	}

	if m.roomOffset > len(m.roomLines) {
		m.roomOffset = max(0, len(m.roomLines)-1)
	}

	if m.pendingID != "" {
		m.scrollToMessage(m.pendingID)
		m.highlightID = m.pendingID
		m.pendingID = "" // consumed: repeated renders must not re-trigger the scroll
	}
}

func renderMessageLines(msg model.Message, maxWidth int) []roomLine {
	var lines []roomLine

	if msg.IsSystem() {
		for i, wl := range wrapText("[notice] "+msg.DisplayText(), maxWidth-2) {
			lines = append(lines, roomLine{
				text:   " " + systemNoticeStyle.Render(wl),
				plain:  " " + wl,
				msgID:  msg.ID,
				anchor: i == 0,
			})
		}
		lines = append(lines, roomLine{text: "", msgID: msg.ID})
		return lines
	}

	header := authorStyle.Render(msg.AuthorName) + " " + dimStyle.Render(msg.Datetime)
	lines = append(lines, roomLine{
		text:   " " + header,
		plain:  " " + msg.AuthorName + " " + msg.Datetime,
		msgID:  msg.ID,
		anchor: true,
	})
	for _, wl := range wrapText(msg.Text, maxWidth-2) {
		lines = append(lines, roomLine{
			text:  " " + messageTextStyle.Render(wl),
			plain: " " + wl,
			msgID: msg.ID,
		})
	}
	lines = append(lines, roomLine{text: "", msgID: msg.ID})
	return lines
}

func (m *Model) scrollToMessage(msgID string) {
	for i, line := range m.roomLines {
		if line.anchor && line.msgID == msgID {
			// center the message in the viewport
			m.roomOffset = i - m.roomVisibleRows()/2
			break
		}
	}
	m.clampRoomOffset()
}

func (m Model) updateRoom(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.mode = modeList
		return m, nil

	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		m.roomScroll(-1)
	case "down", "j":
		m.roomScroll(1)
	case "pgup", "u":
		m.roomScroll(-m.roomVisibleRows())
	case "pgdown", "d":
		m.roomScroll(m.roomVisibleRows())
	case "home", "g":
		m.roomOffset = 0
	case "end", "G":
		m.roomOffset = len(m.roomLines)
		m.clampRoomOffset()

	case "/":
		m.filterInput.Focus()
		m.mode = modeRoomFilter
		return m, nil

	case "m":
		m.mode = modeMembers
		return m, nil

	case "s":
		return m.enterSearch(modeRoom)
	}

	return m, nil
}

func (m Model) updateRoomFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filterInput.Blur()
		m.mode = modeRoom
		return m, nil
	case "esc":
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.mode = modeRoom
		m.rebuildRoomLines()
		return m, nil
	}

	// the in-room filter is live: every keystroke narrows the view
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.highlightID = ""
	m.roomOffset = 0
	m.rebuildRoomLines()
	return m, cmd
}

func (m *Model) roomScroll(n int) {
	m.roomOffset += n
	m.clampRoomOffset()
}

func (m *Model) clampRoomOffset() {
	maxOffset := len(m.roomLines) - m.roomVisibleRows()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.roomOffset > maxOffset {
		m.roomOffset = maxOffset
	}
	if m.roomOffset < 0 {
		m.roomOffset = 0
	}
}

func (m Model) roomVisibleRows() int {
	// title bar + bottom bar
	rows := m.height - 2
	if m.mode == modeRoomFilter || m.filterInput.Value() != "" {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) viewRoom() string {
	var b strings.Builder

	room, ok := m.store.Active()
	if !ok {
		b.WriteString(roomTitleStyle.Render(" no room selected "))
		b.WriteString("\n\n  The active room was deleted. Press Esc to go back.\n")
		return b.String()
	}

	title := roomTitleStyle.Render(fmt.Sprintf(" %s — %d messages — %d members",
		room.Name, len(room.Messages), len(room.Participants())))
	b.WriteString(title + "\n")

	if m.mode == modeRoomFilter || m.filterInput.Value() != "" {
		b.WriteString(statusBarStyle.Render("Filter: ") + m.filterInput.View() + "\n")
	}

	visible := m.roomVisibleRows()
	end := min(m.roomOffset+visible, len(m.roomLines))

	for i := m.roomOffset; i < end; i++ {
		line := m.roomLines[i]
		text := line.text
		if m.highlightID != "" && line.msgID == m.highlightID && text != "" {
			text = highlightStyle.Render(line.plain)
		}
		b.WriteString(text + "\n")
	}
	for i := end - m.roomOffset; i < visible; i++ {
		b.WriteString("\n")
	}

	b.WriteString(m.statusBar("Esc: rooms  /: filter  m: members  s: search all  j/k: scroll"))
	return b.String()
}

// wrapText splits text into lines that fit within maxWidth.
func wrapText(text string, maxWidth int) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			result = append(result, "")
			continue
		}
		runes := []rune(line)
		for len(runes) > maxWidth {
			result = append(result, string(runes[:maxWidth]))
			runes = runes[maxWidth:]
		}
		result = append(result, string(runes))
	}
	return result
}
