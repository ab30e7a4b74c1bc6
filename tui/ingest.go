package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/masahirokokubo0513/chatwork-like-viewer/archive"
	"github.com/masahirokokubo0513/chatwork-like-viewer/model"
)

// roomLoadedMsg is sent when an export file has been read and parsed.
type roomLoadedMsg struct {
	room  model.Room
	watch bool // arrived via the directory watcher
}

// roomFailedMsg is sent when a single export file could not be ingested. The
// failure is isolated: other files keep loading.
type roomFailedMsg struct {
	path  string
	err   error
	watch bool
}

type watcherClosedMsg struct{}

func loadRoomCmd(path string) tea.Cmd {
	return func() tea.Msg {
		room, err := archive.ReadRoomFile(path)
		if err != nil {
			return roomFailedMsg{path: path, err: err}
		}
		return roomLoadedMsg{room: room}
	}
}

func waitWatchRoom(w *archive.Watcher) tea.Cmd {
	return func() tea.Msg {
		room, ok := <-w.Rooms
		if !ok {
			return watcherClosedMsg{}
		}
		return roomLoadedMsg{room: room, watch: true}
	}
}

func waitWatchErr(w *archive.Watcher) tea.Cmd {
	return func() tea.Msg {
		ferr, ok := <-w.Errs
		if !ok {
			return watcherClosedMsg{}
		}
		return roomFailedMsg{path: ferr.Path, err: ferr.Err, watch: true}
	}
}

func (m Model) updateRoomLoaded(msg roomLoadedMsg) (tea.Model, tea.Cmd) {
	m.store.Add(msg.room)
	if !msg.watch && m.loading > 0 {
		m.loading--
	}
	m.status = fmt.Sprintf("loaded %s (%d messages)", msg.room.Name, len(msg.room.Messages))
	m.statusAlert = false
	m.log.Info("room loaded",
		zap.String("room", msg.room.ID),
		zap.String("name", msg.room.Name),
		zap.Int("messages", len(msg.room.Messages)))

	// a replaced room may be the one on screen, or may change committed
	// search results
	if m.store.ActiveID() == msg.room.ID {
		m.rebuildRoomLines()
	}
	if m.activeTerm != "" {
		m.refreshResults()
	}

	var cmd tea.Cmd
	if msg.watch && m.watcher != nil {
		cmd = waitWatchRoom(m.watcher)
	}
	return m, cmd
}

func (m Model) updateRoomFailed(msg roomFailedMsg) (tea.Model, tea.Cmd) {
	if !msg.watch && m.loading > 0 {
		m.loading--
	}
	m.status = fmt.Sprintf("failed to load %s: %v", filepath.Base(msg.path), msg.err)
	m.statusAlert = true
	m.log.Warn("room load failed", zap.String("path", msg.path), zap.Error(msg.err))

	var cmd tea.Cmd
	if msg.watch && m.watcher != nil {
		cmd = waitWatchErr(m.watcher)
	}
	return m, cmd
}
