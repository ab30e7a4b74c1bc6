package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/masahirokokubo0513/chatwork-like-viewer/archive"
	"github.com/masahirokokubo0513/chatwork-like-viewer/config"
	"github.com/masahirokokubo0513/chatwork-like-viewer/store"
	"github.com/masahirokokubo0513/chatwork-like-viewer/tui"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := newLogger(cfg.LogFile)
	defer logger.Sync()

	// export files come from the archive dir plus any paths given on the
	// command line
	paths := archive.ScanDir(cfg.ArchiveDir)
	var listOnly bool
	for _, arg := range os.Args[1:] {
		if arg == "--list" {
			listOnly = true
			continue
		}
		if strings.HasPrefix(arg, "-") {
			fmt.Fprintf(os.Stderr, "usage: cwview [--list] [export files...]\n")
			os.Exit(2)
		}
		paths = append(paths, arg)
	}

	// --list: read everything synchronously and print a plain table
	// (for scripting / quick inspection)
	if listOnly {
		listRooms(paths)
		return
	}

	st := store.New()

	var watcher *archive.Watcher
	if cfg.Watch {
		w, err := archive.Watch(cfg.ArchiveDir, logger)
		if err != nil {
			logger.Warn("archive watch unavailable", zap.Error(err))
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	m := tui.NewModel(st, cfg, logger, paths, watcher)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listRooms(paths []string) {
	type row struct {
		id, name string
		count    int
	}
	var rows []row

	for _, path := range paths {
		room, err := archive.ReadRoomFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", &archive.FileError{Path: path, Err: err})
			continue
		}
		rows = append(rows, row{id: room.ID, name: room.Name, count: len(room.Messages)})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })
	for _, r := range rows {
		fmt.Printf("%-12s │ %-30s │ %d messages\n", r.id, r.name, r.count)
	}
	if len(rows) == 0 {
		fmt.Println("No rooms found.")
	}
}

// newLogger writes to the configured file; a TUI owns the terminal, so
// without a file logging is off entirely.
func newLogger(path string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
