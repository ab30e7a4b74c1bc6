package archive

import (
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/masahirokokubo0513/chatwork-like-viewer/model"
)

// Watcher ingests export files dropped into the archive directory while the
// viewer runs. Parsed rooms arrive on Rooms, per-file failures on Errs. Each
// file is read and parsed independently; a malformed file affects only itself.
type Watcher struct {
	fsw     *fsnotify.Watcher
	log     *zap.Logger
	Rooms   chan model.Room
	Errs    chan *FileError
	pending map[string]bool
}

// Watch starts watching dir for new or rewritten export files.
func Watch(dir string, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		log:     log,
		Rooms:   make(chan model.Room, 8),
		Errs:    make(chan *FileError, 8),
		pending: make(map[string]bool),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.Rooms)
	defer close(w.Errs)

	// writes come in bursts while the file is still being copied in, so hold
	// off reading until the path has been quiet for a moment
	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(ev.Name, ExportSuffix) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.pending[ev.Name] = true
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(250 * time.Millisecond)

		case <-debounce.C:
			for path := range w.pending {
				delete(w.pending, path)
				room, err := ReadRoomFile(path)
				if err != nil {
					w.log.Warn("watch ingest failed", zap.String("path", path), zap.Error(err))
					w.Errs <- &FileError{Path: path, Err: err}
					continue
				}
				w.log.Info("watch ingested room",
					zap.String("room", room.ID),
					zap.Int("messages", len(room.Messages)))
				w.Rooms <- room
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// Close stops the watcher; Rooms and Errs are closed once the event loop
// drains.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
