package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/masahirokokubo0513/chatwork-like-viewer/model"
)

// ExportSuffix is the trailing literal every Chatwork export file carries:
// {roomId}_{roomName}_messages.json
const ExportSuffix = "_messages.json"

// ErrInvalidFormat is returned when an export file does not contain a JSON
// array of messages. The file is skipped; no partial room is produced.
var ErrInvalidFormat = errors.New("invalid export file format")

// FileError reports a single export file that failed to ingest.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", filepath.Base(e.Path), e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// SplitExportName derives a room id and display name from an export file name.
// The id is everything before the first underscore; the name is the remainder
// with the _messages.json suffix stripped. Underscores inside the room name
// survive because only the first underscore splits:
//
//	"12345_Dev_Team_messages.json" -> ("12345", "Dev_Team")
//
// A name without any underscore yields the same id and name (the base name
// with its .json extension dropped).
func SplitExportName(fileName string) (roomID, roomName string) {
	base := filepath.Base(fileName)
	id, rest, found := strings.Cut(base, "_")
	if !found {
		id = strings.TrimSuffix(base, ".json")
		return id, id
	}
	return id, strings.TrimSuffix(rest, ExportSuffix)
}

// ParseRoom builds a room from an export file's name and raw contents. Each
// message is annotated with the derived room id. Contents that are not a JSON
// array of messages yield ErrInvalidFormat and no room.
func ParseRoom(fileName string, data []byte) (model.Room, error) {
	id, name := SplitExportName(fileName)

	var messages []model.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return model.Room{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	for i := range messages {
		messages[i].RoomID = id
	}

	return model.Room{
		ID:       id,
		Name:     name,
		Messages: messages,
		FilePath: fileName,
	}, nil
}

// ReadRoomFile reads and parses a single export file.
func ReadRoomFile(path string) (model.Room, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Room{}, err
	}
	room, err := ParseRoom(path, data)
	if err != nil {
		return model.Room{}, err
	}
	return room, nil
}

// ScanDir lists every export file in dir, in directory order. It returns the
// paths rather than parsed rooms so each file can be read independently; a
// missing or unreadable directory yields no paths.
func ScanDir(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ExportSuffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths
}
