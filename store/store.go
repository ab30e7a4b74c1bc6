// Package store holds the rooms loaded into the running viewer. It is a plain
// in-memory container: rooms live from ingestion until the user deletes them
// or the viewer exits, and all mutation happens on the UI event loop.
package store

import "github.com/masahirokokubo0513/chatwork-like-viewer/model"

// RoomStore keeps rooms in insertion order together with the active selection.
type RoomStore struct {
	rooms    []model.Room
	activeID string // "" means no room selected
}

func New() *RoomStore {
	return &RoomStore{}
}

// Add appends a room. The first room added becomes the active room. Re-adding
// a room whose id is already present replaces the existing entry in place, so
// re-uploading an export refreshes the room instead of duplicating it.
func (s *RoomStore) Add(room model.Room) {
	for i := range s.rooms {
		if s.rooms[i].ID == room.ID {
			s.rooms[i] = room
			return
		}
	}
	s.rooms = append(s.rooms, room)
	if len(s.rooms) == 1 {
		s.activeID = room.ID
	}
}

// Remove deletes the room with the given id. Removing the active room clears
// the selection; there is no automatic fallback to another room. Removing an
// unknown id changes nothing.
func (s *RoomStore) Remove(id string) {
	kept := s.rooms[:0]
	for _, r := range s.rooms {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.rooms = kept
	if s.activeID == id {
		s.activeID = ""
	}
}

// Rooms returns the loaded rooms in insertion order.
func (s *RoomStore) Rooms() []model.Room {
	return s.rooms
}

func (s *RoomStore) Len() int {
	return len(s.rooms)
}

// Room looks up a room by id.
func (s *RoomStore) Room(id string) (model.Room, bool) {
	for _, r := range s.rooms {
		if r.ID == id {
			return r, true
		}
	}
	return model.Room{}, false
}

// Active returns the currently selected room, if any.
func (s *RoomStore) Active() (model.Room, bool) {
	if s.activeID == "" {
		return model.Room{}, false
	}
	return s.Room(s.activeID)
}

func (s *RoomStore) ActiveID() string {
	return s.activeID
}

// SetActive selects the room with the given id. An unknown id leaves the
// previous selection in place and reports false.
func (s *RoomStore) SetActive(id string) bool {
	if _, ok := s.Room(id); !ok {
		return false
	}
	s.activeID = id
	return true
}

func (s *RoomStore) ClearActive() {
	s.activeID = ""
}
