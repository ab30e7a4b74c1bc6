// Package search implements the per-room filter and the cross-room search with
// its three result groupings. Everything here is a pure function of the loaded
// rooms and a search term.
package search

import (
	"strings"

	"github.com/masahirokokubo0513/chatwork-like-viewer/model"
)

// Match is one cross-room search hit paired with its source room. Message ids
// are only unique within a room, so the pair (RoomID, ID) identifies a hit.
type Match struct {
	model.Message
	RoomID   string
	RoomName string
}

// InRoom returns the subsequence of the room's messages whose text or author
// name contains term, case-insensitively. An empty term matches nothing: the
// filter is idle until the user types something.
func InRoom(room model.Room, term string) []model.Message {
	if term == "" {
		return nil
	}
	needle := strings.ToLower(term)

	var out []model.Message
	for _, m := range room.Messages {
		if matches(m, needle) {
			out = append(out, m)
		}
	}
	return out
}

// AllRooms runs the same substring predicate across every loaded room and
// pairs each hit with its source room. An empty term yields no results; the
// global search is inactive until a term is committed.
func AllRooms(rooms []model.Room, term string) []Match {
	if term == "" {
		return nil
	}
	needle := strings.ToLower(term)

	var out []Match
	for _, room := range rooms {
		for _, m := range room.Messages {
			if matches(m, needle) {
				out = append(out, Match{Message: m, RoomID: room.ID, RoomName: room.Name})
			}
		}
	}
	return out
}

// matches is a raw substring test over the message body and the author name.
// A message matching on both still counts once. needle must be lowercased.
func matches(m model.Message, needle string) bool {
	return strings.Contains(strings.ToLower(m.Text), needle) ||
		strings.Contains(strings.ToLower(m.AuthorName), needle)
}
