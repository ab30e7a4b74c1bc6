package search

import (
	"sort"
	"time"

	"github.com/masahirokokubo0513/chatwork-like-viewer/model"
)

// GroupMode selects how global search results are presented.
type GroupMode int

const (
	GroupByRoomMode GroupMode = iota
	GroupByTimeMode
	GroupByParticipantMode
)

func (g GroupMode) String() string {
	switch g {
	case GroupByRoomMode:
		return "By Room"
	case GroupByTimeMode:
		return "By Time"
	case GroupByParticipantMode:
		return "By Participant"
	default:
		return "?"
	}
}

// Next cycles to the following grouping mode.
func (g GroupMode) Next() GroupMode {
	return (g + 1) % 3
}

// Section is one partition of grouped results: a room or a participant.
type Section struct {
	Title   string
	RoomID  string // set for room sections only
	Matches []Match
}

// GroupByRoom partitions matches by source room. Sections follow the store's
// insertion order and every loaded room gets a section, even with zero
// matches; within a section the room's own message order is preserved.
func GroupByRoom(rooms []model.Room, matches []Match) []Section {
	sections := make([]Section, len(rooms))
	index := make(map[string]int, len(rooms))
	for i, room := range rooms {
		sections[i] = Section{Title: room.Name, RoomID: room.ID}
		index[room.ID] = i
	}
	for _, m := range matches {
		if i, ok := index[m.RoomID]; ok {
			sections[i].Matches = append(sections[i].Matches, m)
		}
	}
	return sections
}

// datetimeLayouts are tried in order when parsing a message's preformatted
// datetime string; export files from different Chatwork locales format it
// differently.
var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006/01/02 15:04",
}

// messageTime parses the datetime string the export supplies, which is what
// the viewer sorts on. When it parses under none of the known layouts, the
// numeric tm epoch stands in.
func messageTime(m model.Message, layout string) time.Time {
	layouts := datetimeLayouts
	if layout != "" {
		layouts = append([]string{layout}, datetimeLayouts...)
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, m.Datetime); err == nil {
			return t
		}
	}
	return time.Unix(m.Timestamp, 0)
}

// GroupByTime returns matches as one flat sequence sorted ascending by
// datetime. The sort is stable: ties keep their input order. layout, when
// non-empty, is tried before the built-in datetime layouts.
func GroupByTime(matches []Match, layout string) []Match {
	out := make([]Match, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		return messageTime(out[i].Message, layout).Before(messageTime(out[j].Message, layout))
	})
	return out
}

// GroupByParticipant partitions matches by author name. Partitions appear in
// order of each participant's first hit; within a partition the original
// match order is preserved.
func GroupByParticipant(matches []Match) []Section {
	var sections []Section
	index := make(map[string]int)
	for _, m := range matches {
		i, ok := index[m.AuthorName]
		if !ok {
			i = len(sections)
			index[m.AuthorName] = i
			sections = append(sections, Section{Title: m.AuthorName})
		}
		sections[i].Matches = append(sections[i].Matches, m)
	}
	return sections
}
