package model

type Room struct {
	ID       string // text before the first underscore of the export file name
	Name     string // remainder, with the _messages.json suffix stripped
	Messages []Message
	FilePath string // export file this room was loaded from
}

// Participant is derived from a room's messages on demand, never stored.
type Participant struct {
	ID   int
	Name string
}

// Participants returns the room's members: one entry per author id seen on an
// ordinary text message, first-seen name wins, in order of first appearance.
func (r Room) Participants() []Participant {
	seen := make(map[int]bool)
	var out []Participant
	for _, m := range r.Messages {
		if m.Type != TypeText || seen[m.AuthorID] {
			continue
		}
		seen[m.AuthorID] = true
		out = append(out, Participant{ID: m.AuthorID, Name: m.AuthorName})
	}
	return out
}

// LastDatetime returns the datetime string of the room's final message, or ""
// for an empty room.
func (r Room) LastDatetime() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[len(r.Messages)-1].Datetime
}
