package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipants(t *testing.T) {
	room := Room{ID: "1", Name: "General", Messages: []Message{
		{ID: "m0", Type: TypeCreateRoom, AuthorID: 1, AuthorName: "System"},
		{ID: "m1", Type: TypeText, AuthorID: 10, AuthorName: "Tanaka"},
		{ID: "m2", Type: TypeText, AuthorID: 20, AuthorName: "Suzuki"},
		// renamed later; the first-seen name wins
		{ID: "m3", Type: TypeText, AuthorID: 10, AuthorName: "Tanaka Taro"},
	}}

	got := room.Participants()
	require.Len(t, got, 2, "system notices contribute no participants; ids deduplicate")
	assert.Equal(t, Participant{ID: 10, Name: "Tanaka"}, got[0])
	assert.Equal(t, Participant{ID: 20, Name: "Suzuki"}, got[1])
}

func TestParticipantsEmptyRoom(t *testing.T) {
	assert.Empty(t, Room{}.Participants())
}

func TestDisplayText(t *testing.T) {
	notice := Message{Type: TypeUpdateRoom, System: &SystemMessage{Message: "name changed"}}
	assert.True(t, notice.IsSystem())
	assert.Equal(t, "name changed", notice.DisplayText())

	// a system tag without its payload renders as empty, not a crash
	bare := Message{Type: TypeCreateRoom}
	assert.Equal(t, "", bare.DisplayText())

	plain := Message{Type: TypeText, Text: "hello"}
	assert.False(t, plain.IsSystem())
	assert.Equal(t, "hello", plain.DisplayText())
}

func TestLastDatetime(t *testing.T) {
	assert.Equal(t, "", Room{}.LastDatetime())

	room := Room{Messages: []Message{
		{Datetime: "2023-01-01 09:00:00"},
		{Datetime: "2023-01-01 10:00:00"},
	}}
	assert.Equal(t, "2023-01-01 10:00:00", room.LastDatetime())
}
