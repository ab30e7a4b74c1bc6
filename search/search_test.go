package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masahirokokubo0513/chatwork-like-viewer/model"
)

func msg(id, author, text string) model.Message {
	return model.Message{ID: id, AuthorName: author, Text: text, Type: model.TypeText}
}

func TestInRoomEmptyTermMatchesNothing(t *testing.T) {
	room := model.Room{ID: "1", Name: "General", Messages: []model.Message{
		msg("m1", "Tanaka", "hello"),
	}}
	assert.Empty(t, InRoom(room, ""), "empty term is the idle state, not show-all")
}

func TestInRoomCaseInsensitive(t *testing.T) {
	room := model.Room{ID: "1", Name: "General", Messages: []model.Message{
		msg("m1", "Tanaka", "Hello World"),
		msg("m2", "Suzuki", "bye"),
	}}

	got := InRoom(room, "hello")
	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].ID)

	got = InRoom(room, "HELLO")
	require.Len(t, got, 1)
}

func TestInRoomMatchesAuthorName(t *testing.T) {
	room := model.Room{ID: "1", Name: "General", Messages: []model.Message{
		msg("m1", "Tanaka", "no keyword here"),
		msg("m2", "Suzuki", "tanaka was mentioned"),
	}}

	// m1 matches on author, m2 on text; each hit counts once
	got := InRoom(room, "tanaka")
	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "m2", got[1].ID)
}

func TestInRoomNoTokenization(t *testing.T) {
	room := model.Room{ID: "1", Name: "General", Messages: []model.Message{
		msg("m1", "Tanaka", "overbudgeting"),
	}}
	// raw substring test: a term inside a word still matches
	assert.Len(t, InRoom(room, "budget"), 1)
}

func testRooms() []model.Room {
	return []model.Room{
		{ID: "r1", Name: "General", Messages: []model.Message{
			msg("m1", "Tanaka", "the budget looks fine"),
			msg("m2", "Suzuki", "agreed"),
		}},
		{ID: "r2", Name: "Sales", Messages: []model.Message{
			msg("m3", "Sato", "shipping update"),
		}},
	}
}

func TestAllRoomsPairsSourceRoom(t *testing.T) {
	got := AllRooms(testRooms(), "budget")
	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "r1", got[0].RoomID)
	assert.Equal(t, "General", got[0].RoomName)
}

func TestAllRoomsEmptyTerm(t *testing.T) {
	assert.Empty(t, AllRooms(testRooms(), ""))
}

func TestGroupByRoomKeepsEmptySections(t *testing.T) {
	rooms := testRooms()
	matches := AllRooms(rooms, "budget")

	sections := GroupByRoom(rooms, matches)
	require.Len(t, sections, 2, "every loaded room gets a section")

	assert.Equal(t, "General", sections[0].Title)
	require.Len(t, sections[0].Matches, 1)
	assert.Equal(t, "m1", sections[0].Matches[0].ID)

	assert.Equal(t, "Sales", sections[1].Title)
	assert.Empty(t, sections[1].Matches, "rooms with zero matches still appear")
}

func TestGroupByTimeSortsAscending(t *testing.T) {
	matches := []Match{
		{Message: model.Message{ID: "late", Datetime: "2023-01-02T00:00"}},
		{Message: model.Message{ID: "early", Datetime: "2023-01-01T00:00"}},
	}

	got := GroupByTime(matches, "")
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].ID)
	assert.Equal(t, "late", got[1].ID)

	// re-sorting is idempotent
	again := GroupByTime(got, "")
	assert.Equal(t, got, again)
}

func TestGroupByTimeStableOnTies(t *testing.T) {
	matches := []Match{
		{Message: model.Message{ID: "a", Datetime: "2023-01-01 10:00:00"}},
		{Message: model.Message{ID: "b", Datetime: "2023-01-01 10:00:00"}},
		{Message: model.Message{ID: "c", Datetime: "2023-01-01 09:00:00"}},
	}

	got := GroupByTime(matches, "")
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID, "ties keep input order")
	assert.Equal(t, "b", got[2].ID)
}

func TestGroupByTimeUnparsableFallsBackToEpoch(t *testing.T) {
	matches := []Match{
		{Message: model.Message{ID: "x", Datetime: "not a date", Timestamp: 200}},
		{Message: model.Message{ID: "y", Datetime: "not a date either", Timestamp: 100}},
	}

	got := GroupByTime(matches, "")
	assert.Equal(t, "y", got[0].ID)
	assert.Equal(t, "x", got[1].ID)
}

func TestGroupByTimeDoesNotMutateInput(t *testing.T) {
	matches := []Match{
		{Message: model.Message{ID: "late", Datetime: "2023-01-02 00:00:00"}},
		{Message: model.Message{ID: "early", Datetime: "2023-01-01 00:00:00"}},
	}
	_ = GroupByTime(matches, "")
	assert.Equal(t, "late", matches[0].ID)
}

func TestGroupByParticipantFirstAppearanceOrder(t *testing.T) {
	matches := []Match{
		{Message: msg("m1", "Suzuki", "one"), RoomName: "General"},
		{Message: msg("m2", "Tanaka", "two"), RoomName: "General"},
		{Message: msg("m3", "Suzuki", "three"), RoomName: "Sales"},
	}

	sections := GroupByParticipant(matches)
	require.Len(t, sections, 2)
	assert.Equal(t, "Suzuki", sections[0].Title)
	assert.Equal(t, "Tanaka", sections[1].Title)

	require.Len(t, sections[0].Matches, 2)
	assert.Equal(t, "m1", sections[0].Matches[0].ID)
	assert.Equal(t, "m3", sections[0].Matches[1].ID, "within a partition original order holds")
}

func TestGroupModeCycle(t *testing.T) {
	g := GroupByRoomMode
	g = g.Next()
	assert.Equal(t, GroupByTimeMode, g)
	g = g.Next()
	assert.Equal(t, GroupByParticipantMode, g)
	g = g.Next()
	assert.Equal(t, GroupByRoomMode, g)
}

// end to end over two ingested rooms, grouped by room
func TestSearchAcrossRoomsByRoom(t *testing.T) {
	rooms := []model.Room{
		{ID: "r1", Name: "General", Messages: []model.Message{
			msg("m1", "Tanaka", "q3 budget review tomorrow"),
		}},
		{ID: "r2", Name: "Sales", Messages: []model.Message{
			msg("m2", "Sato", "pipeline sync"),
		}},
	}

	results := AllRooms(rooms, "budget")
	sections := GroupByRoom(rooms, results)

	require.Len(t, sections, 2)
	assert.Equal(t, "General", sections[0].Title)
	assert.Len(t, sections[0].Matches, 1)
	assert.Equal(t, "Sales", sections[1].Title)
	assert.Len(t, sections[1].Matches, 0)
}
