package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/masahirokokubo0513/chatwork-like-viewer/model"
	"github.com/masahirokokubo0513/chatwork-like-viewer/search"
)

func TestWriteMatches(t *testing.T) {
	matches := []search.Match{
		{
			Message:  model.Message{ID: "m1", AuthorName: "Tanaka", Text: "budget review", Type: model.TypeText, Datetime: "2023-01-01 09:00:00"},
			RoomID:   "r1",
			RoomName: "General",
		},
		{
			Message:  model.Message{ID: "m2", Type: model.TypeCreateRoom, System: &model.SystemMessage{Message: "room created"}, Datetime: "2023-01-01 08:55:00"},
			RoomID:   "r2",
			RoomName: "Sales",
		},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteMatches(path, "budget", matches))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue(sheetName, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Room", get("A1"))
	assert.Equal(t, "Message", get("D1"))

	assert.Equal(t, "General", get("A2"))
	assert.Equal(t, "Tanaka", get("B2"))
	assert.Equal(t, "2023-01-01 09:00:00", get("C2"))
	assert.Equal(t, "budget review", get("D2"))

	// system notices export their rendered notice text
	assert.Equal(t, "Sales", get("A3"))
	assert.Equal(t, "room created", get("D3"))
}

func TestWriteMatchesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteMatches(path, "nothing", nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Room", v)
}

func TestDefaultFileName(t *testing.T) {
	now := time.Date(2023, 4, 5, 6, 7, 8, 0, time.UTC)
	name := DefaultFileName("budget plan!", now)
	assert.Equal(t, "cwview_budget_plan__20230405_060708.xlsx", name)
}

func TestSanitizeTruncates(t *testing.T) {
	long := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	assert.Len(t, sanitize(long), 24)
}
