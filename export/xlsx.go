// Package export writes global search results to an .xlsx workbook, one row
// per match.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/masahirokokubo0513/chatwork-like-viewer/search"
)

const sheetName = "Search Results"

// WriteMatches saves the given matches to path as an Excel workbook. The row
// order is exactly the order of matches, so callers pick the grouping by
// ordering the slice first.
func WriteMatches(path, term string, matches []search.Match) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Room", "Author", "Datetime", "Message"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	for i, m := range matches {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), m.RoomName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), m.AuthorName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), m.Datetime)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), m.DisplayText())
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// DefaultFileName builds a timestamped workbook name for a search term.
func DefaultFileName(term string, now time.Time) string {
	return fmt.Sprintf("cwview_%s_%s.xlsx", sanitize(term), now.Format("20060102_150405"))
}

func sanitize(term string) string {
	out := make([]rune, 0, len(term))
	for _, r := range term {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) > 24 {
		out = out[:24]
	}
	return string(out)
}
