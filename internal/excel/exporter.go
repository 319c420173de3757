// Package excel exports practice data to spreadsheets and imports practice
// logs from Excel or CSV files.
package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/guitarcoach/internal/practice"
	"github.com/example/guitarcoach/pkg/models"
)

// Sheet names written by Export
const (
	SheetProgress = "Progress"
	SheetSessions = "Sessions"
	SheetStats    = "Stats"
	SheetDaily    = "Daily"
)

const timeLayout = "2006-01-02 15:04"

// ExportData is everything written to a workbook
type ExportData struct {
	Progress []models.UserProgress
	Sessions []models.PracticeSession
	Stats    models.UserStats
	Location *time.Location
}

// Export builds a workbook with one sheet per record set. The caller closes it.
func Export(data ExportData) (*excelize.File, error) {
	loc := data.Location
	if loc == nil {
		loc = time.Local
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetProgress)
	for _, name := range []string{SheetSessions, SheetStats, SheetDaily} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	progressRows := make([][]interface{}, 0, len(data.Progress))
	for _, p := range data.Progress {
		score := interface{}("")
		if p.Score != nil {
			score = *p.Score
		}
		progressRows = append(progressRows, []interface{}{
			string(p.Category), p.ItemID, p.ItemName, p.Completed, p.PracticeTime,
			p.LastPracticed.In(loc).Format(timeLayout), string(p.Difficulty), score, deref(p.Notes),
		})
	}

	// Column order matches DefaultImportConfig so the sheet can be re-imported
	sessionRows := make([][]interface{}, 0, len(data.Sessions))
	for _, s := range data.Sessions {
		sessionRows = append(sessionRows, []interface{}{
			s.ID, string(s.Category), s.ItemID, s.ItemName,
			fmt.Sprintf("%ds", s.Duration), s.Date.In(loc).Format(timeLayout), deref(s.Notes),
		})
	}

	st := data.Stats
	statsRows := [][]interface{}{
		{"Total practice", practice.FormatDuration(st.TotalPracticeTime)},
		{"Current streak", st.CurrentStreak},
		{"Longest streak", st.LongestStreak},
		{"Chords learned", st.ChordsLearned},
		{"Scales learned", st.ScalesLearned},
		{"Exercises completed", st.ExercisesCompleted},
		{"Lessons completed", st.LessonsCompleted},
		{"Level", st.Level},
		{"Experience", st.Experience},
	}

	dailyRows := make([][]interface{}, 0)
	for _, d := range practice.DailyTotals(data.Sessions, loc) {
		dailyRows = append(dailyRows, []interface{}{d.Day.Format("2006-01-02"), d.Seconds / 60})
	}

	sheets := []struct {
		name    string
		headers []interface{}
		rows    [][]interface{}
	}{
		{SheetProgress, []interface{}{"Category", "Item ID", "Item", "Completed", "Practice (s)", "Last practiced", "Difficulty", "Score", "Notes"}, progressRows},
		{SheetSessions, []interface{}{"ID", "Category", "Item ID", "Item", "Duration", "Date", "Notes"}, sessionRows},
		{SheetStats, []interface{}{"Statistic", "Value"}, statsRows},
		{SheetDaily, []interface{}{"Day", "Minutes"}, dailyRows},
	}
	for _, sh := range sheets {
		if err := writeSheet(f, sh.name, header, sh.headers, sh.rows); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// ExportToFile writes the workbook to path
func ExportToFile(path string, data ExportData) error {
	f, err := Export(data)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, style int, headers []interface{}, rows [][]interface{}) error {
	all := append([][]interface{}{headers}, rows...)
	for r, row := range all {
		for c, value := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheet, name, value); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, name, err)
			}
		}
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
