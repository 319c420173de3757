package excel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/guitarcoach/pkg/models"
)

type memoryWriter struct {
	sessions []models.PracticeSession
	err      error
}

func (m *memoryWriter) AppendSession(_ context.Context, s *models.PracticeSession) error {
	if m.err != nil {
		return m.err
	}
	m.sessions = append(m.sessions, *s)
	return nil
}

func sampleData() ExportData {
	notes := "slow and clean"
	score := 90
	when := time.Date(2026, time.June, 3, 18, 30, 0, 0, time.UTC)
	return ExportData{
		Progress: []models.UserProgress{{
			Category: models.CategoryChords, ItemID: "c-major", ItemName: "C Major",
			Completed: true, PracticeTime: 65, LastPracticed: when,
			Difficulty: models.DifficultyBeginner, Score: &score,
		}},
		Sessions: []models.PracticeSession{
			{ID: 2, Category: models.CategoryScales, ItemID: "a-blues", ItemName: "A Blues Scale", Duration: 600, Date: when, Notes: &notes},
			{ID: 1, Category: models.CategoryChords, ItemID: "c-major", ItemName: "C Major", Duration: 65, Date: when.Add(-24 * time.Hour)},
		},
		Stats:    models.UserStats{Level: 1, Experience: 110, TotalPracticeTime: 665, CurrentStreak: 2, LongestStreak: 2},
		Location: time.UTC,
	}
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.xlsx")
	require.NoError(t, ExportToFile(path, sampleData()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetProgress, SheetSessions, SheetStats, SheetDaily}, f.GetSheetList())

	progress, err := f.GetRows(SheetProgress)
	require.NoError(t, err)
	require.Len(t, progress, 2)
	assert.Equal(t, "Category", progress[0][0])
	assert.Equal(t, []string{"chords", "c-major", "C Major"}, progress[1][:3])
	assert.Equal(t, "2026-06-03 18:30", progress[1][5])

	sessions, err := f.GetRows(SheetSessions)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "600s", sessions[1][4])
	assert.Equal(t, "slow and clean", sessions[1][6])

	daily, err := f.GetRows(SheetDaily)
	require.NoError(t, err)
	require.Len(t, daily, 3)
	assert.Equal(t, []string{"2026-06-02", "1"}, daily[1])
	assert.Equal(t, []string{"2026-06-03", "10"}, daily[2])
}

func TestImportSessions_RoundTripsExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.xlsx")
	require.NoError(t, ExportToFile(path, sampleData()))

	cfg := DefaultImportConfig()
	cfg.FilePath = path
	cfg.Location = time.UTC
	w := &memoryWriter{}

	result, err := ImportSessions(context.Background(), cfg, w)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Empty(t, result.Errors)

	require.Len(t, w.sessions, 2)
	got := w.sessions[0]
	assert.Equal(t, models.CategoryScales, got.Category)
	assert.Equal(t, "a-blues", got.ItemID)
	assert.Equal(t, 600, got.Duration)
	assert.True(t, got.Date.Equal(time.Date(2026, time.June, 3, 18, 30, 0, 0, time.UTC)))
	require.NotNil(t, got.Notes)
	assert.Equal(t, "slow and clean", *got.Notes)
	assert.Zero(t, got.ID, "ids are assigned by the store")
}

func TestImportSessions_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	content := "id,category,item,name,duration,date,notes\n" +
		",chords,,G Major,15,2026-06-01,\n" +
		",scales,c-major,C Major,1h5m,2026-06-02 07:15,morning\n" +
		"\n" +
		",songs,wonderwall,Wonderwall,10,2026-06-02,\n" +
		",exercises,spider-crawl,Spider Crawl,abc,2026-06-02,\n" +
		",exercises,spider-crawl,Spider Crawl,5,yesterday,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultImportConfig()
	cfg.FilePath = path
	cfg.Location = time.UTC
	w := &memoryWriter{}

	result, err := ImportSessions(context.Background(), cfg, w)
	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "Row 4")

	require.Len(t, w.sessions, 2)
	assert.Equal(t, "g-major", w.sessions[0].ItemID, "missing id derived from the name")
	assert.Equal(t, 900, w.sessions[0].Duration)
	assert.Equal(t, 3900, w.sessions[1].Duration)
	assert.Equal(t, 7, w.sessions[1].Date.Hour())
}

func TestImportSessions_WriterFailureStops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.xlsx")
	require.NoError(t, ExportToFile(path, sampleData()))

	cfg := DefaultImportConfig()
	cfg.FilePath = path
	_, err := ImportSessions(context.Background(), cfg, &memoryWriter{err: errors.New("storage failure")})
	assert.ErrorContains(t, err, "storage failure")
}

func TestImportSessions_MissingFile(t *testing.T) {
	cfg := DefaultImportConfig()
	cfg.FilePath = filepath.Join(t.TempDir(), "missing.xlsx")
	_, err := ImportSessions(context.Background(), cfg, &memoryWriter{})
	assert.Error(t, err)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "c-major", slug("C Major"))
	assert.Equal(t, "fs-major", slug("F# Major"))
	assert.Equal(t, "scale-practice-major", slug("Scale Practice: Major"))
	assert.Equal(t, "", slug("  "))
}

func TestColumnToIndex(t *testing.T) {
	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 6, columnToIndex("g"))
	assert.Equal(t, 26, columnToIndex("AA"))
}
