package practice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/guitarcoach/pkg/models"
)

func TestDailyTotals(t *testing.T) {
	sessions := []models.PracticeSession{
		{ItemID: "am", Duration: 300, Date: day(2, 20)},
		{ItemID: "c-major", Duration: 120, Date: day(0, 9)},
		{ItemID: "g-major", Duration: 60, Date: day(0, 18)},
	}
	totals := DailyTotals(sessions, time.UTC)

	require.Len(t, totals, 2)
	assert.True(t, totals[0].Day.Equal(StartOfDay(day(0, 0))))
	assert.Equal(t, 180, totals[0].Seconds)
	assert.Equal(t, 300, totals[1].Seconds)
}

func TestSummarize(t *testing.T) {
	sessions := []models.PracticeSession{
		{Duration: 600, Date: day(0, 9)},
		{Duration: 900, Date: day(1, 9)},
	}
	progress := []models.UserProgress{
		{Category: models.CategoryChords, Completed: true},
		{Category: models.CategoryChords, Completed: false},
		{Category: models.CategoryScales, Completed: true},
	}
	s := Summarize(sessions, progress, time.UTC)

	assert.Equal(t, 1500, s.Total)
	assert.Equal(t, 2, s.Sessions)
	assert.Equal(t, 1, s.Completed[models.CategoryChords])
	assert.Equal(t, 1, s.Completed[models.CategoryScales])
	assert.Equal(t, 0, s.Completed[models.CategoryLessons])
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0m", FormatDuration(45))
	assert.Equal(t, "12m", FormatDuration(12*60+5))
	assert.Equal(t, "1h 5m", FormatDuration(3900))
}

func TestRelativeDay(t *testing.T) {
	now := day(10, 12)
	assert.Equal(t, "Today", RelativeDay(day(10, 1), now))
	assert.Equal(t, "Yesterday", RelativeDay(day(9, 23), now))
	assert.Equal(t, "3 days ago", RelativeDay(day(7, 8), now))
	assert.Equal(t, "Mar 1, 2026", RelativeDay(day(0, 8), now))
}
