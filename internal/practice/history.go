package practice

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/example/guitarcoach/pkg/models"
)

// DayTotal is the practice time of one calendar day
type DayTotal struct {
	Day     time.Time
	Seconds int
}

// Summary aggregates a window of practice sessions
type Summary struct {
	Days      []DayTotal // Oldest first, days without practice omitted
	Total     int
	Sessions  int
	Completed map[models.Category]int
}

// StartOfDay truncates t to local midnight in its location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DailyTotals groups session durations by calendar day in loc
func DailyTotals(sessions []models.PracticeSession, loc *time.Location) []DayTotal {
	byDay := make(map[time.Time]int)
	for _, s := range sessions {
		day := StartOfDay(s.Date.In(loc))
		byDay[day] += s.Duration
	}

	totals := make([]DayTotal, 0, len(byDay))
	for day, seconds := range byDay {
		totals = append(totals, DayTotal{Day: day, Seconds: seconds})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Day.Before(totals[j].Day)
	})
	return totals
}

// CompletedCounts counts completed progress records per category
func CompletedCounts(progress []models.UserProgress) map[models.Category]int {
	counts := make(map[models.Category]int, len(models.Categories))
	for _, c := range models.Categories {
		counts[c] = 0
	}
	for _, p := range progress {
		if p.Completed {
			counts[p.Category]++
		}
	}
	return counts
}

// Summarize builds the weekly overview shown on the progress screen
func Summarize(sessions []models.PracticeSession, progress []models.UserProgress, loc *time.Location) Summary {
	days := DailyTotals(sessions, loc)
	total := 0
	for _, d := range days {
		total += d.Seconds
	}
	return Summary{
		Days:      days,
		Total:     total,
		Sessions:  len(sessions),
		Completed: CompletedCounts(progress),
	}
}

// FormatDuration renders seconds as "1h 5m" or "12m"
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// RelativeDay renders a session date as "Today", "Yesterday", "3 days ago" or a date
func RelativeDay(date, now time.Time) string {
	days := int(math.Round(StartOfDay(now).Sub(StartOfDay(date.In(now.Location()))).Hours() / 24))
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	}
	return date.In(now.Location()).Format("Jan 2, 2006")
}
