// Package notify delivers practice reminders and weekly summaries.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/guitarcoach/internal/practice"
	"github.com/example/guitarcoach/internal/scheduler"
	"github.com/example/guitarcoach/pkg/models"
)

// ReminderText renders the reminder message
func ReminderText(r scheduler.Reminder, now time.Time) string {
	var b strings.Builder
	b.WriteString("🎸 Time to practise! You haven't played today.")
	switch {
	case r.CurrentStreak > 0:
		fmt.Fprintf(&b, " Keep your %d-day streak alive.", r.CurrentStreak)
	case r.LastPractice != nil:
		fmt.Fprintf(&b, " Last practice: %s.", practice.RelativeDay(*r.LastPractice, now))
	}
	return b.String()
}

// SummaryText renders the weekly summary message
func SummaryText(s scheduler.WeeklySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Weekly practice: %s in %d sessions over %d days\n",
		practice.FormatDuration(s.Total), s.Sessions, len(s.Days))
	for _, d := range s.Days {
		fmt.Fprintf(&b, "  %s: %s\n", d.Day.Format("Mon Jan 2"), practice.FormatDuration(d.Seconds))
	}
	fmt.Fprintf(&b, "Learned: %d chords, %d scales, %d exercises, %d lessons\n",
		s.Completed[models.CategoryChords],
		s.Completed[models.CategoryScales],
		s.Completed[models.CategoryExercises],
		s.Completed[models.CategoryLessons])
	fmt.Fprintf(&b, "Level %d, %d XP, streak %d (best %d)",
		s.Stats.Level, s.Stats.Experience, s.Stats.CurrentStreak, s.Stats.LongestStreak)
	return b.String()
}
