// Package practice derives aggregate statistics from practice records.
package practice

import (
	"time"

	"github.com/example/guitarcoach/pkg/models"
)

// Leveling holds the experience and level formula parameters
type Leveling struct {
	// Experience awarded per whole minute of practice
	XPPerMinute int
	// Experience needed for each level
	XPPerLevel int
}

// NewLeveling returns the default formula: 10 XP per minute, a level every 1000 XP
func NewLeveling() *Leveling {
	return &Leveling{
		XPPerMinute: 10,
		XPPerLevel:  1000,
	}
}

// Experience converts practice seconds into experience. Partial minutes earn nothing.
func (l *Leveling) Experience(practiceSeconds int) int {
	if practiceSeconds <= 0 {
		return 0
	}
	return (practiceSeconds / 60) * l.XPPerMinute
}

// Level returns the level reached with xp experience, starting at 1
func (l *Leveling) Level(xp int) int {
	if xp <= 0 {
		return 1
	}
	return xp/l.XPPerLevel + 1
}

// ToNextLevel returns the experience earned inside the current level and the level size
func (l *Leveling) ToNextLevel(xp int) (int, int) {
	if xp <= 0 {
		return 0, l.XPPerLevel
	}
	return xp % l.XPPerLevel, l.XPPerLevel
}

// Apply folds one progress update into stats. newlyCompleted is true only when the
// item was not completed before this update, so repeat practice of a learned item
// does not count it twice.
func (l *Leveling) Apply(stats *models.UserStats, update models.UserProgress, newlyCompleted bool, now time.Time) {
	if newlyCompleted {
		switch update.Category {
		case models.CategoryChords:
			stats.ChordsLearned++
		case models.CategoryScales:
			stats.ScalesLearned++
		case models.CategoryExercises:
			stats.ExercisesCompleted++
		case models.CategoryLessons:
			stats.LessonsCompleted++
		}
	}

	if update.PracticeTime > 0 {
		stats.TotalPracticeTime += update.PracticeTime
	}
	stats.Experience += l.Experience(update.PracticeTime)
	stats.Level = l.Level(stats.Experience)

	UpdateStreak(stats, now)
	stats.UpdatedAt = now
}

// UpdateStreak records a practice at now. Practising on the calendar day after the
// last practice extends the streak, the same day leaves it alone, anything else
// starts over at 1.
func UpdateStreak(stats *models.UserStats, now time.Time) {
	switch {
	case stats.LastPracticeDate == nil:
		stats.CurrentStreak = 1
	case SameDay(*stats.LastPracticeDate, now):
		if stats.CurrentStreak == 0 {
			stats.CurrentStreak = 1
		}
	case SameDay(*stats.LastPracticeDate, now.AddDate(0, 0, -1)):
		stats.CurrentStreak++
	default:
		stats.CurrentStreak = 1
	}

	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	last := now
	stats.LastPracticeDate = &last
}

// SameDay reports whether a and b fall on the same calendar day in b's location
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
