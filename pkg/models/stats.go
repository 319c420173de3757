package models

import "time"

// UserStats is the single aggregate row derived from progress updates
type UserStats struct {
	ID                 int64      `json:"id" db:"id"`
	TotalPracticeTime  int        `json:"total_practice_time" db:"total_practice_time"` // Seconds
	CurrentStreak      int        `json:"current_streak" db:"current_streak"`           // Days
	LongestStreak      int        `json:"longest_streak" db:"longest_streak"`           // Days
	LastPracticeDate   *time.Time `json:"last_practice_date,omitempty" db:"last_practice_date"`
	ChordsLearned      int        `json:"chords_learned" db:"chords_learned"`
	ScalesLearned      int        `json:"scales_learned" db:"scales_learned"`
	ExercisesCompleted int        `json:"exercises_completed" db:"exercises_completed"`
	LessonsCompleted   int        `json:"lessons_completed" db:"lessons_completed"`
	Level              int        `json:"level" db:"level"`
	Experience         int        `json:"experience" db:"experience"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// DefaultStats returns the zeroed statistics row used before any practice
func DefaultStats(now time.Time) UserStats {
	return UserStats{
		ID:        1,
		Level:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
