package models

import "time"

// Category groups practice items the same way the learning screens do
type Category string

const (
	CategoryChords    Category = "chords"
	CategoryScales    Category = "scales"
	CategoryStrumming Category = "strumming"
	CategoryExercises Category = "exercises"
	CategoryLessons   Category = "lessons"
)

// Categories lists every known category in display order
var Categories = []Category{
	CategoryChords,
	CategoryScales,
	CategoryStrumming,
	CategoryExercises,
	CategoryLessons,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Difficulty is the learner-facing difficulty of a practice item
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// UserProgress tracks practice of a single item, keyed by (category, item_id)
type UserProgress struct {
	ID            int64      `json:"id" db:"id"`
	Category      Category   `json:"category" db:"category"`
	ItemID        string     `json:"item_id" db:"item_id"`
	ItemName      string     `json:"item_name" db:"item_name"`
	Completed     bool       `json:"completed" db:"completed"`
	PracticeTime  int        `json:"practice_time" db:"practice_time"` // Seconds
	LastPracticed time.Time  `json:"last_practiced" db:"last_practiced"`
	Difficulty    Difficulty `json:"difficulty" db:"difficulty"`
	Score         *int       `json:"score,omitempty" db:"score"` // 0-100 for exercises
	Notes         *string    `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
