package models

import "time"

// PracticeSession is one entry of the append-only practice log
type PracticeSession struct {
	ID       int64     `json:"id" db:"id"`
	Category Category  `json:"category" db:"category"`
	ItemID   string    `json:"item_id" db:"item_id"`
	ItemName string    `json:"item_name" db:"item_name"`
	Duration int       `json:"duration" db:"duration"` // Seconds
	Date     time.Time `json:"date" db:"date"`
	Notes    *string   `json:"notes,omitempty" db:"notes"`
}
