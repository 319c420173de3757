package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/guitarcoach/pkg/models"
)

// StatsRepository handles the single aggregate statistics row
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new repository instance
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Get returns the statistics row, or nil when it doesn't exist yet
func (r *StatsRepository) Get(ctx context.Context) (*models.UserStats, error) {
	var stats models.UserStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT id, total_practice_time, current_streak, longest_streak, last_practice_date,
		       chords_learned, scales_learned, exercises_completed, lessons_completed,
		       level, experience, created_at, updated_at
		FROM user_stats
		ORDER BY id
		LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}
	return &stats, nil
}

// Create inserts a statistics row
func (r *StatsRepository) Create(ctx context.Context, stats *models.UserStats) error {
	query := r.db.Rebind(`
		INSERT INTO user_stats (
			id, total_practice_time, current_streak, longest_streak, last_practice_date,
			chords_learned, scales_learned, exercises_completed, lessons_completed,
			level, experience, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if stats.ID == 0 {
		stats.ID = 1
	}
	_, err := r.db.ExecContext(ctx, query, statsArgs(stats)...)
	if err != nil {
		return fmt.Errorf("failed to create statistics: %w", err)
	}
	return nil
}

// Save updates the statistics row, creating it when missing
func (r *StatsRepository) Save(ctx context.Context, stats *models.UserStats) error {
	if stats.ID == 0 {
		stats.ID = 1
	}
	query := r.db.Rebind(`
		UPDATE user_stats SET
			total_practice_time = ?,
			current_streak = ?,
			longest_streak = ?,
			last_practice_date = ?,
			chords_learned = ?,
			scales_learned = ?,
			exercises_completed = ?,
			lessons_completed = ?,
			level = ?,
			experience = ?,
			updated_at = ?
		WHERE id = ?
	`)
	result, err := r.db.ExecContext(ctx, query,
		stats.TotalPracticeTime,
		stats.CurrentStreak,
		stats.LongestStreak,
		utcPtr(stats.LastPracticeDate),
		stats.ChordsLearned,
		stats.ScalesLearned,
		stats.ExercisesCompleted,
		stats.LessonsCompleted,
		stats.Level,
		stats.Experience,
		stats.UpdatedAt.UTC(),
		stats.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update statistics: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return r.Create(ctx, stats)
	}
	return nil
}

// EnsureDefault inserts the zeroed statistics row when the table is empty
func (r *StatsRepository) EnsureDefault(ctx context.Context, stats models.UserStats) error {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM user_stats"); err != nil {
		return fmt.Errorf("failed to count statistics: %w", err)
	}
	if count > 0 {
		return nil
	}
	return r.Create(ctx, &stats)
}

// DeleteAll removes the statistics row
func (r *StatsRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM user_stats"); err != nil {
		return fmt.Errorf("failed to clear statistics: %w", err)
	}
	return nil
}

func statsArgs(stats *models.UserStats) []interface{} {
	return []interface{}{
		stats.ID,
		stats.TotalPracticeTime,
		stats.CurrentStreak,
		stats.LongestStreak,
		utcPtr(stats.LastPracticeDate),
		stats.ChordsLearned,
		stats.ScalesLearned,
		stats.ExercisesCompleted,
		stats.LessonsCompleted,
		stats.Level,
		stats.Experience,
		stats.CreatedAt.UTC(),
		stats.UpdatedAt.UTC(),
	}
}
