package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/guitarcoach/pkg/models"
)

const progressColumns = `id, category, item_id, item_name, completed, practice_time,
	last_practiced, difficulty, score, notes, created_at, updated_at`

// ProgressRepository handles database operations for user progress
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository creates a new repository instance
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Upsert inserts a progress record or replaces the fields of the existing
// (category, item_id) record. created_at of an existing record is kept.
func (r *ProgressRepository) Upsert(ctx context.Context, p *models.UserProgress) error {
	query := r.db.Rebind(`
		INSERT INTO user_progress (
			category, item_id, item_name, completed, practice_time,
			last_practiced, difficulty, score, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (category, item_id) DO UPDATE SET
			item_name = excluded.item_name,
			completed = excluded.completed,
			practice_time = excluded.practice_time,
			last_practiced = excluded.last_practiced,
			difficulty = excluded.difficulty,
			score = excluded.score,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`)
	_, err := r.db.ExecContext(ctx, query,
		p.Category,
		p.ItemID,
		p.ItemName,
		p.Completed,
		p.PracticeTime,
		p.LastPracticed.UTC(),
		p.Difficulty,
		p.Score,
		p.Notes,
		p.CreatedAt.UTC(),
		p.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}

	stored, err := r.Get(ctx, p.Category, p.ItemID)
	if err != nil {
		return err
	}
	if stored != nil {
		p.ID = stored.ID
		p.CreatedAt = stored.CreatedAt
	}
	return nil
}

// Get returns progress for one item, or nil when there is none
func (r *ProgressRepository) Get(ctx context.Context, category models.Category, itemID string) (*models.UserProgress, error) {
	var progress models.UserProgress
	query := r.db.Rebind(`SELECT ` + progressColumns + ` FROM user_progress WHERE category = ? AND item_id = ?`)
	err := r.db.GetContext(ctx, &progress, query, category, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &progress, nil
}

// List returns progress records, most recently updated first
func (r *ProgressRepository) List(ctx context.Context, category models.Category) ([]models.UserProgress, error) {
	progress := []models.UserProgress{}

	var err error
	if category == "" {
		err = r.db.SelectContext(ctx, &progress,
			`SELECT `+progressColumns+` FROM user_progress ORDER BY updated_at DESC, id DESC`)
	} else {
		err = r.db.SelectContext(ctx, &progress,
			r.db.Rebind(`SELECT `+progressColumns+` FROM user_progress WHERE category = ? ORDER BY updated_at DESC, id DESC`),
			category)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return progress, nil
}

// DeleteAll removes every progress record
func (r *ProgressRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM user_progress"); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	return nil
}
