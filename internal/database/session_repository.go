package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/guitarcoach/pkg/models"
)

// SessionRepository handles the append-only practice log
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new repository instance
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create appends a practice session
func (r *SessionRepository) Create(ctx context.Context, s *models.PracticeSession) error {
	args := []interface{}{s.Category, s.ItemID, s.ItemName, s.Duration, s.Date.UTC(), s.Notes}
	query := `INSERT INTO practice_sessions (category, item_id, item_name, duration, date, notes)
		VALUES (?, ?, ?, ?, ?, ?)`

	if r.db.DriverName() == DriverPostgres {
		// lib/pq doesn't implement LastInsertId
		err := r.db.QueryRowxContext(ctx, r.db.Rebind(query+" RETURNING id"), args...).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("failed to create practice session: %w", err)
		}
		return nil
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to create practice session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	s.ID = id
	return nil
}

// ListSince returns sessions dated at or after cutoff, newest first
func (r *SessionRepository) ListSince(ctx context.Context, cutoff time.Time) ([]models.PracticeSession, error) {
	sessions := []models.PracticeSession{}
	query := r.db.Rebind(`
		SELECT id, category, item_id, item_name, duration, date, notes
		FROM practice_sessions
		WHERE date >= ?
		ORDER BY date DESC, id DESC
	`)
	if err := r.db.SelectContext(ctx, &sessions, query, cutoff.UTC()); err != nil {
		return nil, fmt.Errorf("failed to get practice history: %w", err)
	}
	return sessions, nil
}

// DeleteAll removes every practice session
func (r *SessionRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM practice_sessions"); err != nil {
		return fmt.Errorf("failed to clear practice sessions: %w", err)
	}
	return nil
}
