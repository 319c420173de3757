package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/guitarcoach/pkg/models"
)

// SQLBackend stores records in sqlite or postgres through sqlx
type SQLBackend struct {
	db       *sqlx.DB
	driver   string
	now      func() time.Time
	progress *ProgressRepository
	stats    *StatsRepository
	sessions *SessionRepository
}

// NewSQLBackend wraps an open connection
func NewSQLBackend(db *sqlx.DB, driver string, now func() time.Time) *SQLBackend {
	return &SQLBackend{
		db:       db,
		driver:   driver,
		now:      now,
		progress: NewProgressRepository(db),
		stats:    NewStatsRepository(db),
		sessions: NewSessionRepository(db),
	}
}

// Init creates the tables and the default statistics row
func (b *SQLBackend) Init(ctx context.Context) error {
	for _, stmt := range schema(b.driver) {
		if _, err := b.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return b.stats.EnsureDefault(ctx, models.DefaultStats(b.now()))
}

func (b *SQLBackend) UpsertProgress(ctx context.Context, progress *models.UserProgress) error {
	return b.progress.Upsert(ctx, progress)
}

func (b *SQLBackend) ListProgress(ctx context.Context, category models.Category) ([]models.UserProgress, error) {
	return b.progress.List(ctx, category)
}

func (b *SQLBackend) GetItemProgress(ctx context.Context, category models.Category, itemID string) (*models.UserProgress, error) {
	return b.progress.Get(ctx, category, itemID)
}

func (b *SQLBackend) GetStats(ctx context.Context) (*models.UserStats, error) {
	return b.stats.Get(ctx)
}

func (b *SQLBackend) SaveStats(ctx context.Context, stats *models.UserStats) error {
	return b.stats.Save(ctx, stats)
}

func (b *SQLBackend) AppendSession(ctx context.Context, session *models.PracticeSession) error {
	return b.sessions.Create(ctx, session)
}

func (b *SQLBackend) ListSessionsSince(ctx context.Context, cutoff time.Time) ([]models.PracticeSession, error) {
	return b.sessions.ListSince(ctx, cutoff)
}

// Clear deletes all records. The three deletes are not wrapped in a transaction.
func (b *SQLBackend) Clear(ctx context.Context) error {
	if err := b.progress.DeleteAll(ctx); err != nil {
		return err
	}
	if err := b.stats.DeleteAll(ctx); err != nil {
		return err
	}
	if err := b.sessions.DeleteAll(ctx); err != nil {
		return err
	}
	return b.stats.EnsureDefault(ctx, models.DefaultStats(b.now()))
}

// Close closes the database connection
func (b *SQLBackend) Close() error {
	return b.db.Close()
}

func utcPtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}
