package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/guitarcoach/pkg/models"
)

// Backend persists progress, statistics and sessions. Implementations are chosen
// once at startup and are interchangeable behind Store.
type Backend interface {
	// Init prepares storage and creates the default statistics row when missing
	Init(ctx context.Context) error

	UpsertProgress(ctx context.Context, progress *models.UserProgress) error
	// ListProgress returns records most recently updated first; an empty category means all
	ListProgress(ctx context.Context, category models.Category) ([]models.UserProgress, error)
	// GetItemProgress returns nil without error when the item was never practised
	GetItemProgress(ctx context.Context, category models.Category, itemID string) (*models.UserProgress, error)

	// GetStats returns nil without error when no statistics row exists
	GetStats(ctx context.Context) (*models.UserStats, error)
	SaveStats(ctx context.Context, stats *models.UserStats) error

	AppendSession(ctx context.Context, session *models.PracticeSession) error
	// ListSessionsSince returns sessions dated at or after cutoff, newest first
	ListSessionsSince(ctx context.Context, cutoff time.Time) ([]models.PracticeSession, error)

	// Clear removes every record and recreates the default statistics row
	Clear(ctx context.Context) error
	Close() error
}

// BackendOptions selects and locates a backend
type BackendOptions struct {
	Type    string // sqlite, postgres or kv
	DataDir string
	DSN     string
	Now     func() time.Time
}

// NewBackend constructs the backend named by opts.Type
func NewBackend(opts BackendOptions) (Backend, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	switch opts.Type {
	case "", "sqlite":
		db, err := Connect(DriverSQLite, opts.DataDir)
		if err != nil {
			return nil, err
		}
		return NewSQLBackend(db, DriverSQLite, now), nil
	case "postgres":
		db, err := Connect(DriverPostgres, opts.DSN)
		if err != nil {
			return nil, err
		}
		return NewSQLBackend(db, DriverPostgres, now), nil
	case "kv":
		return NewKVBackend(opts.DataDir, now), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", opts.Type)
}
