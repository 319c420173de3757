package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Driver names registered by the imported SQL drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// SQLiteFileName is the database file created inside the data directory
const SQLiteFileName = "guitar_progress.db"

// Connect opens a database connection.
// For sqlite the source is a data directory, for postgres a DSN.
func Connect(driver, source string) (*sqlx.DB, error) {
	dsn := source
	if driver == DriverSQLite {
		if err := os.MkdirAll(source, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dsn = filepath.Join(source, SQLiteFileName)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	return db, nil
}

// schema returns the CREATE statements for the given driver
func schema(driver string) []string {
	id := "INTEGER PRIMARY KEY AUTOINCREMENT"
	ts := "TIMESTAMP"
	if driver == DriverPostgres {
		id = "BIGSERIAL PRIMARY KEY"
		ts = "TIMESTAMPTZ"
	}

	return []string{
		`CREATE TABLE IF NOT EXISTS user_progress (
			id ` + id + `,
			category TEXT NOT NULL,
			item_id TEXT NOT NULL,
			item_name TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			practice_time INTEGER NOT NULL DEFAULT 0,
			last_practiced ` + ts + `,
			difficulty TEXT,
			score INTEGER,
			notes TEXT,
			created_at ` + ts + ` NOT NULL,
			updated_at ` + ts + ` NOT NULL,
			UNIQUE(category, item_id)
		)`,
		`CREATE TABLE IF NOT EXISTS user_stats (
			id ` + id + `,
			total_practice_time INTEGER NOT NULL DEFAULT 0,
			current_streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			last_practice_date ` + ts + `,
			chords_learned INTEGER NOT NULL DEFAULT 0,
			scales_learned INTEGER NOT NULL DEFAULT 0,
			exercises_completed INTEGER NOT NULL DEFAULT 0,
			lessons_completed INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			experience INTEGER NOT NULL DEFAULT 0,
			created_at ` + ts + ` NOT NULL,
			updated_at ` + ts + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS practice_sessions (
			id ` + id + `,
			category TEXT NOT NULL,
			item_id TEXT NOT NULL,
			item_name TEXT NOT NULL,
			duration INTEGER NOT NULL,
			date ` + ts + ` NOT NULL,
			notes TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_practice_sessions_date ON practice_sessions (date)`,
	}
}
