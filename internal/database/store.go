package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/guitarcoach/internal/practice"
	"github.com/example/guitarcoach/pkg/models"
)

// DefaultHistoryDays is the window used by ListHistory when days is not positive
const DefaultHistoryDays = 30

// Store is the progress store used by the application. It wraps a Backend,
// initialises it in the background and keeps the statistics row in step with
// every progress update.
type Store struct {
	backend  Backend
	log      *zap.Logger
	leveling *practice.Leveling
	now      func() time.Time
	loc      *time.Location

	ready   chan struct{}
	done    chan struct{}
	initErr error
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the timezone that defines calendar days for streaks and history
func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

// WithLeveling replaces the default experience formula
func WithLeveling(l *practice.Leveling) Option {
	return func(s *Store) { s.leveling = l }
}

// Open returns a store whose backend is initialised asynchronously. Operations
// issued before initialisation finishes are skipped with a warning.
func Open(ctx context.Context, backend Backend, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		backend:  backend,
		log:      log.With(zap.String("component", "store")),
		leveling: practice.NewLeveling(),
		now:      time.Now,
		loc:      time.Local,
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.init(ctx)
	return s
}

func (s *Store) init(ctx context.Context) {
	defer close(s.done)
	if err := s.backend.Init(ctx); err != nil {
		s.initErr = err
		s.log.Error("Failed to initialise storage", zap.Error(err))
		return
	}
	s.log.Debug("Storage ready")
	close(s.ready)
}

// IsReady reports whether initialisation has completed successfully
func (s *Store) IsReady() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Ready is closed once the backend is initialised. It is never closed when
// initialisation fails.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// WaitReady blocks until initialisation finishes or ctx is done. It returns the
// initialisation error when the backend could not be prepared.
func (s *Store) WaitReady(ctx context.Context) error {
	select {
	case <-s.done:
		if s.initErr != nil {
			return fmt.Errorf("init: %w: %w", ErrStorageFailure, s.initErr)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *Store) notReady(op string) bool {
	if s.IsReady() {
		return false
	}
	s.log.Warn("Storage not ready, skipping operation", zap.String("op", op))
	return true
}

func (s *Store) fail(op string, err error) error {
	s.log.Error("Storage operation failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w: %w", op, ErrStorageFailure, err)
}

// UpsertProgress creates or replaces the record for (category, item_id) and folds
// it into the statistics row. Experience is earned for the record's practice
// time on every call; the learned counters only move when the item becomes
// completed for the first time.
func (s *Store) UpsertProgress(ctx context.Context, rec *models.UserProgress) error {
	const op = "upsert progress"
	if !rec.Category.Valid() || rec.ItemID == "" {
		return fmt.Errorf("%s: %w: category %q item %q", op, ErrInvalidRecord, rec.Category, rec.ItemID)
	}
	if s.notReady(op) {
		return nil
	}

	now := s.clock()
	if rec.LastPracticed.IsZero() {
		rec.LastPracticed = now
	}
	if rec.Difficulty == "" {
		rec.Difficulty = models.DifficultyBeginner
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now

	prev, err := s.backend.GetItemProgress(ctx, rec.Category, rec.ItemID)
	if err != nil {
		return s.fail(op, err)
	}
	newlyCompleted := rec.Completed && (prev == nil || !prev.Completed)

	if err := s.backend.UpsertProgress(ctx, rec); err != nil {
		return s.fail(op, err)
	}

	if err := s.updateStats(ctx, *rec, newlyCompleted, now); err != nil {
		return s.fail("update stats", err)
	}

	s.log.Debug("Progress saved",
		zap.String("category", string(rec.Category)),
		zap.String("item_id", rec.ItemID),
		zap.Int("practice_time", rec.PracticeTime),
		zap.Bool("completed", rec.Completed))
	return nil
}

func (s *Store) updateStats(ctx context.Context, rec models.UserProgress, newlyCompleted bool, now time.Time) error {
	stats, err := s.backend.GetStats(ctx)
	if err != nil {
		return err
	}
	if stats == nil {
		def := models.DefaultStats(now)
		stats = &def
	}
	s.leveling.Apply(stats, rec, newlyCompleted, now)
	return s.backend.SaveStats(ctx, stats)
}

// ListProgress returns the records of one category, or all records when category
// is empty, most recently updated first. Failures yield an empty list.
func (s *Store) ListProgress(ctx context.Context, category models.Category) []models.UserProgress {
	const op = "list progress"
	if s.notReady(op) {
		return []models.UserProgress{}
	}
	progress, err := s.backend.ListProgress(ctx, category)
	if err != nil {
		_ = s.fail(op, err)
		return []models.UserProgress{}
	}
	return progress
}

// GetItemProgress returns the record for one item, or nil when it was never
// practised or the store can't be read
func (s *Store) GetItemProgress(ctx context.Context, category models.Category, itemID string) *models.UserProgress {
	const op = "get item progress"
	if s.notReady(op) {
		return nil
	}
	progress, err := s.backend.GetItemProgress(ctx, category, itemID)
	if err != nil {
		_ = s.fail(op, err)
		return nil
	}
	return progress
}

// GetStats returns the statistics row, or zeroed defaults when it is missing or
// unreadable
func (s *Store) GetStats(ctx context.Context) models.UserStats {
	const op = "get stats"
	if s.notReady(op) {
		return models.DefaultStats(s.clock())
	}
	stats, err := s.backend.GetStats(ctx)
	if err != nil {
		_ = s.fail(op, err)
		return models.DefaultStats(s.clock())
	}
	if stats == nil {
		return models.DefaultStats(s.clock())
	}
	return *stats
}

// AppendSession adds an entry to the practice log
func (s *Store) AppendSession(ctx context.Context, session *models.PracticeSession) error {
	const op = "append session"
	if !session.Category.Valid() || session.ItemID == "" {
		return fmt.Errorf("%s: %w: category %q item %q", op, ErrInvalidRecord, session.Category, session.ItemID)
	}
	if session.Duration < 0 {
		return fmt.Errorf("%s: %w: negative duration", op, ErrInvalidRecord)
	}
	if s.notReady(op) {
		return nil
	}
	if session.Date.IsZero() {
		session.Date = s.clock()
	}
	if err := s.backend.AppendSession(ctx, session); err != nil {
		return s.fail(op, err)
	}
	return nil
}

// RecordPractice saves one finished practice of an item: the progress record
// carries this practice's duration, and a session entry is appended.
func (s *Store) RecordPractice(ctx context.Context, rec *models.UserProgress, notes *string) error {
	if err := s.UpsertProgress(ctx, rec); err != nil {
		return err
	}
	return s.AppendSession(ctx, &models.PracticeSession{
		Category: rec.Category,
		ItemID:   rec.ItemID,
		ItemName: rec.ItemName,
		Duration: rec.PracticeTime,
		Date:     rec.LastPracticed,
		Notes:    notes,
	})
}

// ListHistory returns sessions from the trailing window of days, newest first
func (s *Store) ListHistory(ctx context.Context, days int) []models.PracticeSession {
	const op = "list history"
	if s.notReady(op) {
		return []models.PracticeSession{}
	}
	if days <= 0 {
		days = DefaultHistoryDays
	}
	cutoff := s.clock().AddDate(0, 0, -days)
	sessions, err := s.backend.ListSessionsSince(ctx, cutoff)
	if err != nil {
		_ = s.fail(op, err)
		return []models.PracticeSession{}
	}
	return sessions
}

// ClearAll removes all progress, sessions and statistics and recreates the
// default statistics row
func (s *Store) ClearAll(ctx context.Context) error {
	const op = "clear all"
	if s.notReady(op) {
		return nil
	}
	if err := s.backend.Clear(ctx); err != nil {
		return s.fail(op, err)
	}
	s.log.Info("All practice data cleared")
	return nil
}

// Close releases the backend
func (s *Store) Close() error {
	return s.backend.Close()
}
