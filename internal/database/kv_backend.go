package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/example/guitarcoach/pkg/models"
)

// Keys of the documents kept by KVBackend, one JSON file each
const (
	keyProgress = "user_progress"
	keyStats    = "user_stats"
	keySessions = "practice_sessions"
)

// KVBackend is the key-value fallback: each record set is one JSON document in a
// directory, rewritten synchronously on every change.
type KVBackend struct {
	dir string
	now func() time.Time
	mu  sync.RWMutex
}

// NewKVBackend creates a key-value backend rooted at dir
func NewKVBackend(dir string, now func() time.Time) *KVBackend {
	if now == nil {
		now = time.Now
	}
	return &KVBackend{dir: dir, now: now}
}

// Init creates the directory and the default statistics document
func (b *KVBackend) Init(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var stats *models.UserStats
	if err := b.read(keyStats, &stats); err != nil {
		return err
	}
	if stats == nil {
		def := models.DefaultStats(b.now())
		return b.write(keyStats, &def)
	}
	return nil
}

func (b *KVBackend) UpsertProgress(ctx context.Context, progress *models.UserProgress) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var all []models.UserProgress
	if err := b.read(keyProgress, &all); err != nil {
		return err
	}

	idx := -1
	var maxID int64
	for i, p := range all {
		if p.Category == progress.Category && p.ItemID == progress.ItemID {
			idx = i
		}
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	if idx >= 0 {
		progress.ID = all[idx].ID
		progress.CreatedAt = all[idx].CreatedAt
		all[idx] = *progress
	} else {
		progress.ID = maxID + 1
		all = append(all, *progress)
	}
	return b.write(keyProgress, all)
}

func (b *KVBackend) ListProgress(ctx context.Context, category models.Category) ([]models.UserProgress, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var all []models.UserProgress
	if err := b.read(keyProgress, &all); err != nil {
		return nil, err
	}

	filtered := make([]models.UserProgress, 0, len(all))
	for _, p := range all {
		if category == "" || p.Category == category {
			filtered = append(filtered, p)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].UpdatedAt.Equal(filtered[j].UpdatedAt) {
			return filtered[i].ID > filtered[j].ID
		}
		return filtered[i].UpdatedAt.After(filtered[j].UpdatedAt)
	})
	return filtered, nil
}

func (b *KVBackend) GetItemProgress(ctx context.Context, category models.Category, itemID string) (*models.UserProgress, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var all []models.UserProgress
	if err := b.read(keyProgress, &all); err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.Category == category && p.ItemID == itemID {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (b *KVBackend) GetStats(ctx context.Context) (*models.UserStats, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var stats *models.UserStats
	if err := b.read(keyStats, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (b *KVBackend) SaveStats(ctx context.Context, stats *models.UserStats) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if stats.ID == 0 {
		stats.ID = 1
	}
	return b.write(keyStats, stats)
}

func (b *KVBackend) AppendSession(ctx context.Context, session *models.PracticeSession) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var sessions []models.PracticeSession
	if err := b.read(keySessions, &sessions); err != nil {
		return err
	}
	var maxID int64
	for _, s := range sessions {
		if s.ID > maxID {
			maxID = s.ID
		}
	}
	session.ID = maxID + 1
	sessions = append(sessions, *session)
	return b.write(keySessions, sessions)
}

func (b *KVBackend) ListSessionsSince(ctx context.Context, cutoff time.Time) ([]models.PracticeSession, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var sessions []models.PracticeSession
	if err := b.read(keySessions, &sessions); err != nil {
		return nil, err
	}

	recent := make([]models.PracticeSession, 0, len(sessions))
	for _, s := range sessions {
		if !s.Date.Before(cutoff) {
			recent = append(recent, s)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		if recent[i].Date.Equal(recent[j].Date) {
			return recent[i].ID > recent[j].ID
		}
		return recent[i].Date.After(recent[j].Date)
	})
	return recent, nil
}

func (b *KVBackend) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, key := range []string{keyProgress, keyStats, keySessions} {
		if err := os.Remove(b.path(key)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	def := models.DefaultStats(b.now())
	return b.write(keyStats, &def)
}

// Close is a no-op, every write is already on disk
func (b *KVBackend) Close() error {
	return nil
}

func (b *KVBackend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// read decodes a document into v, leaving v untouched when the document doesn't exist
func (b *KVBackend) read(key string, v interface{}) error {
	data, err := os.ReadFile(b.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// write replaces a document atomically
func (b *KVBackend) write(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	tmp := b.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, b.path(key)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
