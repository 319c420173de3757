// Package app wires configuration, storage, audio and scheduling together and
// implements the command line.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/example/guitarcoach/internal/audio"
	"github.com/example/guitarcoach/internal/catalog"
	"github.com/example/guitarcoach/internal/config"
	"github.com/example/guitarcoach/internal/database"
	"github.com/example/guitarcoach/internal/notify"
	"github.com/example/guitarcoach/internal/scheduler"
)

// readyTimeout bounds how long a command waits for storage initialisation
const readyTimeout = 10 * time.Second

// App owns every long-lived component. Nothing here is global; the caller
// builds one App and closes it.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	loc     *time.Location
	out     io.Writer
	now     func() time.Time
	catalog *catalog.Catalog
	store   *database.Store

	device audio.Device
	// One generator per activity, so a chord and a metronome click can overlap
	chords    *audio.Generator
	scales    *audio.Generator
	strums    *audio.Generator
	metronome *audio.Generator
}

// Option customises App construction
type Option func(*appOptions)

type appOptions struct {
	device audio.Device
	now    func() time.Time
}

// WithDevice replaces the system audio device
func WithDevice(d audio.Device) Option {
	return func(o *appOptions) { o.device = d }
}

// WithClock replaces time.Now for storage
func WithClock(now func() time.Time) Option {
	return func(o *appOptions) { o.now = now }
}

// New builds the application from cfg. Storage initialises in the background.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, out io.Writer, opts ...Option) (*App, error) {
	o := appOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	backend, err := database.NewBackend(database.BackendOptions{
		Type:    cfg.DBType,
		DataDir: cfg.AppDataDir,
		DSN:     cfg.DBDSN,
		Now:     o.now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}
	store := database.Open(ctx, backend, log,
		database.WithClock(o.now),
		database.WithLocation(loc))

	device := o.device
	if device == nil {
		if cfg.Audio.Enabled {
			device = audio.NewOtoDevice(cfg.Audio.SampleRate)
		} else {
			device = audio.Disabled{Rate: cfg.Audio.SampleRate}
		}
	}

	return &App{
		cfg:       cfg,
		log:       log,
		loc:       loc,
		out:       out,
		now:       o.now,
		catalog:   cat,
		store:     store,
		device:    device,
		chords:    audio.NewGenerator(device, log),
		scales:    audio.NewGenerator(device, log),
		strums:    audio.NewGenerator(device, log),
		metronome: audio.NewGenerator(device, log),
	}, nil
}

// Close stops playback and releases storage and the audio device
func (a *App) Close() error {
	for _, g := range []*audio.Generator{a.chords, a.scales, a.strums, a.metronome} {
		g.Dispose()
	}
	var errs []error
	if err := a.device.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.store.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Store returns the progress store
func (a *App) Store() *database.Store {
	return a.store
}

func (a *App) waitStore(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	if err := a.store.WaitReady(ctx); err != nil {
		return fmt.Errorf("storage not ready: %w", err)
	}
	return nil
}

// notifier sends through Telegram when a chat is configured and always logs
func (a *App) notifier() scheduler.Notifier {
	logNotifier := notify.NewLog(a.log)
	rc := a.cfg.Reminder
	if rc.TelegramToken == "" || rc.TelegramChatID == 0 {
		return logNotifier
	}
	tg, err := notify.NewTelegram(rc.TelegramToken, rc.TelegramChatID, a.log)
	if err != nil {
		a.log.Warn("Telegram disabled", zap.Error(err))
		return logNotifier
	}
	return notify.Multi{logNotifier, tg}
}

func (a *App) newScheduler() *scheduler.Scheduler {
	rc := a.cfg.Reminder
	return scheduler.New(a.store, a.notifier(), scheduler.Options{
		Location:  a.loc,
		Time:      rc.Time,
		StartHour: rc.StartHour,
		EndHour:   rc.EndHour,
		WeekDays:  a.cfg.Practice.WeekDays,
		Now:       a.now,
	}, a.log)
}
