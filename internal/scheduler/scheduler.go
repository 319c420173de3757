package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/example/guitarcoach/internal/practice"
	"github.com/example/guitarcoach/pkg/models"
)

// Default notification window
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Reminder tells the learner they haven't practised today
type Reminder struct {
	CurrentStreak int
	LastPractice  *time.Time
	Level         int
}

// WeeklySummary is the practice overview sent once a week
type WeeklySummary struct {
	practice.Summary
	Stats models.UserStats
}

// Notifier interface for sending notifications
type Notifier interface {
	SendReminder(ctx context.Context, r Reminder) error
	SendSummary(ctx context.Context, s WeeklySummary) error
}

// PracticeSource is the read side of the progress store
type PracticeSource interface {
	GetStats(ctx context.Context) models.UserStats
	ListHistory(ctx context.Context, days int) []models.PracticeSession
	ListProgress(ctx context.Context, category models.Category) []models.UserProgress
}

// Options configures when jobs run
type Options struct {
	Location *time.Location
	// Time of day for the reminder check and the Sunday summary, "HH:MM"
	Time      string
	StartHour int
	EndHour   int
	WeekDays  int
	Now       func() time.Time
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	source    PracticeSource
	opts      Options
	log       *zap.Logger
}

// New creates a new scheduler instance
func New(source PracticeSource, notifier Notifier, opts Options, log *zap.Logger) *Scheduler {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Time == "" {
		opts.Time = "19:00"
	}
	if opts.WeekDays <= 0 {
		opts.WeekDays = 7
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(opts.Location),
		notifier:  notifier,
		source:    source,
		opts:      opts,
		log:       log.With(zap.String("component", "scheduler")),
	}
}

// Start schedules the daily reminder check and the weekly summary and runs
// them in the background until Stop
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.Every(1).Day().At(s.opts.Time).Do(func() {
		if _, err := s.CheckReminder(ctx); err != nil {
			s.log.Error("Reminder check failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}

	_, err = s.scheduler.Every(1).Sunday().At(s.opts.Time).Do(func() {
		if err := s.SendWeeklySummary(ctx); err != nil {
			s.log.Error("Weekly summary failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule weekly summary: %w", err)
	}

	s.scheduler.StartAsync()
	s.log.Info("Scheduler started",
		zap.String("time", s.opts.Time),
		zap.Int("start_hour", s.opts.StartHour),
		zap.Int("end_hour", s.opts.EndHour))
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// InNotificationHours reports whether hour lies in the inclusive window. A
// window whose start is after its end wraps past midnight.
func InNotificationHours(hour, start, end int) bool {
	if start <= end {
		return hour >= start && hour <= end
	}
	return hour >= start || hour <= end
}

// CheckReminder sends a reminder when nothing was practised today and the
// current hour is inside the notification window. It reports whether a
// reminder was sent.
func (s *Scheduler) CheckReminder(ctx context.Context) (bool, error) {
	now := s.opts.Now().In(s.opts.Location)

	if !InNotificationHours(now.Hour(), s.opts.StartHour, s.opts.EndHour) {
		s.log.Info("Outside notification hours, skipping reminder",
			zap.Int("hour", now.Hour()),
			zap.Int("start_hour", s.opts.StartHour),
			zap.Int("end_hour", s.opts.EndHour))
		return false, nil
	}

	stats := s.source.GetStats(ctx)
	if stats.LastPracticeDate != nil && practice.SameDay(*stats.LastPracticeDate, now) {
		s.log.Debug("Already practised today, no reminder needed")
		return false, nil
	}

	r := Reminder{
		CurrentStreak: stats.CurrentStreak,
		LastPractice:  stats.LastPracticeDate,
		Level:         stats.Level,
	}
	// A streak is only alive if the last practice was yesterday
	if r.LastPractice == nil || !practice.SameDay(*r.LastPractice, now.AddDate(0, 0, -1)) {
		r.CurrentStreak = 0
	}

	if err := s.notifier.SendReminder(ctx, r); err != nil {
		return false, fmt.Errorf("failed to send reminder: %w", err)
	}
	s.log.Info("Practice reminder sent", zap.Int("streak", r.CurrentStreak))
	return true, nil
}

// BuildWeeklySummary aggregates the trailing week
func (s *Scheduler) BuildWeeklySummary(ctx context.Context) WeeklySummary {
	sessions := s.source.ListHistory(ctx, s.opts.WeekDays)
	progress := s.source.ListProgress(ctx, "")
	return WeeklySummary{
		Summary: practice.Summarize(sessions, progress, s.opts.Location),
		Stats:   s.source.GetStats(ctx),
	}
}

// SendWeeklySummary builds and sends the weekly overview
func (s *Scheduler) SendWeeklySummary(ctx context.Context) error {
	summary := s.BuildWeeklySummary(ctx)
	if err := s.notifier.SendSummary(ctx, summary); err != nil {
		return fmt.Errorf("failed to send weekly summary: %w", err)
	}
	s.log.Info("Weekly summary sent",
		zap.Int("sessions", summary.Sessions),
		zap.Int("total_seconds", summary.Total))
	return nil
}
