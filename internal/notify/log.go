package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/guitarcoach/internal/scheduler"
)

// Log writes notifications to the application log. It is used when no
// Telegram chat is configured.
type Log struct {
	log *zap.Logger
	now func() time.Time
}

// NewLog creates a log notifier
func NewLog(log *zap.Logger) *Log {
	return &Log{log: log.With(zap.String("component", "notify")), now: time.Now}
}

func (l *Log) SendReminder(_ context.Context, r scheduler.Reminder) error {
	l.log.Info(ReminderText(r, l.now()), zap.Int("streak", r.CurrentStreak))
	return nil
}

func (l *Log) SendSummary(_ context.Context, s scheduler.WeeklySummary) error {
	l.log.Info(SummaryText(s), zap.Int("total_seconds", s.Total), zap.Int("sessions", s.Sessions))
	return nil
}

// Multi fans notifications out to several notifiers, returning the first error
type Multi []scheduler.Notifier

func (m Multi) SendReminder(ctx context.Context, r scheduler.Reminder) error {
	var first error
	for _, n := range m {
		if err := n.SendReminder(ctx, r); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) SendSummary(ctx context.Context, s scheduler.WeeklySummary) error {
	var first error
	for _, n := range m {
		if err := n.SendSummary(ctx, s); err != nil && first == nil {
			first = err
		}
	}
	return first
}
