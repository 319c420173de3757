package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/guitarcoach/pkg/models"
)

type fakeSource struct {
	stats    models.UserStats
	sessions []models.PracticeSession
	progress []models.UserProgress
	days     int
}

func (f *fakeSource) GetStats(context.Context) models.UserStats { return f.stats }

func (f *fakeSource) ListHistory(_ context.Context, days int) []models.PracticeSession {
	f.days = days
	return f.sessions
}

func (f *fakeSource) ListProgress(context.Context, models.Category) []models.UserProgress {
	return f.progress
}

type fakeNotifier struct {
	reminders []Reminder
	summaries []WeeklySummary
	err       error
}

func (f *fakeNotifier) SendReminder(_ context.Context, r Reminder) error {
	if f.err != nil {
		return f.err
	}
	f.reminders = append(f.reminders, r)
	return nil
}

func (f *fakeNotifier) SendSummary(_ context.Context, s WeeklySummary) error {
	if f.err != nil {
		return f.err
	}
	f.summaries = append(f.summaries, s)
	return nil
}

func at(day, hour int) time.Time {
	return time.Date(2026, time.May, day, hour, 0, 0, 0, time.UTC)
}

func newTestScheduler(src PracticeSource, n Notifier, now time.Time) *Scheduler {
	return New(src, n, Options{
		Location:  time.UTC,
		StartHour: 8,
		EndHour:   22,
		Now:       func() time.Time { return now },
	}, nil)
}

func TestInNotificationHours(t *testing.T) {
	tests := []struct {
		hour, start, end int
		want             bool
	}{
		{8, 8, 22, true},
		{22, 8, 22, true},
		{7, 8, 22, false},
		{23, 8, 22, false},
		{23, 22, 6, true},
		{3, 22, 6, true},
		{12, 22, 6, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InNotificationHours(tt.hour, tt.start, tt.end), "%d in %d-%d", tt.hour, tt.start, tt.end)
	}
}

func TestCheckReminder_SendsWhenNotPractisedToday(t *testing.T) {
	yesterday := at(10, 18)
	src := &fakeSource{stats: models.UserStats{CurrentStreak: 4, Level: 2, LastPracticeDate: &yesterday}}
	n := &fakeNotifier{}

	sent, err := newTestScheduler(src, n, at(11, 19)).CheckReminder(context.Background())
	require.NoError(t, err)
	assert.True(t, sent)
	require.Len(t, n.reminders, 1)
	assert.Equal(t, 4, n.reminders[0].CurrentStreak)
	assert.Equal(t, 2, n.reminders[0].Level)
}

func TestCheckReminder_BrokenStreakReportsZero(t *testing.T) {
	last := at(5, 18)
	src := &fakeSource{stats: models.UserStats{CurrentStreak: 4, LastPracticeDate: &last}}
	n := &fakeNotifier{}

	sent, err := newTestScheduler(src, n, at(11, 19)).CheckReminder(context.Background())
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Zero(t, n.reminders[0].CurrentStreak)
}

func TestCheckReminder_SkipsWhenPractisedToday(t *testing.T) {
	today := at(11, 7)
	src := &fakeSource{stats: models.UserStats{CurrentStreak: 1, LastPracticeDate: &today}}
	n := &fakeNotifier{}

	sent, err := newTestScheduler(src, n, at(11, 19)).CheckReminder(context.Background())
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, n.reminders)
}

func TestCheckReminder_SkipsOutsideHours(t *testing.T) {
	n := &fakeNotifier{}
	sent, err := newTestScheduler(&fakeSource{}, n, at(11, 23)).CheckReminder(context.Background())
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, n.reminders)
}

func TestCheckReminder_NotifierError(t *testing.T) {
	n := &fakeNotifier{err: errors.New("network down")}
	_, err := newTestScheduler(&fakeSource{}, n, at(11, 12)).CheckReminder(context.Background())
	assert.ErrorContains(t, err, "network down")
}

func TestSendWeeklySummary(t *testing.T) {
	src := &fakeSource{
		stats: models.UserStats{Experience: 120, Level: 1},
		sessions: []models.PracticeSession{
			{Category: models.CategoryChords, ItemID: "c-major", Duration: 300, Date: at(10, 9)},
			{Category: models.CategoryChords, ItemID: "g-major", Duration: 600, Date: at(10, 20)},
			{Category: models.CategoryScales, ItemID: "a-blues", Duration: 120, Date: at(8, 12)},
		},
		progress: []models.UserProgress{
			{Category: models.CategoryChords, ItemID: "c-major", Completed: true},
			{Category: models.CategoryScales, ItemID: "a-blues"},
		},
	}
	n := &fakeNotifier{}
	s := New(src, n, Options{Location: time.UTC, Now: func() time.Time { return at(11, 19) }}, nil)

	require.NoError(t, s.SendWeeklySummary(context.Background()))
	require.Len(t, n.summaries, 1)
	sum := n.summaries[0]
	assert.Equal(t, 7, src.days)
	assert.Equal(t, 1020, sum.Total)
	assert.Equal(t, 3, sum.Sessions)
	require.Len(t, sum.Days, 2)
	assert.Equal(t, 120, sum.Days[0].Seconds)
	assert.Equal(t, 900, sum.Days[1].Seconds)
	assert.Equal(t, 1, sum.Completed[models.CategoryChords])
	assert.Equal(t, 120, sum.Stats.Experience)
}

func TestStartAndStop(t *testing.T) {
	s := newTestScheduler(&fakeSource{}, &fakeNotifier{}, at(11, 12))
	require.NoError(t, s.Start(context.Background()))
	s.Stop()
}
