package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/guitarcoach/internal/audio"
	"github.com/example/guitarcoach/internal/config"
)

var testNow = time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC)

type fakePlayback struct{}

func (fakePlayback) Stop() {}

type fakeDevice struct {
	mu    sync.Mutex
	plays int
}

func (d *fakeDevice) SampleRate() int { return 8000 }
func (d *fakeDevice) Available() bool { return true }
func (d *fakeDevice) Close() error    { return nil }

func (d *fakeDevice) Play([]float32) (audio.Playback, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.plays++
	return fakePlayback{}, nil
}

func (d *fakeDevice) Plays() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.plays
}

func newTestApp(t *testing.T, opts ...Option) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DBType = config.BackendKV
	cfg.AppDataDir = t.TempDir()
	cfg.Timezone = "UTC"
	cfg.Audio.Enabled = false
	cfg.Audio.SampleRate = 8000
	cfg.Reminder.StartHour = 0
	cfg.Reminder.EndHour = 23

	out := &bytes.Buffer{}
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	a, err := New(context.Background(), cfg, zap.NewNop(), out, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, out
}

func TestRun_Usage(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	assert.ErrorIs(t, a.Run(ctx, nil), ErrUsage)
	assert.ErrorIs(t, a.Run(ctx, []string{"bogus"}), ErrUsage)
	assert.ErrorIs(t, a.Run(ctx, []string{"chord"}), ErrUsage)
	assert.ErrorIs(t, a.Run(ctx, []string{"practice", "-item", "c-major"}), ErrUsage)
	assert.ErrorIs(t, a.Run(ctx, []string{"metronome", "-bpm", "300"}), ErrUsage)

	require.NoError(t, a.Run(ctx, []string{"help"}))
	assert.Contains(t, out.String(), "metronome")
}

func TestRun_PracticeUpdatesStatsAndHistory(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	err := a.Run(ctx, []string{"practice", "-category", "chords", "-item", "c-major", "-seconds", "65", "-completed"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Recorded 1m of C Major")

	out.Reset()
	require.NoError(t, a.Run(ctx, []string{"stats"}))
	assert.Contains(t, out.String(), "Chords learned: 1")
	assert.Contains(t, out.String(), "Current streak: 1 days")
	assert.Contains(t, out.String(), "Level:          1 (10/1000 XP)")

	out.Reset()
	require.NoError(t, a.Run(ctx, []string{"history", "-days", "7"}))
	assert.Contains(t, out.String(), "Today")
	assert.Contains(t, out.String(), "C Major")
	assert.Contains(t, out.String(), "1 sessions")

	out.Reset()
	require.NoError(t, a.Run(ctx, []string{"progress", "-category", "chords"}))
	assert.Contains(t, out.String(), "[x] chords")
}

func TestRun_ResetNeedsConfirmation(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Run(ctx, []string{"practice", "-category", "scales", "-item", "a-minor", "-seconds", "120"}))
	require.NoError(t, a.Run(ctx, []string{"reset"}))
	assert.Len(t, a.Store().ListProgress(ctx, ""), 1)

	out.Reset()
	require.NoError(t, a.Run(ctx, []string{"reset", "-yes"}))
	assert.Contains(t, out.String(), "All progress cleared.")
	assert.Empty(t, a.Store().ListProgress(ctx, ""))
	assert.Equal(t, 0, a.Store().GetStats(ctx).TotalPracticeTime)
}

func TestRun_ExportImportRoundTrip(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "practice.xlsx")

	require.NoError(t, a.Run(ctx, []string{"practice", "-category", "chords", "-item", "g-major", "-seconds", "300", "-notes", "clean"}))
	require.NoError(t, a.Run(ctx, []string{"export", path}))
	require.FileExists(t, path)

	require.NoError(t, a.Run(ctx, []string{"reset", "-yes"}))
	require.Empty(t, a.Store().ListHistory(ctx, 7))

	require.NoError(t, a.Run(ctx, []string{"import", path}))
	sessions := a.Store().ListHistory(ctx, 7)
	require.Len(t, sessions, 1)
	assert.Equal(t, "g-major", sessions[0].ItemID)
	assert.Equal(t, 300, sessions[0].Duration)
	require.NotNil(t, sessions[0].Notes)
	assert.Equal(t, "clean", *sessions[0].Notes)
}

func TestRun_AudioUnavailable(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	assert.ErrorIs(t, a.Run(ctx, []string{"chord", "c-major"}), audio.ErrAudioUnavailable)
	assert.ErrorIs(t, a.Run(ctx, []string{"metronome", "-duration", "10ms"}), audio.ErrAudioUnavailable)
	assert.Contains(t, out.String(), "Audio is not available")
}

func TestRun_ChordStopsWithContext(t *testing.T) {
	device := &fakeDevice{}
	a, out := newTestApp(t, WithDevice(device))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, a.Run(ctx, []string{"chord", "C Major"}))
	assert.Equal(t, 1, device.Plays())
	assert.False(t, a.chords.IsPlaying())
	assert.Contains(t, out.String(), "Playing C Major")
}

func TestRun_MetronomeRunsForDuration(t *testing.T) {
	device := &fakeDevice{}
	a, _ := newTestApp(t, WithDevice(device))

	start := time.Now()
	require.NoError(t, a.Run(context.Background(), []string{"metronome", "-bpm", "200", "-duration", "400ms"}))
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.GreaterOrEqual(t, device.Plays(), 1)
}

func TestRun_WriteWAVAndMIDI(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()
	dir := t.TempDir()

	wavPath := filepath.Join(dir, "chord.wav")
	require.NoError(t, a.Run(ctx, []string{"wav", "chord", "c-major", wavPath}))
	data, err := os.ReadFile(wavPath)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Greater(t, len(data), 44)

	midPath := filepath.Join(dir, "scale.mid")
	require.NoError(t, a.Run(ctx, []string{"midi", "scale", "c-major", midPath}))
	data, err = os.ReadFile(midPath)
	require.NoError(t, err)
	assert.Equal(t, "MThd", string(data[:4]))

	assert.ErrorIs(t, a.Run(ctx, []string{"wav", "note", "bad", wavPath}), ErrUsage)
	assert.Error(t, a.Run(ctx, []string{"midi", "chord", "h-major", midPath}))
}

func TestRun_List(t *testing.T) {
	a, out := newTestApp(t)

	require.NoError(t, a.Run(context.Background(), []string{"list", "scales"}))
	assert.Contains(t, out.String(), "C Major Pentatonic")
	assert.ErrorIs(t, a.Run(context.Background(), []string{"list", "songs"}), ErrUsage)
}

func TestRun_RemindOnce(t *testing.T) {
	a, out := newTestApp(t)

	require.NoError(t, a.Run(context.Background(), []string{"remind", "-once", "-summary"}))
	assert.Contains(t, out.String(), "Reminder sent.")
}

func TestParse_InterspersedFlags(t *testing.T) {
	a, _ := newTestApp(t)
	fs := a.flags("scale")
	desc := fs.Bool("desc", false, "")

	positional, err := parse(fs, []string{"a-minor", "-desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a-minor"}, positional)
	assert.True(t, *desc)
}
