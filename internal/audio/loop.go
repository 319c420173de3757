package audio

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Tempo limits accepted by the beat loops
const (
	MinTempo = 40
	MaxTempo = 200
)

// BeatInterval returns the time between beats at bpm
func BeatInterval(bpm int) time.Duration {
	return time.Duration(float64(time.Minute) / float64(bpm))
}

// NextBeat returns when beat n fires. Beats are placed on absolute times from
// start so a late timer doesn't push every following beat back.
func NextBeat(start time.Time, n int, interval time.Duration) time.Time {
	return start.Add(time.Duration(n) * interval)
}

// RunBeats calls fn for beat 0, 1, 2... every interval until ctx is done. A
// beat more than one interval late is skipped rather than played in a burst.
func RunBeats(ctx context.Context, interval time.Duration, fn func(beat int)) error {
	if interval <= 0 {
		return fmt.Errorf("beat interval must be positive, got %s", interval)
	}

	start := time.Now()
	timer := time.NewTimer(0)
	defer timer.Stop()

	for n := 0; ; {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		if late := time.Since(NextBeat(start, n, interval)); late > interval {
			n += int(late / interval)
		}
		fn(n)
		n++
		timer.Reset(time.Until(NextBeat(start, n, interval)))
	}
}

// Loop is a beat loop running in the background
type Loop struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartLoop runs RunBeats in a goroutine
func StartLoop(ctx context.Context, interval time.Duration, fn func(beat int)) *Loop {
	ctx, cancel := context.WithCancel(ctx)
	l := &Loop{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(l.done)
		_ = RunBeats(ctx, interval, fn)
	}()
	return l
}

// Stop cancels the loop and waits for it to exit
func (l *Loop) Stop() {
	l.cancel()
	<-l.done
}

// Done is closed when the loop has exited
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Metronome clicks every beat and accents the first beat of each measure
type Metronome struct {
	Gen    *Generator
	Tempo  int
	Beats  int     // beats per measure
	Volume float64 // 0 to 1
	// OnBeat, when set, is called with the position in the measure before each click
	OnBeat func(beat int)
	Log    *zap.Logger
}

// Run clicks until ctx is done
func (m *Metronome) Run(ctx context.Context) error {
	if m.Tempo < MinTempo || m.Tempo > MaxTempo {
		return fmt.Errorf("tempo %d outside %d-%d BPM", m.Tempo, MinTempo, MaxTempo)
	}
	beats := m.Beats
	if beats <= 0 {
		beats = 4
	}
	log := m.Log
	if log == nil {
		log = zap.NewNop()
	}

	return RunBeats(ctx, BeatInterval(m.Tempo), func(n int) {
		beat := n % beats
		if m.OnBeat != nil {
			m.OnBeat(beat)
		}
		err := m.Gen.PlayTone(ctx, KindClick, Params{Accent: beat == 0, Volume: m.Volume})
		if err != nil {
			log.Warn("Metronome click failed", zap.Int("beat", beat), zap.Error(err))
		}
	})
}

// Strummer loops a strumming pattern, one stroke per beat. "D" plays a
// downstroke, "U" an upstroke and anything else rests.
type Strummer struct {
	Gen     *Generator
	Pattern []string
	Tempo   int
	// OnStroke, when set, is called with the index into Pattern before each stroke
	OnStroke func(index int, stroke string)
	Log      *zap.Logger
}

// Run strums until ctx is done
func (s *Strummer) Run(ctx context.Context) error {
	if len(s.Pattern) == 0 {
		return fmt.Errorf("%w: empty strumming pattern", ErrInvalidParams)
	}
	if s.Tempo < MinTempo || s.Tempo > MaxTempo {
		return fmt.Errorf("tempo %d outside %d-%d BPM", s.Tempo, MinTempo, MaxTempo)
	}
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}

	return RunBeats(ctx, BeatInterval(s.Tempo), func(n int) {
		idx := n % len(s.Pattern)
		stroke := s.Pattern[idx]
		if s.OnStroke != nil {
			s.OnStroke(idx, stroke)
		}
		if stroke != "D" && stroke != "U" {
			return
		}
		if err := s.Gen.PlayTone(ctx, KindStrum, Params{Upstroke: stroke == "U"}); err != nil {
			log.Warn("Strum failed", zap.Int("index", idx), zap.Error(err))
		}
	})
}
