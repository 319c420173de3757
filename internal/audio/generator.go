package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrDisposed is returned by PlayTone after Dispose
var ErrDisposed = errors.New("generator disposed")

// Generator plays one event at a time. A request arriving while an event is
// still sounding is dropped.
type Generator struct {
	device Device
	log    *zap.Logger

	busy     atomic.Bool
	disposed atomic.Bool

	mu      sync.Mutex
	gen     uint64
	current Playback
	timer   *time.Timer
}

// NewGenerator creates a generator playing on device
func NewGenerator(device Device, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		device: device,
		log:    log.With(zap.String("component", "audio")),
	}
}

// PlayTone renders and starts the event described by kind and params. It
// returns nil without doing anything when an event is already playing.
func (g *Generator) PlayTone(ctx context.Context, kind Kind, params Params) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if g.disposed.Load() {
		return ErrDisposed
	}
	if !g.busy.CompareAndSwap(false, true) {
		g.log.Debug("Generator busy, dropping request", zap.String("kind", string(kind)))
		return nil
	}

	ev, err := BuildEvent(kind, params)
	if err != nil {
		g.busy.Store(false)
		return err
	}
	if g.device == nil || !g.device.Available() {
		g.busy.Store(false)
		return ErrAudioUnavailable
	}

	samples := Render(ev, g.device.SampleRate())
	pb, err := g.device.Play(samples)
	if err != nil {
		g.busy.Store(false)
		g.log.Error("Failed to start playback", zap.String("kind", string(kind)), zap.Error(err))
		return fmt.Errorf("failed to play %s: %w", kind, err)
	}

	g.mu.Lock()
	g.gen++
	gen := g.gen
	g.current = pb
	g.timer = time.AfterFunc(ev.Duration(), func() { g.finish(gen) })
	g.mu.Unlock()
	return nil
}

// finish clears the busy flag if gen is still the current event
func (g *Generator) finish(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.gen || g.current == nil {
		return
	}
	g.current.Stop()
	g.current = nil
	g.timer = nil
	g.busy.Store(false)
}

// Stop silences the current event and makes the generator available again
func (g *Generator) Stop() {
	g.mu.Lock()
	if g.timer != nil {
		g.timer.Stop()
	}
	gen := g.gen
	g.mu.Unlock()
	g.finish(gen)
}

// IsPlaying reports whether an event is sounding
func (g *Generator) IsPlaying() bool {
	return g.busy.Load()
}

// IsAvailable reports whether the device can produce sound
func (g *Generator) IsAvailable() bool {
	return !g.disposed.Load() && g.device != nil && g.device.Available()
}

// Dispose stops playback and rejects later requests. The shared device is
// closed by its owner.
func (g *Generator) Dispose() {
	g.disposed.Store(true)
	g.Stop()
}
