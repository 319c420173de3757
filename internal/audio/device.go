package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// ErrAudioUnavailable is returned when no audio output can be acquired. The
// failure is remembered, later calls fail the same way without retrying.
var ErrAudioUnavailable = errors.New("audio unavailable")

// Device plays rendered mono buffers
type Device interface {
	SampleRate() int
	// Available reports whether the device can produce sound
	Available() bool
	// Play starts playback of samples and returns at once
	Play(samples []float32) (Playback, error)
	Close() error
}

// Playback is a buffer being played
type Playback interface {
	Stop()
}

// OtoDevice plays through the system output using oto. Only one oto context
// may exist per process, so a single device is shared by all generators.
type OtoDevice struct {
	sampleRate int

	once    sync.Once
	ctx     *oto.Context
	openErr error

	mu      sync.Mutex
	players map[*otoPlayback]struct{}
}

// NewOtoDevice creates a device that opens the system output on first use
func NewOtoDevice(sampleRate int) *OtoDevice {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &OtoDevice{
		sampleRate: sampleRate,
		players:    make(map[*otoPlayback]struct{}),
	}
}

func (d *OtoDevice) open() error {
	d.once.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   d.sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			d.openErr = fmt.Errorf("%w: %w", ErrAudioUnavailable, err)
			return
		}
		<-ready
		d.ctx = ctx
	})
	return d.openErr
}

func (d *OtoDevice) SampleRate() int {
	return d.sampleRate
}

func (d *OtoDevice) Available() bool {
	return d.open() == nil
}

func (d *OtoDevice) Play(samples []float32) (Playback, error) {
	if err := d.open(); err != nil {
		return nil, err
	}

	player := d.ctx.NewPlayer(bytes.NewReader(float32LE(Stereo(samples))))
	pb := &otoPlayback{player: player, device: d}
	d.mu.Lock()
	d.players[pb] = struct{}{}
	d.mu.Unlock()

	player.Play()
	return pb, nil
}

// Close stops every active playback. The oto context itself lives until the
// process exits.
func (d *OtoDevice) Close() error {
	d.mu.Lock()
	active := make([]*otoPlayback, 0, len(d.players))
	for pb := range d.players {
		active = append(active, pb)
	}
	d.mu.Unlock()

	for _, pb := range active {
		pb.Stop()
	}
	return nil
}

type otoPlayback struct {
	player *oto.Player
	device *OtoDevice
	once   sync.Once
}

func (p *otoPlayback) Stop() {
	p.once.Do(func() {
		// oto releases a paused player once it is unreachable
		p.player.Pause()
		p.device.mu.Lock()
		delete(p.device.players, p)
		p.device.mu.Unlock()
	})
}

func float32LE(samples []float32) []byte {
	buf := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(s))
	}
	return buf
}

// Disabled is a device for configurations with audio turned off
type Disabled struct {
	Rate int
}

func (d Disabled) SampleRate() int { return d.Rate }
func (d Disabled) Available() bool { return false }
func (d Disabled) Close() error    { return nil }

func (d Disabled) Play([]float32) (Playback, error) {
	return nil, fmt.Errorf("%w: audio output is disabled", ErrAudioUnavailable)
}
