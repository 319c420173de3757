package audio

import (
	"math"
	"time"
)

// Waveform selects the oscillator shape
type Waveform int

const (
	Sine Waveform = iota
	Sawtooth
	Square
)

// FilterType selects the biquad response
type FilterType int

const (
	Lowpass FilterType = iota
	Highpass
)

// silence is the level exponential ramps end at, they can't reach zero
const silence = 0.001

// Envelope shapes the gain of a voice. Gain ramps linearly from zero to Peak
// over Attack, falls exponentially to Sustain by Decay (measured from the
// voice start), holds, then falls exponentially to silence over the final
// Release of the voice. A zero Decay holds Peak until the release.
type Envelope struct {
	Peak    float64
	Attack  time.Duration
	Sustain float64
	Decay   time.Duration
	Release time.Duration
}

// Gain returns the envelope level at offset t into a voice of the given length
func (e Envelope) Gain(t, length time.Duration) float64 {
	if t < 0 || t >= length {
		return 0
	}
	if t < e.Attack {
		return e.Peak * float64(t) / float64(e.Attack)
	}

	level := e.Peak
	if e.Decay > e.Attack && e.Sustain > 0 {
		if t < e.Decay {
			frac := float64(t-e.Attack) / float64(e.Decay-e.Attack)
			return expRamp(e.Peak, e.Sustain, frac)
		}
		level = e.Sustain
	}

	releaseStart := length - e.Release
	if releaseStart < e.Attack {
		releaseStart = e.Attack
	}
	if t >= releaseStart && length > releaseStart {
		frac := float64(t-releaseStart) / float64(length-releaseStart)
		return expRamp(level, silence, frac)
	}
	return level
}

func expRamp(from, to, frac float64) float64 {
	if from <= 0 {
		return 0
	}
	return from * math.Pow(to/from, frac)
}

// Filter is a single biquad stage
type Filter struct {
	Type   FilterType
	Cutoff float64
	Q      float64
}

// Voice is one oscillator scheduled at an offset from the start of an event
type Voice struct {
	Freq     float64
	Wave     Waveform
	Offset   time.Duration
	Duration time.Duration
	Env      Envelope
	Filter   Filter
}

// End returns when the voice stops, relative to the event start
func (v Voice) End() time.Duration {
	return v.Offset + v.Duration
}

// Event is a group of voices started together
type Event struct {
	Voices []Voice
	// Length overrides the computed length when the event should keep the
	// generator busy past its last voice, e.g. trailing gaps between notes
	Length time.Duration
}

// Duration returns how long the event keeps the generator busy
func (e Event) Duration() time.Duration {
	d := e.Length
	for _, v := range e.Voices {
		if end := v.End(); end > d {
			d = end
		}
	}
	return d
}

func oscillate(w Waveform, phase float64) float64 {
	switch w {
	case Sawtooth:
		return 2*phase - 1
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// biquad implements the RBJ cookbook lowpass and highpass filters in direct form I
type biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

func newBiquad(f Filter, sampleRate int) *biquad {
	q := f.Q
	if q <= 0 {
		q = 0.7071
	}
	cutoff := math.Min(f.Cutoff, float64(sampleRate)/2*0.99)
	w0 := 2 * math.Pi * cutoff / float64(sampleRate)
	cos, alpha := math.Cos(w0), math.Sin(w0)/(2*q)
	a0 := 1 + alpha

	bq := &biquad{
		a1: -2 * cos / a0,
		a2: (1 - alpha) / a0,
	}
	if f.Type == Highpass {
		bq.b0 = (1 + cos) / 2 / a0
		bq.b1 = -(1 + cos) / a0
	} else {
		bq.b0 = (1 - cos) / 2 / a0
		bq.b1 = (1 - cos) / a0
	}
	bq.b2 = bq.b0
	return bq
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}
