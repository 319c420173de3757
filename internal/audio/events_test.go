package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChordEvent_SkipsMutedStringsAndStaggers(t *testing.T) {
	// C major: x32010
	ev, err := ChordEvent([]int{-1, 3, 2, 0, 1, 0})
	require.NoError(t, err)
	require.Len(t, ev.Voices, 5)

	first := ev.Voices[0]
	assert.InDelta(t, StringFrequency(1, 3), first.Freq, 1e-9)
	assert.Equal(t, 20*time.Millisecond, first.Offset, "offset follows the string index")
	assert.Equal(t, Sawtooth, first.Wave)
	assert.Equal(t, 2*time.Second, first.Duration)
	assert.Equal(t, Filter{Type: Lowpass, Cutoff: 2000, Q: 1}, first.Filter)

	assert.Equal(t, 100*time.Millisecond, ev.Voices[4].Offset)
	assert.Equal(t, 2100*time.Millisecond, ev.Duration())
}

func TestChordEvent_Invalid(t *testing.T) {
	_, err := ChordEvent(nil)
	assert.ErrorIs(t, err, ErrInvalidParams)
	_, err = ChordEvent([]int{-1, -1, -1, -1, -1, -1})
	assert.ErrorIs(t, err, ErrInvalidParams)
	_, err = ChordEvent([]int{0, 0, 0, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestScaleEvent_AscendingThenDescending(t *testing.T) {
	notes := []string{"C", "D", "E"}
	ev, err := ScaleEvent(notes, 0, false)
	require.NoError(t, err)
	require.Len(t, ev.Voices, 6)

	wantOrder := []string{"C", "D", "E", "E", "D", "C"}
	for i, v := range ev.Voices {
		assert.InDelta(t, NoteFrequency(wantOrder[i], 4), v.Freq, 1e-9)
		assert.Equal(t, time.Duration(i)*450*time.Millisecond, v.Offset)
		assert.Equal(t, Sine, v.Wave)
	}
	assert.Equal(t, 6*450*time.Millisecond, ev.Duration())

	desc, err := ScaleEvent(notes, 5, true)
	require.NoError(t, err)
	require.Len(t, desc.Voices, 3)
	assert.InDelta(t, NoteFrequency("E", 5), desc.Voices[0].Freq, 1e-9)
}

func TestArpeggioEvent_Overlaps(t *testing.T) {
	ev, err := ArpeggioEvent([]string{"A", "C", "E"}, 4)
	require.NoError(t, err)
	require.Len(t, ev.Voices, 3)
	assert.Equal(t, 180*time.Millisecond, ev.Voices[1].Offset)
	assert.Equal(t, 360*time.Millisecond, ev.Voices[2].Offset)
	assert.Equal(t, 960*time.Millisecond, ev.Duration())
}

func TestStrumEvent_Direction(t *testing.T) {
	down := StrumEvent(false)
	up := StrumEvent(true)
	require.Len(t, down.Voices, 6)
	require.Len(t, up.Voices, 6)

	assert.InDelta(t, OpenStrings[0], down.Voices[0].Freq, 1e-9)
	assert.InDelta(t, OpenStrings[5], up.Voices[0].Freq, 1e-9)
	assert.Equal(t, 50*time.Millisecond, down.Voices[5].Offset)
	assert.Equal(t, 0.15, down.Voices[0].Env.Peak)
	assert.Equal(t, 0.1, up.Voices[0].Env.Peak)
	assert.Equal(t, 2500.0, down.Voices[0].Filter.Cutoff)
	assert.Equal(t, 2000.0, up.Voices[0].Filter.Cutoff)
}

func TestClickEvent_Accent(t *testing.T) {
	accent := ClickEvent(true, 0.5)
	regular := ClickEvent(false, 0.5)
	assert.Equal(t, 1000.0, accent.Voices[0].Freq)
	assert.Equal(t, 800.0, regular.Voices[0].Freq)
	assert.InDelta(t, 0.5, accent.Voices[0].Env.Peak, 1e-9)
	assert.InDelta(t, 0.35, regular.Voices[0].Env.Peak, 1e-9)
	assert.Equal(t, Highpass, accent.Voices[0].Filter.Type)

	assert.InDelta(t, DefaultClickVolume, ClickEvent(true, 0).Voices[0].Env.Peak, 1e-9)
}

func TestBuildEvent_UnknownKind(t *testing.T) {
	_, err := BuildEvent("banjo", Params{})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestEnvelopeGain(t *testing.T) {
	length := 2 * time.Second
	env := Envelope{
		Peak:    0.3,
		Attack:  10 * time.Millisecond,
		Sustain: 0.1,
		Decay:   100 * time.Millisecond,
		Release: 200 * time.Millisecond,
	}

	assert.Zero(t, env.Gain(0, length))
	assert.InDelta(t, 0.15, env.Gain(5*time.Millisecond, length), 1e-9)
	assert.InDelta(t, 0.3, env.Gain(10*time.Millisecond, length), 1e-9)
	assert.InDelta(t, 0.1, env.Gain(100*time.Millisecond, length), 1e-9)
	assert.InDelta(t, 0.1, env.Gain(time.Second, length), 1e-9)
	assert.InDelta(t, 0.1, env.Gain(1800*time.Millisecond, length), 1e-9)
	assert.Less(t, env.Gain(1999*time.Millisecond, length), 0.002)
	assert.Zero(t, env.Gain(length, length))

	g50 := env.Gain(50*time.Millisecond, length)
	assert.Less(t, g50, 0.3)
	assert.Greater(t, g50, 0.1)
}

func TestRender(t *testing.T) {
	ev, err := ChordEvent([]int{0, 2, 2, 1, 0, 0})
	require.NoError(t, err)

	const rate = 8000
	samples := Render(ev, rate)
	assert.Len(t, samples, samplesFor(ev.Duration(), rate))

	var peak float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	assert.Greater(t, peak, float32(0.01))
	assert.LessOrEqual(t, peak, float32(1))
}

func TestNormalize(t *testing.T) {
	buf := []float32{0.5, -4, 2}
	Normalize(buf, 1)
	assert.InDeltaSlice(t, []float32{0.125, -1, 0.5}, buf, 1e-6)

	quiet := []float32{0.1, -0.2}
	Normalize(quiet, 1)
	assert.Equal(t, []float32{0.1, -0.2}, quiet)

	Normalize(nil, 1)
}
