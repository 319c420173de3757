package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringFrequency(t *testing.T) {
	for str, open := range OpenStrings {
		assert.InDelta(t, open, StringFrequency(str, 0), 1e-9)
		assert.InDelta(t, 2*open, StringFrequency(str, 12), 1e-9, "twelfth fret is one octave up")

		prev := 0.0
		for fret := 0; fret <= 24; fret++ {
			f := StringFrequency(str, fret)
			assert.InDelta(t, open*math.Pow(2, float64(fret)/12), f, 1e-9)
			assert.Greater(t, f, prev, "string %d fret %d", str, fret)
			prev = f
		}
	}

	assert.Zero(t, StringFrequency(-1, 0))
	assert.Zero(t, StringFrequency(6, 3))
}

func TestNoteFrequency(t *testing.T) {
	tests := []struct {
		note   string
		octave int
		want   float64
	}{
		{"C", 4, 261.63},
		{"A", 4, 440},
		{"F#", 4, 369.99},
		{"Gb", 4, 369.99},
		{"bb", 4, 466.16},
		{"A", 5, 880},
		{"E", 2, 82.4075},
		{"H", 4, DefaultFrequency},
		{"", 3, DefaultFrequency},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NoteFrequency(tt.note, tt.octave), 0.01, "%s%d", tt.note, tt.octave)
	}
}

func TestMIDIKey(t *testing.T) {
	assert.Equal(t, uint8(69), MIDIKey(440))
	assert.Equal(t, uint8(60), MIDIKey(261.63))
	assert.Equal(t, uint8(40), MIDIKey(OpenStrings[0]))
	assert.Equal(t, uint8(64), MIDIKey(OpenStrings[5]))
	assert.Equal(t, uint8(0), MIDIKey(0))
}
