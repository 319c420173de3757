// Package audio renders short procedural guitar tones and plays them on the
// system audio device.
package audio

import (
	"math"
	"strings"
)

// OpenStrings holds the standard tuning in Hz, low E (6th string) first
var OpenStrings = [6]float64{
	82.41,  // E2
	110.00, // A2
	146.83, // D3
	196.00, // G3
	246.94, // B3
	329.63, // E4
}

// DefaultFrequency is returned for note names that can't be resolved
const DefaultFrequency = 440.0

var noteFrequencies = map[string]float64{
	"C":  261.63,
	"C#": 277.18, "DB": 277.18,
	"D":  293.66,
	"D#": 311.13, "EB": 311.13,
	"E":  329.63,
	"F":  349.23,
	"F#": 369.99, "GB": 369.99,
	"G":  392.00,
	"G#": 415.30, "AB": 415.30,
	"A":  440.00,
	"A#": 466.16, "BB": 466.16,
	"B":  493.88,
}

// StringFrequency returns the pitch of a string (0 = low E) stopped at fret.
// It returns 0 for a string index outside the six strings.
func StringFrequency(str, fret int) float64 {
	if str < 0 || str >= len(OpenStrings) {
		return 0
	}
	return OpenStrings[str] * math.Pow(2, float64(fret)/12)
}

// NoteFrequency returns the pitch of a note name such as "C", "F#" or "Bb" in
// the given octave, octave 4 being the one above middle C. Unknown names fall
// back to A4.
func NoteFrequency(note string, octave int) float64 {
	base, ok := noteFrequencies[strings.ToUpper(strings.TrimSpace(note))]
	if !ok {
		return DefaultFrequency
	}
	return base * math.Pow(2, float64(octave-4))
}

// MIDIKey returns the nearest MIDI note number for a frequency
func MIDIKey(freq float64) uint8 {
	if freq <= 0 {
		return 0
	}
	key := math.Round(69 + 12*math.Log2(freq/440))
	if key < 0 {
		return 0
	}
	if key > 127 {
		return 127
	}
	return uint8(key)
}
