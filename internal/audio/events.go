package audio

import (
	"errors"
	"fmt"
	"time"
)

// Kind names a family of tones the generator can play
type Kind string

const (
	KindChord    Kind = "chord"
	KindNote     Kind = "note"
	KindScale    Kind = "scale"
	KindArpeggio Kind = "arpeggio"
	KindStrum    Kind = "strum"
	KindClick    Kind = "click"
)

// Params carries the inputs of every kind; each kind reads only its own fields
type Params struct {
	Frets      []int    // chord: one fret per string, low E first, -1 mutes
	String     int      // note: string index, 0 = low E
	Fret       int      // note
	Notes      []string // scale, arpeggio
	Octave     int      // scale, arpeggio; 0 means octave 4
	Descending bool     // scale: play only the descending run
	Upstroke   bool     // strum
	Accent     bool     // click
	Volume     float64  // click; 0 means 0.7
}

// ErrInvalidParams is returned when params can't produce any sound
var ErrInvalidParams = errors.New("invalid tone parameters")

const (
	chordNoteLength = 2 * time.Second
	chordStagger    = 20 * time.Millisecond

	scaleNoteLength = 400 * time.Millisecond
	scaleNoteGap    = 50 * time.Millisecond
	arpeggioLength  = 600 * time.Millisecond

	strumLength  = 150 * time.Millisecond
	strumStagger = 10 * time.Millisecond

	clickLength = 100 * time.Millisecond

	// DefaultClickVolume is the metronome volume used when none is given
	DefaultClickVolume = 0.7
)

var (
	chordEnvelope = Envelope{
		Peak:    0.3,
		Attack:  10 * time.Millisecond,
		Sustain: 0.1,
		Decay:   100 * time.Millisecond,
		Release: 200 * time.Millisecond,
	}
	chordFilter = Filter{Type: Lowpass, Cutoff: 2000, Q: 1}

	scaleEnvelope = Envelope{
		Peak:    0.2,
		Attack:  20 * time.Millisecond,
		Release: 50 * time.Millisecond,
	}
	scaleFilter = Filter{Type: Lowpass, Cutoff: 3000, Q: 0.5}
)

// BuildEvent turns a kind and its params into the voices to render
func BuildEvent(kind Kind, p Params) (Event, error) {
	switch kind {
	case KindChord:
		return ChordEvent(p.Frets)
	case KindNote:
		return NoteEvent(p.String, p.Fret)
	case KindScale:
		return ScaleEvent(p.Notes, p.Octave, p.Descending)
	case KindArpeggio:
		return ArpeggioEvent(p.Notes, p.Octave)
	case KindStrum:
		return StrumEvent(p.Upstroke), nil
	case KindClick:
		return ClickEvent(p.Accent, p.Volume), nil
	}
	return Event{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidParams, kind)
}

// ChordEvent strums the fretted strings of a chord shape from low to high
func ChordEvent(frets []int) (Event, error) {
	if len(frets) == 0 || len(frets) > len(OpenStrings) {
		return Event{}, fmt.Errorf("%w: chord needs 1 to %d frets, got %d", ErrInvalidParams, len(OpenStrings), len(frets))
	}

	var ev Event
	for str, fret := range frets {
		if fret < 0 {
			continue
		}
		ev.Voices = append(ev.Voices, Voice{
			Freq:     StringFrequency(str, fret),
			Wave:     Sawtooth,
			Offset:   time.Duration(str) * chordStagger,
			Duration: chordNoteLength,
			Env:      chordEnvelope,
			Filter:   chordFilter,
		})
	}
	if len(ev.Voices) == 0 {
		return Event{}, fmt.Errorf("%w: every string is muted", ErrInvalidParams)
	}
	return ev, nil
}

// NoteEvent plays a single fretted string with the chord voice
func NoteEvent(str, fret int) (Event, error) {
	if str < 0 || str >= len(OpenStrings) || fret < 0 {
		return Event{}, fmt.Errorf("%w: string %d fret %d", ErrInvalidParams, str, fret)
	}
	return Event{Voices: []Voice{{
		Freq:     StringFrequency(str, fret),
		Wave:     Sawtooth,
		Duration: chordNoteLength,
		Env:      chordEnvelope,
		Filter:   chordFilter,
	}}}, nil
}

func scaleVoice(note string, octave int, offset, length time.Duration) Voice {
	if octave == 0 {
		octave = 4
	}
	return Voice{
		Freq:     NoteFrequency(note, octave),
		Wave:     Sine,
		Offset:   offset,
		Duration: length,
		Env:      scaleEnvelope,
		Filter:   scaleFilter,
	}
}

// ScaleEvent plays the notes one after another. An ascending run is followed
// by the descending run; descending plays the reversed notes only.
func ScaleEvent(notes []string, octave int, descending bool) (Event, error) {
	if len(notes) == 0 {
		return Event{}, fmt.Errorf("%w: scale has no notes", ErrInvalidParams)
	}

	reversed := make([]string, len(notes))
	for i, n := range notes {
		reversed[len(notes)-1-i] = n
	}
	order := append(append([]string{}, notes...), reversed...)
	if descending {
		order = reversed
	}

	step := scaleNoteLength + scaleNoteGap
	ev := Event{Length: time.Duration(len(order)) * step}
	for i, note := range order {
		ev.Voices = append(ev.Voices, scaleVoice(note, octave, time.Duration(i)*step, scaleNoteLength))
	}
	return ev, nil
}

// ArpeggioEvent plays overlapping notes, each starting 30% into the previous one
func ArpeggioEvent(notes []string, octave int) (Event, error) {
	if len(notes) == 0 {
		return Event{}, fmt.Errorf("%w: arpeggio has no notes", ErrInvalidParams)
	}
	step := arpeggioLength * 3 / 10
	var ev Event
	for i, note := range notes {
		ev.Voices = append(ev.Voices, scaleVoice(note, octave, time.Duration(i)*step, arpeggioLength))
	}
	return ev, nil
}

// StrumEvent sweeps the open strings, low to high on a downstroke and high to
// low on an upstroke
func StrumEvent(upstroke bool) Event {
	peak, cutoff := 0.15, 2500.0
	if upstroke {
		peak, cutoff = 0.1, 2000.0
	}

	var ev Event
	for i := range OpenStrings {
		str := i
		if upstroke {
			str = len(OpenStrings) - 1 - i
		}
		ev.Voices = append(ev.Voices, Voice{
			Freq:     OpenStrings[str],
			Wave:     Sawtooth,
			Offset:   time.Duration(i) * strumStagger,
			Duration: strumLength,
			Env: Envelope{
				Peak:    peak,
				Attack:  5 * time.Millisecond,
				Release: strumLength,
			},
			Filter: Filter{Type: Lowpass, Cutoff: cutoff, Q: 1.5},
		})
	}
	return ev
}

// ClickEvent is one metronome tick. Accented ticks are higher and louder.
func ClickEvent(accent bool, volume float64) Event {
	if volume <= 0 {
		volume = DefaultClickVolume
	}
	if volume > 1 {
		volume = 1
	}
	freq, level := 800.0, volume*0.7
	if accent {
		freq, level = 1000.0, volume
	}
	return Event{Voices: []Voice{{
		Freq:     freq,
		Wave:     Square,
		Duration: clickLength,
		Env: Envelope{
			Peak:    level,
			Attack:  time.Millisecond,
			Release: clickLength,
		},
		Filter: Filter{Type: Highpass, Cutoff: 400, Q: 1},
	}}}
}
