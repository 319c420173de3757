package audio

import (
	"fmt"
	"io"
	"sort"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const midiResolution = smf.MetricTicks(480)

type midiEvent struct {
	tick uint32
	msg  midi.Message
	off  bool
}

// WriteMIDI writes the voices of an event as notes of a single-track MIDI file.
// bpm sets the file tempo; the notes keep their real-time positions.
func WriteMIDI(w io.Writer, ev Event, bpm int, name string) error {
	if bpm <= 0 {
		bpm = 120
	}
	toTicks := func(d time.Duration) uint32 {
		beats := d.Seconds() * float64(bpm) / 60
		return uint32(beats*float64(midiResolution) + 0.5)
	}

	events := make([]midiEvent, 0, 2*len(ev.Voices))
	for _, v := range ev.Voices {
		key := MIDIKey(v.Freq)
		vel := uint8(clamp(int(v.Env.Peak/0.3*100), 1, 127))
		events = append(events,
			midiEvent{tick: toTicks(v.Offset), msg: midi.NoteOn(0, key, vel)},
			midiEvent{tick: toTicks(v.End()), msg: midi.NoteOff(0, key), off: true},
		)
	}
	// note-offs first on a shared tick so a repeated key isn't cut short
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick == events[j].tick {
			return events[i].off && !events[j].off
		}
		return events[i].tick < events[j].tick
	})

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(name))
	track.Add(0, smf.MetaTempo(float64(bpm)))
	var last uint32
	for _, e := range events {
		track.Add(e.tick-last, e.msg)
		last = e.tick
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = midiResolution
	if err := s.Add(track); err != nil {
		return fmt.Errorf("failed to add midi track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write midi: %w", err)
	}
	return nil
}
