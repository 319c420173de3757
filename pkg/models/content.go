package models

// Chord is a fretted chord shape, low E string first. A fret of -1 mutes the string.
type Chord struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Group      string `json:"group" yaml:"group"` // basic, barre, seventh, sus
	Difficulty string `json:"difficulty" yaml:"difficulty"`
	Fingers    []int  `json:"fingers" yaml:"fingers,flow"`
	Barre      int    `json:"barre,omitempty" yaml:"barre,omitempty"`
}

// Scale is a named note sequence played from the root
type Scale struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Group     string   `json:"group" yaml:"group"` // major, minor, pentatonic, blues
	Level     string   `json:"level" yaml:"level"`
	Notes     []string `json:"notes" yaml:"notes,flow"`
	Intervals string   `json:"intervals,omitempty" yaml:"intervals,omitempty"`
}

// StrumPattern is a repeating sequence of strokes: "D", "U" or "" for a rest
type StrumPattern struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Difficulty string   `json:"difficulty" yaml:"difficulty"`
	Pattern    []string `json:"pattern" yaml:"pattern,flow"`
	Tempo      int      `json:"tempo" yaml:"tempo"`
}

// Exercise is a timed technique drill
type Exercise struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Difficulty  string `json:"difficulty" yaml:"difficulty"`
	Duration    int    `json:"duration" yaml:"duration"` // Suggested minutes
	Tempo       int    `json:"tempo" yaml:"tempo"`
	Description string `json:"description" yaml:"description"`
}

// TempoPreset is a named metronome tempo
type TempoPreset struct {
	Name        string `json:"name" yaml:"name"`
	BPM         int    `json:"bpm" yaml:"bpm"`
	Description string `json:"description" yaml:"description"`
}

// TimeSignature sets how many beats make a measure; beat zero is accented
type TimeSignature struct {
	Name        string `json:"name" yaml:"name"`
	Beats       int    `json:"beats" yaml:"beats"`
	Description string `json:"description" yaml:"description"`
}
