// Package catalog holds the static reference content: chord shapes, scales,
// strumming patterns, exercises and metronome presets.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/guitarcoach/pkg/models"
)

//go:embed data/catalog.yaml
var defaultData []byte

// Catalog is the parsed content. It is never modified after Load.
type Catalog struct {
	Chords         []models.Chord         `yaml:"chords"`
	Scales         []models.Scale         `yaml:"scales"`
	StrumPatterns  []models.StrumPattern  `yaml:"strum_patterns"`
	Exercises      []models.Exercise      `yaml:"exercises"`
	TempoPresets   []models.TempoPreset   `yaml:"tempo_presets"`
	TimeSignatures []models.TimeSignature `yaml:"time_signatures"`
}

// Load parses the embedded content
func Load() (*Catalog, error) {
	return Parse(defaultData)
}

// Parse decodes and validates catalog YAML
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool)
	for _, ch := range c.Chords {
		if ch.ID == "" || seen["chord/"+ch.ID] {
			return fmt.Errorf("chord %q: missing or duplicate id", ch.Name)
		}
		seen["chord/"+ch.ID] = true
		if len(ch.Fingers) != 6 {
			return fmt.Errorf("chord %q: need 6 frets, got %d", ch.ID, len(ch.Fingers))
		}
	}
	for _, s := range c.Scales {
		if s.ID == "" || seen["scale/"+s.ID] {
			return fmt.Errorf("scale %q: missing or duplicate id", s.Name)
		}
		seen["scale/"+s.ID] = true
		if len(s.Notes) == 0 {
			return fmt.Errorf("scale %q has no notes", s.ID)
		}
	}
	for _, p := range c.StrumPatterns {
		if p.ID == "" || seen["strum/"+p.ID] {
			return fmt.Errorf("strum pattern %q: missing or duplicate id", p.Name)
		}
		seen["strum/"+p.ID] = true
		if len(p.Pattern) == 0 || p.Tempo <= 0 {
			return fmt.Errorf("strum pattern %q needs strokes and a tempo", p.ID)
		}
		for _, stroke := range p.Pattern {
			if stroke != "D" && stroke != "U" && stroke != "" {
				return fmt.Errorf("strum pattern %q: unknown stroke %q", p.ID, stroke)
			}
		}
	}
	for _, ts := range c.TimeSignatures {
		if ts.Beats <= 0 {
			return fmt.Errorf("time signature %q needs beats", ts.Name)
		}
	}
	return nil
}

func matches(query, id, name string) bool {
	query = strings.TrimSpace(query)
	return strings.EqualFold(query, id) || strings.EqualFold(query, name)
}

// Chord finds a chord by id or name, ignoring case
func (c *Catalog) Chord(query string) (models.Chord, bool) {
	for _, ch := range c.Chords {
		if matches(query, ch.ID, ch.Name) {
			return ch, true
		}
	}
	return models.Chord{}, false
}

// ChordsInGroup returns the chords of one group (basic, barre, seventh, sus)
func (c *Catalog) ChordsInGroup(group string) []models.Chord {
	var out []models.Chord
	for _, ch := range c.Chords {
		if strings.EqualFold(ch.Group, group) {
			out = append(out, ch)
		}
	}
	return out
}

// Scale finds a scale by id or name, ignoring case
func (c *Catalog) Scale(query string) (models.Scale, bool) {
	for _, s := range c.Scales {
		if matches(query, s.ID, s.Name) {
			return s, true
		}
	}
	return models.Scale{}, false
}

// StrumPattern finds a strumming pattern by id or name, ignoring case
func (c *Catalog) StrumPattern(query string) (models.StrumPattern, bool) {
	for _, p := range c.StrumPatterns {
		if matches(query, p.ID, p.Name) {
			return p, true
		}
	}
	return models.StrumPattern{}, false
}

// Exercise finds an exercise by id or name, ignoring case
func (c *Catalog) Exercise(query string) (models.Exercise, bool) {
	for _, e := range c.Exercises {
		if matches(query, e.ID, e.Name) {
			return e, true
		}
	}
	return models.Exercise{}, false
}

// TimeSignature finds a time signature by name, e.g. "3/4"
func (c *Catalog) TimeSignature(name string) (models.TimeSignature, bool) {
	for _, ts := range c.TimeSignatures {
		if strings.TrimSpace(name) == ts.Name {
			return ts, true
		}
	}
	return models.TimeSignature{}, false
}

// TempoPreset finds a preset by name, ignoring case
func (c *Catalog) TempoPreset(name string) (models.TempoPreset, bool) {
	for _, p := range c.TempoPresets {
		if strings.EqualFold(strings.TrimSpace(name), p.Name) {
			return p, true
		}
	}
	return models.TempoPreset{}, false
}

// NearestPreset returns the preset within 5 BPM of bpm, if any
func (c *Catalog) NearestPreset(bpm int) (models.TempoPreset, bool) {
	for _, p := range c.TempoPresets {
		diff := p.BPM - bpm
		if diff < 0 {
			diff = -diff
		}
		if diff <= 5 {
			return p, true
		}
	}
	return models.TempoPreset{}, false
}

// TempoDescription names the speed of a tempo
func TempoDescription(bpm int) string {
	switch {
	case bpm <= 60:
		return "Very Slow"
	case bpm <= 80:
		return "Slow"
	case bpm <= 100:
		return "Moderate"
	case bpm <= 120:
		return "Medium"
	case bpm <= 140:
		return "Fast"
	case bpm <= 160:
		return "Very Fast"
	default:
		return "Extremely Fast"
	}
}
