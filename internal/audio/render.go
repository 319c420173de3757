package audio

import (
	"time"

	"github.com/viterin/vek/vek32"
)

// samplesFor converts a duration into a sample count
func samplesFor(d time.Duration, sampleRate int) int {
	return int(d.Seconds() * float64(sampleRate))
}

// renderVoice produces the mono samples of a single voice
func renderVoice(v Voice, sampleRate int) []float32 {
	n := samplesFor(v.Duration, sampleRate)
	out := make([]float32, n)
	if n == 0 || v.Freq <= 0 {
		return out
	}

	filter := newBiquad(v.Filter, sampleRate)
	step := v.Freq / float64(sampleRate)
	phase := 0.0
	for i := range out {
		t := time.Duration(float64(i) / float64(sampleRate) * float64(time.Second))
		s := filter.process(oscillate(v.Wave, phase))
		out[i] = float32(s * v.Env.Gain(t, v.Duration))
		phase += step
		if phase >= 1 {
			phase -= 1
		}
	}
	return out
}

// Render mixes every voice of the event into one mono buffer. The mix is scaled
// down when overlapping voices would clip.
func Render(ev Event, sampleRate int) []float32 {
	mix := make([]float32, samplesFor(ev.Duration(), sampleRate))
	for _, v := range ev.Voices {
		start := samplesFor(v.Offset, sampleRate)
		if start >= len(mix) {
			continue
		}
		rendered := renderVoice(v, sampleRate)
		end := start + len(rendered)
		if end > len(mix) {
			end = len(mix)
			rendered = rendered[:end-start]
		}
		vek32.Add_Inplace(mix[start:end], rendered)
	}
	Normalize(mix, 1)
	return mix
}

// Normalize scales buf in place so its peak magnitude doesn't exceed limit
func Normalize(buf []float32, limit float32) {
	if len(buf) == 0 {
		return
	}
	abs := vek32.Abs(buf)
	peak := vek32.Max(abs)
	if peak > limit {
		vek32.MulNumber_Inplace(buf, limit/peak)
	}
}

// Stereo duplicates a mono buffer into interleaved left/right samples
func Stereo(mono []float32) []float32 {
	out := make([]float32, 2*len(mono))
	for i, s := range mono {
		out[2*i] = s
		out[2*i+1] = s
	}
	return out
}
