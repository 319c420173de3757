package audio

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWAV_Header(t *testing.T) {
	samples := []float32{0, 0.5, -0.5, 2}
	var buf bytes.Buffer
	require.NoError(t, WriteWAV(&buf, samples, 22050))

	data := buf.Bytes()
	require.Len(t, data, 44+2*len(samples))
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
	assert.Equal(t, "data", string(data[36:40]))
	assert.Equal(t, uint32(22050), binary.LittleEndian.Uint32(data[24:28]))
	assert.Equal(t, uint32(2*len(samples)), binary.LittleEndian.Uint32(data[40:44]))

	last := int16(binary.LittleEndian.Uint16(data[44+6:]))
	assert.Equal(t, int16(32767), last, "samples are clamped")
}

func TestWriteMIDI(t *testing.T) {
	ev, err := ChordEvent([]int{-1, 3, 2, 0, 1, 0})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMIDI(&buf, ev, 120, "C Major"))
	require.Greater(t, buf.Len(), 14)
	assert.Equal(t, "MThd", string(buf.Bytes()[:4]))
	assert.Contains(t, buf.String(), "MTrk")
	assert.Contains(t, buf.String(), "C Major")
}
