package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteWAV writes mono samples as a 16-bit PCM wave file
func WriteWAV(w io.Writer, samples []float32, sampleRate int) error {
	buf := new(bytes.Buffer)
	wavHeader(buf, len(samples), sampleRate)

	pcm := make([]int16, len(samples))
	for i, v := range samples {
		pcm[i] = int16(clamp(int(v*math.MaxInt16), math.MinInt16, math.MaxInt16))
	}
	if err := binary.Write(buf, binary.LittleEndian, pcm); err != nil {
		return fmt.Errorf("failed to encode samples: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write wav: %w", err)
	}
	return nil
}

// wavHeader writes the RIFF header of a mono 16-bit PCM file holding n samples.
// See http://www-mmsp.ece.mcgill.ca/Documents/AudioFormats/WAVE/WAVE.html
func wavHeader(buf *bytes.Buffer, n, sampleRate int) {
	const (
		numChannels    = 1
		bytesPerSample = 2
	)
	dataSize := bytesPerSample * n * numChannels

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*numChannels*bytesPerSample)) // avgBytesPerSec
	binary.Write(buf, binary.LittleEndian, uint16(numChannels*bytesPerSample))            // blockAlign
	binary.Write(buf, binary.LittleEndian, uint16(8*bytesPerSample))                      // bits per sample
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
