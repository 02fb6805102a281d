package player

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

const meterChunkFrames = 512

// levelMeter computes instantaneous RMS levels from a 16-bit PCM WAV file
// for the shell's level bar. Samples are read on demand from the data
// chunk rather than loaded whole.
type levelMeter struct {
	f          *os.File
	dataOffset int64
	dataSize   int64
	sampleRate int
	channels   int
}

// openLevelMeter parses the WAV header of path. Non-WAV or non-16-bit
// input returns an error; the caller just skips the meter then.
func openLevelMeter(path string) (*levelMeter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	m, err := parseWAVHeader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	m.f = f
	return m, nil
}

func parseWAVHeader(f *os.File) (*levelMeter, error) {
	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return nil, err
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a WAV file")
	}

	m := &levelMeter{}
	offset := int64(12)
	for {
		var hdr [8]byte
		if _, err := f.ReadAt(hdr[:], offset); err != nil {
			return nil, fmt.Errorf("missing data chunk")
		}
		chunkID := string(hdr[0:4])
		chunkSize := int64(binary.LittleEndian.Uint32(hdr[4:8]))

		switch chunkID {
		case "fmt ":
			var fmtData [16]byte
			if _, err := f.ReadAt(fmtData[:], offset+8); err != nil {
				return nil, err
			}
			bits := int(binary.LittleEndian.Uint16(fmtData[14:16]))
			if bits != 16 {
				return nil, fmt.Errorf("unsupported sample width: %d bits", bits)
			}
			m.channels = int(binary.LittleEndian.Uint16(fmtData[2:4]))
			m.sampleRate = int(binary.LittleEndian.Uint32(fmtData[4:8]))
		case "data":
			m.dataOffset = offset + 8
			m.dataSize = chunkSize
			if m.sampleRate == 0 || m.channels == 0 {
				return nil, fmt.Errorf("data chunk before fmt chunk")
			}
			return m, nil
		}

		// Chunks are word-aligned.
		offset += 8 + chunkSize + (chunkSize & 1)
	}
}

// levelAt returns a normalized 0..1 RMS level for the audio around pos
// seconds. Out-of-range positions and read errors report silence.
func (m *levelMeter) levelAt(pos float64) float64 {
	if pos < 0 {
		return 0
	}

	frame := int64(pos * float64(m.sampleRate))
	start := m.dataOffset + frame*int64(m.channels)*2
	n := meterChunkFrames * m.channels * 2
	end := m.dataOffset + m.dataSize
	if start >= end {
		return 0
	}
	if start+int64(n) > end {
		n = int(end - start)
	}

	buf := make([]byte, n)
	if _, err := m.f.ReadAt(buf, start); err != nil {
		return 0
	}

	var sumSq float64
	samples := len(buf) / 2
	if samples == 0 {
		return 0
	}
	for i := 0; i < samples; i++ {
		s := int16(binary.LittleEndian.Uint16(buf[i*2 : i*2+2]))
		sumSq += float64(s) * float64(s)
	}

	rms := math.Sqrt(sumSq/float64(samples)) / 32767.0
	// RMS sits well below peak; scale up and clamp for a livelier bar.
	return math.Min(1.0, rms*2.0)
}

func (m *levelMeter) close() {
	m.f.Close()
}
