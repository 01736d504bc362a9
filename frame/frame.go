// Package frame reads and writes the binary sample frames passed between
// pipeline stages.
//
// A frame is little-endian:
//
//	float32  sample rate
//	uint64   sample count
//	float32  samples, count of them
//
// optionally followed by an "APPL" chunk: the 4-byte tag, a uint64 byte
// length and a peak list in the text form of EncodePeaks.
package frame

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-formant/dsp/peak"
)

var (
	// ErrShortHeader is returned when the stream ends inside the header.
	ErrShortHeader = errors.New("frame: short header")
	// ErrSizeMismatch is returned when fewer samples follow than announced.
	ErrSizeMismatch = errors.New("frame: sample count does not match payload")
	// ErrBadChunkTag is returned for trailing data that is not an APPL chunk.
	ErrBadChunkTag = errors.New("frame: unknown chunk tag")
	// ErrBadPeak is returned for malformed peak list entries.
	ErrBadPeak = errors.New("frame: malformed peak")
)

// ChunkTag marks the application chunk carrying the peak list.
const ChunkTag = "APPL"

// maxSamples bounds the announced sample count before allocation.
const maxSamples = 1 << 30

var order = binary.LittleEndian

// Frame is one buffer of real or interleaved complex samples.
type Frame struct {
	SampleRate float32
	Samples    []float32
	// Peaks is carried in the APPL chunk; nil means no chunk.
	Peaks []peak.Peak
}

// Interleaved reports whether the sample count can hold complex pairs.
func (f *Frame) Interleaved() bool { return len(f.Samples)%2 == 0 }

// Float64 returns the samples widened to float64.
func (f *Frame) Float64() []float64 {
	out := make([]float64, len(f.Samples))
	for i, v := range f.Samples {
		out[i] = float64(v)
	}

	return out
}

// WithSamples returns a frame with the same sample rate and the given samples.
func (f *Frame) WithSamples(samples []float32) *Frame {
	return &Frame{SampleRate: f.SampleRate, Samples: samples}
}

// Read reads exactly one frame from r.
func Read(r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)

	var hdr struct {
		SampleRate float32
		Count      uint64
	}
	if err := binary.Read(br, order, &hdr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShortHeader, err)
	}
	if hdr.Count > maxSamples {
		return nil, fmt.Errorf("%w: %d samples announced", ErrSizeMismatch, hdr.Count)
	}

	f := &Frame{SampleRate: hdr.SampleRate, Samples: make([]float32, hdr.Count)}
	if err := binary.Read(br, order, f.Samples); err != nil {
		return nil, fmt.Errorf("%w: want %d samples: %w", ErrSizeMismatch, hdr.Count, err)
	}

	peaks, err := readChunk(br)
	if err != nil {
		return nil, err
	}
	f.Peaks = peaks

	return f, nil
}

func readChunk(r io.Reader) ([]peak.Peak, error) {
	var tag [4]byte

	n, err := io.ReadFull(r, tag[:])
	switch {
	case n == 0 && errors.Is(err, io.EOF):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("%w: truncated tag", ErrBadChunkTag)
	case string(tag[:]) != ChunkTag:
		return nil, fmt.Errorf("%w: %q", ErrBadChunkTag, tag[:])
	}

	var length uint64
	if err := binary.Read(r, order, &length); err != nil {
		return nil, fmt.Errorf("%w: chunk length: %w", ErrSizeMismatch, err)
	}
	if length > maxSamples {
		return nil, fmt.Errorf("%w: chunk of %d bytes", ErrSizeMismatch, length)
	}

	text := make([]byte, length)
	if _, err := io.ReadFull(r, text); err != nil {
		return nil, fmt.Errorf("%w: chunk body: %w", ErrSizeMismatch, err)
	}

	return DecodePeaks(string(text))
}

// Write writes f to w, with an APPL chunk when f carries peaks.
func Write(w io.Writer, f *Frame) error {
	bw := bufio.NewWriter(w)

	hdr := struct {
		SampleRate float32
		Count      uint64
	}{f.SampleRate, uint64(len(f.Samples))}

	if err := binary.Write(bw, order, hdr); err != nil {
		return fmt.Errorf("frame: write header: %w", err)
	}
	if err := binary.Write(bw, order, f.Samples); err != nil {
		return fmt.Errorf("frame: write samples: %w", err)
	}

	if f.Peaks != nil {
		text := EncodePeaks(f.Peaks)
		if _, err := bw.WriteString(ChunkTag); err != nil {
			return fmt.Errorf("frame: write chunk: %w", err)
		}
		if err := binary.Write(bw, order, uint64(len(text))); err != nil {
			return fmt.Errorf("frame: write chunk: %w", err)
		}
		if _, err := bw.WriteString(text); err != nil {
			return fmt.Errorf("frame: write chunk: %w", err)
		}
	}

	return bw.Flush()
}
