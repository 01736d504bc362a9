package audiofile

import (
	"errors"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-formant/frame"
)

const wavFormatPCM = 1

// EncodeWAV writes the samples of f as mono integer PCM WAV. Samples are
// clipped to [-1, 1]. bitDepth must be 8, 16, 24 or 32.
func EncodeWAV(w io.Writer, f *frame.Frame, bitDepth int) error {
	scale, err := fullScale(bitDepth)
	if err != nil {
		return err
	}

	rate := int(f.SampleRate)
	if rate <= 0 {
		return fmt.Errorf("audiofile: invalid sample rate %v", f.SampleRate)
	}

	ws, buffered := w.(io.WriteSeeker)
	mem := &memFile{}
	if !buffered {
		ws = mem
	}

	data := make([]int, len(f.Samples))
	top := float64(scale) - 1
	for i, v := range f.Samples {
		x := math.Max(-1, math.Min(1, float64(v)))
		data[i] = int(math.Round(math.Max(-float64(scale), math.Min(top, x*float64(scale)))))
	}

	enc := wav.NewEncoder(ws, rate, bitDepth, 1, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audiofile: encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audiofile: encode wav: %w", err)
	}

	if !buffered {
		if _, err := w.Write(mem.data); err != nil {
			return fmt.Errorf("audiofile: write wav: %w", err)
		}
	}

	return nil
}

// memFile is an in-memory io.ReadWriteSeeker.
type memFile struct {
	data   []byte
	offset int64
}

func (m *memFile) Read(p []byte) (int, error) {
	if m.offset >= int64(len(m.data)) {
		return 0, io.EOF
	}

	n := copy(p, m.data[m.offset:])
	m.offset += int64(n)

	return n, nil
}

func (m *memFile) Write(p []byte) (int, error) {
	end := m.offset + int64(len(p))
	if end > int64(len(m.data)) {
		m.data = append(m.data, make([]byte, end-int64(len(m.data)))...)
	}

	copy(m.data[m.offset:], p)
	m.offset = end

	return len(p), nil
}

var errNegativeOffset = errors.New("audiofile: negative seek offset")

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var next int64

	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = m.offset + offset
	case io.SeekEnd:
		next = int64(len(m.data)) + offset
	default:
		return 0, fmt.Errorf("audiofile: invalid whence %d", whence)
	}

	if next < 0 {
		return 0, errNegativeOffset
	}
	m.offset = next

	return next, nil
}
