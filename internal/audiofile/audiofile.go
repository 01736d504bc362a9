// Package audiofile decodes audio files into frames and encodes frames as
// WAV. Codecs are looked up by name in a Registry.
package audiofile

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/cwbudde/algo-formant/frame"
)

var (
	// ErrUnknownFormat is returned when no decoder is registered for a format.
	ErrUnknownFormat = errors.New("audiofile: unknown format")
	// ErrUnsupportedBitDepth is returned for PCM depths other than 8, 16, 24 or 32.
	ErrUnsupportedBitDepth = errors.New("audiofile: unsupported bit depth")
	// ErrNotAudio is returned when a stream does not carry the expected container.
	ErrNotAudio = errors.New("audiofile: not a valid audio stream")
	// ErrChannelOutOfRange is returned for a channel index the stream lacks.
	ErrChannelOutOfRange = errors.New("audiofile: channel out of range")
)

// Source is a decoded PCM stream.
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels count (1 = mono, 2 = stereo).
	Channels() int
	// ReadSamples fills dst with interleaved samples in [-1, 1] and returns
	// the number of values written. n == 0 with io.EOF ends the stream.
	ReadSamples(dst []float32) (int, error)
}

// Decoder constructs a Source from a reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format names to decoders.
type Registry struct {
	mu     sync.Mutex
	codecs map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// DefaultRegistry returns a registry with the wav, aiff, mp3 and ogg decoders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("wav", WAVDecoder{})
	r.Register("aiff", AIFFDecoder{})
	r.Register("mp3", MP3Decoder{})
	r.Register("ogg", VorbisDecoder{})

	return r
}

// Register adds or replaces the decoder for format.
func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

// Get returns the decoder for format.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		out = append(out, name)
	}
	slices.Sort(out)

	return out
}

var extensions = map[string]string{
	".wav":  "wav",
	".wave": "wav",
	".aif":  "aiff",
	".aiff": "aiff",
	".mp3":  "mp3",
	".ogg":  "ogg",
	".oga":  "ogg",
}

// FormatFromPath guesses the format name from a file extension.
func FormatFromPath(path string) (string, bool) {
	name, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return name, ok
}

// Mix selects how multichannel audio becomes one frame.
type Mix int

// MixDown averages all channels.
const MixDown Mix = -1

// Channel selects a single zero-based channel.
func Channel(i int) Mix { return Mix(i) }

// Load decodes the stream r in the given format into a single-channel frame.
func (r *Registry) Load(src io.Reader, format string, mix Mix) (*frame.Frame, error) {
	dec, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	s, err := dec.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("audiofile: decode %s: %w", format, err)
	}

	return ReadFrame(s, mix)
}

// ReadFrame drains s and reduces it to one channel.
func ReadFrame(s Source, mix Mix) (*frame.Frame, error) {
	channels := max(s.Channels(), 1)
	if int(mix) >= channels || mix < MixDown {
		return nil, fmt.Errorf("%w: %d of %d", ErrChannelOutOfRange, mix, channels)
	}

	interleaved, err := readAll(s, channels)
	if err != nil {
		return nil, err
	}

	n := len(interleaved) / channels
	out := make([]float32, n)
	for i := range n {
		row := interleaved[i*channels : (i+1)*channels]
		if mix != MixDown {
			out[i] = row[mix]
			continue
		}

		var sum float32
		for _, v := range row {
			sum += v
		}
		out[i] = sum / float32(channels)
	}

	return &frame.Frame{SampleRate: float32(s.SampleRate()), Samples: out}, nil
}

func readAll(s Source, channels int) ([]float32, error) {
	const chunk = 4096

	var out []float32
	buf := make([]float32, chunk*channels)

	for {
		n, err := s.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("audiofile: read samples: %w", err)
		}
		if n == 0 {
			return out, nil
		}
	}
}
