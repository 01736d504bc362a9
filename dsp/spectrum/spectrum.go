package spectrum

import (
	"errors"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// ErrOddLength is returned for interleaved buffers with an odd float count.
var ErrOddLength = errors.New("spectrum: interleaved buffer has odd length")

// scratchBuf holds pooled scratch memory for deinterleaving.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

// Magnitude returns |X[k]| for every complex point of an interleaved buffer.
func Magnitude(buf []float32) ([]float64, error) {
	if len(buf)%2 != 0 {
		return nil, ErrOddLength
	}

	return magnitude(buf, len(buf)/2), nil
}

// HalfMagnitude returns |X[k]| for the first N/2 bins (DC up to, but
// excluding, Nyquist) of an N-point interleaved spectrum.
func HalfMagnitude(buf []float32) ([]float64, error) {
	if len(buf)%2 != 0 {
		return nil, ErrOddLength
	}

	return magnitude(buf, len(buf)/4), nil
}

func magnitude(buf []float32, bins int) []float64 {
	if bins == 0 {
		return nil
	}

	out := make([]float64, bins)
	re, im, scratch := getScratch(bins)

	for k := range bins {
		re[k] = float64(buf[2*k])
		im[k] = float64(buf[2*k+1])
	}

	vecmath.Magnitude(out, re, im)
	scratchPool.Put(scratch)

	return out
}

// Normalize scales data in place so that its largest value becomes 1 and
// returns the original maximum. Data whose maximum is not positive is left
// untouched.
func Normalize(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	peak := floats.Max(data)
	if peak > 0 {
		floats.Scale(1/peak, data)
	}

	return peak
}

// NormalizeAbs scales samples in place by their largest absolute value and
// returns that value.
func NormalizeAbs(samples []float32) float32 {
	var peak float32
	for _, v := range samples {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}

	if peak > 0 {
		for i := range samples {
			samples[i] /= peak
		}
	}

	return peak
}

// BinHz returns the bin spacing fs/N of an N-point transform.
func BinHz(sampleRate float64, points int) float64 {
	if points <= 0 {
		return 0
	}

	return sampleRate / float64(points)
}

// BinFrequency returns the center frequency of (fractional) bin k.
func BinFrequency(k, sampleRate float64, points int) float64 {
	return k * BinHz(sampleRate, points)
}
