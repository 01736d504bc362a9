package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// MultiTone sums unit-amplitude sines at the given frequencies.
func MultiTone(sampleRate float64, length int, freqs ...float64) []float64 {
	out := make([]float64, length)
	for _, f := range freqs {
		for i, v := range DeterministicSine(f, sampleRate, 1, length) {
			out[i] += v
		}
	}
	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude)
// with a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// GaussianNoise generates unit-variance normal noise with a fixed seed.
func GaussianNoise(seed int64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

// ARProcess drives the all-pole filter 1/A(z), A(z) = 1 + sum a[k] z^-(k+1),
// with seeded Gaussian noise.
func ARProcess(a []float64, seed int64, length int) []float64 {
	out := GaussianNoise(seed, length)
	for t := range out {
		for k, c := range a {
			if t-k-1 < 0 {
				break
			}
			out[t] -= c * out[t-k-1]
		}
	}
	return out
}

// ToFloat32 narrows samples to single precision.
func ToFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
