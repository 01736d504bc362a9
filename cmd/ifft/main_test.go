package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-formant/dsp/fft"
	"github.com/cwbudde/algo-formant/frame"
)

func TestBlock(t *testing.T) {
	buf := make([]float32, 16)
	for i := range buf {
		buf[i] = float32(i)
	}

	sub, err := block(buf, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []float32{12, 13, 14, 15}, sub)

	sub, err = block(buf, 0, 0)
	require.NoError(t, err)
	assert.Len(t, sub, 16)

	_, err = block(buf, 1, 2)
	assert.Error(t, err)
	_, err = block(buf, -1, 0)
	assert.Error(t, err)
}

func TestInverseRoundTrip(t *testing.T) {
	samples := fft.FromReal([]float32{1, 2, 3, 4, 5, 6, 7, 8})
	spec, err := fft.Forward(samples)
	require.NoError(t, err)
	in := &frame.Frame{SampleRate: 8000, Samples: spec}

	out, err := inverse(in, options{window: -1}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, float32(8000), out.SampleRate)
	require.Len(t, out.Samples, len(samples))
	for i := range samples {
		assert.InDelta(t, samples[i], out.Samples[i], 1e-5)
	}
}

func TestInverseRejectsShortBlock(t *testing.T) {
	in := &frame.Frame{SampleRate: 8000, Samples: make([]float32, 8)}

	_, err := inverse(in, options{reduce: 2, window: -1}, zap.NewNop())
	assert.Error(t, err)
}

func TestInverseWindowed(t *testing.T) {
	// A flat spectrum is an impulse in time. After the window the first
	// output sample is the mean of the coefficients, which is p.
	spec := make([]float32, 16)
	for i := 0; i < len(spec); i += 2 {
		spec[i] = 1
	}
	in := &frame.Frame{SampleRate: 8000, Samples: spec}

	out, err := inverse(in, options{window: 0.5}, zap.NewNop())
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out.Samples[0], 1e-6)
	assert.InDelta(t, 0, out.Samples[1], 1e-6)
}
