package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-formant/dsp/fft"
	"github.com/cwbudde/algo-formant/dsp/formant"
	"github.com/cwbudde/algo-formant/dsp/peak"
	"github.com/cwbudde/algo-formant/frame"
	"github.com/cwbudde/algo-formant/internal/testutil"
)

func TestAttach(t *testing.T) {
	const (
		fs     = 8000
		length = 1024
	)

	// 1000 Hz sits exactly on bin 128.
	x := testutil.ToFloat32(testutil.DeterministicSine(1000, fs, 1, length))
	spec, err := fft.Forward(fft.FromReal(x))
	require.NoError(t, err)
	in := &frame.Frame{SampleRate: fs, Samples: spec}

	out, err := attach(in, formant.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, in.Samples, out.Samples)
	assert.Equal(t, in.SampleRate, out.SampleRate)

	surviving := peak.Surviving(out.Peaks)
	require.NotEmpty(t, surviving)

	loudest := surviving[0]
	for _, p := range surviving {
		if p.FormantNr == 0 {
			loudest = p
		}
	}
	assert.InDelta(t, 1000, loudest.Freq, 2*fs/float64(length))
	assert.InDelta(t, 1, loudest.Height, 1e-9)
	assert.False(t, math.IsNaN(loudest.RolloffV))
}

func TestAttachRejectsBadLength(t *testing.T) {
	in := &frame.Frame{SampleRate: 8000, Samples: make([]float32, 6)}

	_, err := attach(in, formant.DefaultConfig(), zap.NewNop())
	assert.ErrorIs(t, err, formant.ErrInvalidLength)
}
