// Package fft transforms interleaved single-precision complex buffers
// (re0, im0, re1, im1, ...), the sample layout carried by pipeline frames.
//
// The transform itself is an algo-fft complex64 plan; the inverse is scaled
// by 1/N. Input buffers are never modified.
package fft

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-formant/dsp/core"
)

// ErrInvalidLength is returned for buffers that Valid rejects.
var ErrInvalidLength = errors.New("fft: buffer is not a power-of-two number of interleaved complex points")

// Valid reports whether an interleaved buffer of floats floats can be
// transformed: an even count holding a power-of-two number of at least two
// complex points.
func Valid(floats int) bool {
	return floats%2 == 0 && floats >= 4 && core.IsPowerOfTwo(floats/2)
}

// Plan transforms buffers of one fixed size. A Plan is not safe for
// concurrent use.
type Plan struct {
	points int
	plan   *algofft.Plan[complex64]
	work   []complex64
}

// NewPlan prepares transforms of points complex points.
func NewPlan(points int) (*Plan, error) {
	if !Valid(2 * points) {
		return nil, fmt.Errorf("%w: %d points", ErrInvalidLength, points)
	}

	p, err := algofft.NewPlanT[complex64](points)
	if err != nil {
		return nil, fmt.Errorf("fft: plan for %d points: %w", points, err)
	}

	return &Plan{points: points, plan: p, work: make([]complex64, points)}, nil
}

// Points returns the transform size in complex points.
func (p *Plan) Points() int { return p.points }

// Forward returns the discrete Fourier transform of buf.
func (p *Plan) Forward(buf []float32) ([]float32, error) {
	return p.transform(buf, false)
}

// Inverse returns the inverse transform of buf, scaled by 1/N.
func (p *Plan) Inverse(buf []float32) ([]float32, error) {
	return p.transform(buf, true)
}

func (p *Plan) transform(buf []float32, inverse bool) ([]float32, error) {
	if len(buf) != 2*p.points {
		return nil, fmt.Errorf("fft: %d floats for a %d-point plan", len(buf), p.points)
	}

	for i := range p.work {
		p.work[i] = complex(buf[2*i], buf[2*i+1])
	}

	var err error
	if inverse {
		err = p.plan.Inverse(p.work, p.work)
	} else {
		err = p.plan.Forward(p.work, p.work)
	}
	if err != nil {
		return nil, fmt.Errorf("fft: %w", err)
	}

	out := make([]float32, len(buf))
	for i, v := range p.work {
		out[2*i] = real(v)
		out[2*i+1] = imag(v)
	}

	return out, nil
}

// Forward returns the discrete Fourier transform of buf using a one-off plan.
// A malformed buffer comes back as an unchanged copy together with
// ErrInvalidLength.
func Forward(buf []float32) ([]float32, error) {
	return oneOff(buf, false)
}

// Inverse returns the inverse transform of buf, scaled by 1/N, using a
// one-off plan. Malformed buffers are handled as in Forward.
func Inverse(buf []float32) ([]float32, error) {
	return oneOff(buf, true)
}

func oneOff(buf []float32, inverse bool) ([]float32, error) {
	if !Valid(len(buf)) {
		return append([]float32(nil), buf...), fmt.Errorf("%w: %d floats", ErrInvalidLength, len(buf))
	}

	p, err := NewPlan(len(buf) / 2)
	if err != nil {
		return nil, err
	}

	return p.transform(buf, inverse)
}

// FromReal interleaves real samples with zero imaginary parts.
func FromReal(samples []float32) []float32 {
	out := make([]float32, 2*len(samples))
	for i, v := range samples {
		out[2*i] = v
	}

	return out
}

// Real extracts the real parts of an interleaved buffer.
func Real(buf []float32) []float32 {
	out := make([]float32, len(buf)/2)
	for i := range out {
		out[i] = buf[2*i]
	}

	return out
}
