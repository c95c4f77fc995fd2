// Package response measures the realized magnitude response of a running
// filter by capturing its impulse response and transforming it to the
// frequency domain. It closes the loop between designed coefficients and
// what a processor actually does to the signal, including interleave and
// oversampling effects that closed-form response formulas cannot see.
package response

import (
	"errors"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// ErrInvalidSampleRate is returned when the config carries a rate that is
// not finite and positive.
var ErrInvalidSampleRate = errors.New("response: invalid sample rate")

const defaultFFTSize = 4096

// Processor is any per-sample signal processor. The processor is driven
// from its current state; measure a freshly reset instance to obtain its
// linear response.
type Processor interface {
	ProcessSample(x float64) float64
}

// Config holds measurement parameters.
type Config struct {
	// SampleRate the processor was configured for, in Hz.
	SampleRate float64

	// FFTSize is the number of impulse-response samples captured. It is
	// rounded up to a power of two; zero selects 4096. The capture must
	// be long enough for the response to decay into the noise floor.
	FFTSize int
}

// Spectrum is a measured magnitude spectrum over [0, Nyquist].
type Spectrum struct {
	sampleRate float64
	fftSize    int
	mag        []float64
	power      []float64
}

// Measure captures p's impulse response and returns its spectrum.
func Measure(p Processor, cfg Config) (*Spectrum, error) {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, ErrInvalidSampleRate
	}

	n := nextPow2(cfg.FFTSize)
	if n < 2 {
		n = defaultFFTSize
	}

	in := make([]complex128, n)
	in[0] = complex(p.ProcessSample(1), 0)
	for i := 1; i < n; i++ {
		in[i] = complex(p.ProcessSample(0), 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, err
	}

	// Real input: only the non-negative-frequency half carries
	// information.
	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	s := &Spectrum{
		sampleRate: cfg.SampleRate,
		fftSize:    n,
		mag:        make([]float64, bins),
		power:      make([]float64, bins),
	}
	vecmath.Magnitude(s.mag, re, im)
	vecmath.Power(s.power, re, im)

	return s, nil
}

func nextPow2(n int) int {
	if n < 2 {
		return 0
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// BinWidth returns the frequency spacing between bins in Hz.
func (s *Spectrum) BinWidth() float64 {
	return s.sampleRate / float64(s.fftSize)
}

// Bins returns the linear magnitude bins from DC to Nyquist. The slice is
// owned by the Spectrum; callers must not modify it.
func (s *Spectrum) Bins() []float64 {
	return s.mag
}

// MagnitudeAt returns the linear gain at freqHz, interpolated between the
// neighboring bins. Frequencies outside [0, Nyquist] are clamped.
func (s *Spectrum) MagnitudeAt(freqHz float64) float64 {
	pos := core.Clamp(freqHz, 0, s.sampleRate/2) / s.BinWidth()

	lo := int(pos)
	if lo >= len(s.mag)-1 {
		return s.mag[len(s.mag)-1]
	}

	frac := pos - float64(lo)

	return s.mag[lo] + frac*(s.mag[lo+1]-s.mag[lo])
}

// MagnitudeDBAt returns the gain at freqHz in decibels.
func (s *Spectrum) MagnitudeDBAt(freqHz float64) float64 {
	return core.LinearToDB(s.MagnitudeAt(freqHz))
}

// Energy sums the power bins whose center frequencies fall inside
// [fromHz, toHz].
func (s *Spectrum) Energy(fromHz, toHz float64) float64 {
	if toHz < fromHz {
		fromHz, toHz = toHz, fromHz
	}

	width := s.BinWidth()
	total := 0.0
	for i, p := range s.power {
		f := float64(i) * width
		if f >= fromHz && f <= toHz {
			total += p
		}
	}

	return total
}
