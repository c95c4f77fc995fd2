package design

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// FilterType selects the RBJ coefficient formula.
type FilterType int

// Supported filter types.
const (
	LowPass FilterType = iota
	HighPass
	BandPass
	Notch
	Peaking
	LowShelf
	HighShelf
)

// String returns the filter type name.
func (t FilterType) String() string {
	switch t {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	case BandPass:
		return "bandpass"
	case Notch:
		return "notch"
	case Peaking:
		return "peaking"
	case LowShelf:
		return "lowshelf"
	case HighShelf:
		return "highshelf"
	default:
		return "unknown"
	}
}

// FilterParams is an immutable parameter snapshot consumed to derive
// coefficients. GainDB only affects Peaking and the shelf types.
type FilterParams struct {
	Type       FilterType
	CutoffHz   float64
	Q          float64
	GainDB     float64
	SampleRate float64
}

const (
	defaultQ    = 1 / math.Sqrt2
	defaultFreq = 1000.0

	// minQ is the lower clamp for the quality factor; it keeps the
	// alpha = sin(w0)/(2*Q) term finite.
	minQ = 1e-6

	// minFreq is the lower cutoff clamp in Hz.
	minFreq = 1.0

	// nyquistScale keeps the clamped cutoff strictly below Nyquist.
	nyquistScale = 0.49
)

// Design derives a0-normalized coefficients from a parameter snapshot.
// Pure and deterministic: identical inputs yield bit-identical outputs,
// and it is safe to call from any goroutine.
func Design(p FilterParams) biquad.Coefficients {
	switch p.Type {
	case HighPass:
		return Highpass(p.CutoffHz, p.Q, p.SampleRate)
	case BandPass:
		return Bandpass(p.CutoffHz, p.Q, p.SampleRate)
	case Notch:
		return NotchEQ(p.CutoffHz, p.Q, p.SampleRate)
	case Peaking:
		return Peak(p.CutoffHz, p.GainDB, p.Q, p.SampleRate)
	case LowShelf:
		return LowShelfEQ(p.CutoffHz, p.GainDB, p.Q, p.SampleRate)
	case HighShelf:
		return HighShelfEQ(p.CutoffHz, p.GainDB, p.Q, p.SampleRate)
	default:
		return Lowpass(p.CutoffHz, p.Q, p.SampleRate)
	}
}

// AtRate returns a copy of p with the sample rate replaced. The cutoff is
// carried over unchanged; the designers re-clamp it against the new Nyquist.
func (p FilterParams) AtRate(sampleRate float64) FilterParams {
	p.SampleRate = sampleRate

	return p
}

// normalizedW0 converts the cutoff to the normalized angular frequency
// 2*pi*f/sampleRate, clamping the cutoff into (0, Nyquist). The boolean is
// false only when the sample rate itself is unusable, which is a caller
// contract violation answered with a passthrough design.
func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	if math.IsNaN(freq) || math.IsInf(freq, 0) {
		freq = defaultFreq
	}

	upper := nyquistScale * sampleRate
	if freq < minFreq {
		freq = minFreq
	}

	if freq > upper {
		freq = upper
	}

	return 2 * math.Pi * freq / sampleRate, true
}

// normalizedQ clamps the quality factor to a usable positive value.
// Non-finite input falls back to the Butterworth default.
func normalizedQ(q float64) float64 {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	if q < minQ {
		return minQ
	}

	return q
}

// identity is the defensive passthrough design for contract violations.
func identity() biquad.Coefficients {
	return biquad.Coefficients{B0: 1}
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return identity()
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
