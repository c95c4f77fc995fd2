package eq

import (
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/interleave"
	"github.com/cwbudde/algo-eq/dsp/resample"
)

// bandSnapshot is the fully derived audio-side state for one band: linear
// gains and coefficients at the effective rate, ready to copy into the
// running filters without further computation.
type bandSnapshot struct {
	coef       biquad.Coefficients
	count      int
	enabled    bool
	oversample bool
	inputGain  float64
	outputGain float64
	dryWet     float64
	latency    float64
}

// Band is one equalizer band: an interleave bank, an optional 2x
// oversampling wrapper and gain staging around the filtered path.
//
// A Band on its own is single-goroutine; Chain layers the concurrent
// snapshot handoff on top.
type Band struct {
	bank    interleave.Bank
	over    *resample.Oversampler2x
	quality resample.Quality

	enabled    bool
	oversample bool
	inputGain  float64
	outputGain float64
	dryWet     float64
	latency    float64
}

// NewBand returns a disabled band. Call SetParams before processing.
func NewBand(quality resample.Quality) *Band {
	b := &Band{quality: quality}
	b.over = resample.NewOversampler2x(quality, b.bank.ProcessSample)

	return b
}

// SetParams applies a complete parameter snapshot. Coefficient updates
// keep the filter histories so sweeps stay click-free; re-enabling a
// bypassed band or toggling oversampling clears them, since the stale
// history no longer matches the signal entering the filters.
func (b *Band) SetParams(p BandParams, sampleRate float64) {
	b.apply(designBand(p, sampleRate, b.quality))
}

func (b *Band) apply(s bandSnapshot) {
	if (s.enabled && !b.enabled) || s.oversample != b.oversample {
		b.Reset()
	}

	b.bank.SetCoefficients(s.coef)
	b.bank.SetCount(s.count)
	b.enabled = s.enabled
	b.oversample = s.oversample
	b.inputGain = s.inputGain
	b.outputGain = s.outputGain
	b.dryWet = s.dryWet
	b.latency = s.latency
}

// ProcessSample runs one sample through the band.
func (b *Band) ProcessSample(x float64) float64 {
	if !b.enabled {
		return x
	}

	gained := x * b.inputGain

	var filtered float64
	if b.oversample {
		filtered = b.over.ProcessSample(gained)
	} else {
		filtered = b.bank.ProcessSample(gained)
	}

	return b.dryWet*(filtered*b.outputGain) + (1-b.dryWet)*gained
}

// ProcessBlock runs buf through the band in place.
func (b *Band) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = b.ProcessSample(x)
	}
}

// Reset zeroes the filter and resampler histories without touching
// coefficients or gains.
func (b *Band) Reset() {
	b.bank.Reset()
	b.over.Reset()
}

// Latency returns the band's group delay in host samples: zero when the
// band is bypassed or running at the host rate, the resampler round trip
// otherwise.
func (b *Band) Latency() float64 {
	return b.latency
}

// Enabled reports whether the band is in the signal path.
func (b *Band) Enabled() bool {
	return b.enabled
}
