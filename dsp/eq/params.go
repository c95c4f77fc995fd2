package eq

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
	"github.com/cwbudde/algo-eq/dsp/filter/interleave"
	"github.com/cwbudde/algo-eq/dsp/resample"
)

const (
	// MaxInterleave is the largest number of parallel biquad instances a
	// band can run.
	MaxInterleave = interleave.MaxCount

	// maxGainDB bounds every gain parameter, matching typical channel-EQ
	// trim ranges.
	maxGainDB = 12.0
)

// BandParams is the complete control-side description of one band. It is
// consumed as an immutable snapshot; the zero value is a disabled band.
type BandParams struct {
	// Filter shape.
	Type     design.FilterType
	CutoffHz float64
	Q        float64
	GainDB   float64

	// Interleave is the number of parallel filter instances, 0 to 10.
	// 0 bypasses the filter stage, 1 degenerates to a plain biquad.
	Interleave int

	// Enabled false makes the whole band a true bypass: samples pass
	// through untouched, with no gain or mix applied.
	Enabled bool

	// Oversample runs the filter stage at twice the host rate behind a
	// halfband resampler pair.
	Oversample bool

	// Gain staging around the filtered path, in decibels.
	InputGainDB  float64
	OutputGainDB float64

	// DryWet blends the filtered path (1) against the gained input (0).
	DryWet float64
}

// ChainGain is the top-level gain staging applied around the whole band
// sequence.
type ChainGain struct {
	InputGainDB  float64
	OutputGainDB float64
	DryWet       float64
}

// DefaultBandParams returns an enabled single-instance peaking band at the
// given center frequency with Q of 1/sqrt(2), flat gain and full wet mix.
func DefaultBandParams(cutoffHz float64) BandParams {
	return BandParams{
		Type:       design.Peaking,
		CutoffHz:   cutoffHz,
		Q:          1 / math.Sqrt2,
		Interleave: 1,
		Enabled:    true,
		DryWet:     1,
	}
}

// DefaultBands returns the stock five-band layout covering lows to air.
func DefaultBands() []BandParams {
	freqs := []float64{120, 360, 1200, 5000, 12000}
	bands := make([]BandParams, len(freqs))
	for i, f := range freqs {
		bands[i] = DefaultBandParams(f)
	}

	return bands
}

// clampGainDB folds non-finite gains to 0 dB and bounds the rest.
func clampGainDB(db float64) float64 {
	if math.IsNaN(db) || math.IsInf(db, 0) {
		return 0
	}

	return core.Clamp(db, -maxGainDB, maxGainDB)
}

func clampDryWet(w float64) float64 {
	if math.IsNaN(w) {
		return 1
	}

	return core.Clamp(w, 0, 1)
}

// clampBandParams normalizes a snapshot so that every downstream consumer
// sees finite in-range values. Cutoff and Q keep their raw values here;
// the coefficient designer applies its own frequency and Q clamps against
// the effective sample rate.
func clampBandParams(p BandParams) BandParams {
	p.GainDB = clampGainDB(p.GainDB)
	p.InputGainDB = clampGainDB(p.InputGainDB)
	p.OutputGainDB = clampGainDB(p.OutputGainDB)
	p.DryWet = clampDryWet(p.DryWet)

	if p.Interleave < 0 {
		p.Interleave = 0
	} else if p.Interleave > MaxInterleave {
		p.Interleave = MaxInterleave
	}

	return p
}

func clampChainGain(g ChainGain) ChainGain {
	g.InputGainDB = clampGainDB(g.InputGainDB)
	g.OutputGainDB = clampGainDB(g.OutputGainDB)
	g.DryWet = clampDryWet(g.DryWet)

	return g
}

// designBand turns clamped control-side parameters into the ready-to-apply
// audio-side values for one band. Oversampled bands get coefficients
// designed at twice the host rate so the response lands at the intended
// frequencies.
func designBand(p BandParams, sampleRate float64, quality resample.Quality) bandSnapshot {
	p = clampBandParams(p)

	rate := sampleRate
	if p.Oversample {
		rate *= 2
	}

	s := bandSnapshot{
		coef: design.Design(design.FilterParams{
			Type:       p.Type,
			CutoffHz:   p.CutoffHz,
			Q:          p.Q,
			GainDB:     p.GainDB,
			SampleRate: rate,
		}),
		count:      p.Interleave,
		enabled:    p.Enabled,
		oversample: p.Oversample,
		inputGain:  core.DBToLinear(p.InputGainDB),
		outputGain: core.DBToLinear(p.OutputGainDB),
		dryWet:     p.DryWet,
	}
	if s.enabled && s.oversample {
		s.latency = resample.Latency2x(quality)
	}

	return s
}
