package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
	"github.com/cwbudde/algo-eq/dsp/filter/interleave"
	"github.com/cwbudde/algo-eq/dsp/resample"
	"github.com/cwbudde/algo-eq/internal/testutil"
)

const testRate = 48000.0

func TestMeasureRejectsBadRates(t *testing.T) {
	s := &biquad.Section{Coefficients: biquad.Coefficients{B0: 1}}
	for _, rate := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := Measure(s, Config{SampleRate: rate}); !errors.Is(err, ErrInvalidSampleRate) {
			t.Errorf("rate %g: got %v, want ErrInvalidSampleRate", rate, err)
		}
	}
}

func TestMeasureMatchesClosedFormResponse(t *testing.T) {
	coef := design.Lowpass(1000, 0.707, testRate)
	sec := &biquad.Section{Coefficients: coef}

	spec, err := Measure(sec, Config{SampleRate: testRate, FFTSize: 8192})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	for _, freq := range []float64{50, 250, 1000, 2500, 8000} {
		got := spec.MagnitudeDBAt(freq)
		want := coef.MagnitudeDB(freq, testRate)
		if math.Abs(got-want) > 0.05 {
			t.Errorf("%.0f Hz: measured %.3f dB, closed form %.3f dB", freq, got, want)
		}
	}
}

func TestColdBankPreservesNominalResponse(t *testing.T) {
	// With all histories starting at zero, every interleaved instance
	// tracks the same trajectory, so the mean keeps the single-filter
	// response exactly.
	coef := design.Peak(1000, 6, 0.707, testRate)

	for _, n := range []int{1, 10} {
		bank := interleave.New(coef, n)
		spec, err := Measure(bank, Config{SampleRate: testRate, FFTSize: 8192})
		if err != nil {
			t.Fatalf("Measure: %v", err)
		}

		if got := spec.MagnitudeDBAt(1000); math.Abs(got-6) > 0.05 {
			t.Errorf("interleave %d: gain at 1 kHz = %.3f dB, want 6 dB", n, got)
		}
	}
}

func TestStaggeredBankShiftsEnergyDistribution(t *testing.T) {
	coef := design.Peak(1000, 6, 0.707, testRate)

	measureStaggered := func(warmup int) *Spectrum {
		bank := interleave.New(coef, 1)
		for _, x := range testutil.DeterministicNoise(5, 1.0, warmup) {
			bank.ProcessSample(x)
		}
		bank.SetCount(10)

		spec, err := Measure(bank, Config{SampleRate: testRate, FFTSize: 8192})
		if err != nil {
			t.Fatalf("Measure: %v", err)
		}

		return spec
	}

	cold, err := Measure(interleave.New(coef, 10), Config{SampleRate: testRate, FFTSize: 8192})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	staggered := measureStaggered(256)

	// The warm section's decaying state rides on top of the impulse
	// response, so the captured energy distribution must differ from the
	// cold bank's.
	maxDiff := 0.0
	for i, m := range staggered.Bins() {
		if d := math.Abs(m - cold.Bins()[i]); d > maxDiff {
			maxDiff = d
		}
	}
	if maxDiff < 1e-3 {
		t.Errorf("staggered spectrum deviates by only %g from cold", maxDiff)
	}
}

func TestOversampledBandKeepsTargetFrequency(t *testing.T) {
	// Coefficients for oversampled bands are designed at twice the host
	// rate; the measured boost must still land at the band's center.
	p := eq.DefaultBandParams(1000)
	p.GainDB = 6
	p.Oversample = true

	band := eq.NewBand(resample.QualityFast)
	band.SetParams(p, testRate)

	spec, err := Measure(band, Config{SampleRate: testRate, FFTSize: 8192})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	if got := spec.MagnitudeDBAt(1000); math.Abs(got-6) > 0.1 {
		t.Errorf("oversampled gain at 1 kHz = %.3f dB, want 6 dB", got)
	}
}

func TestChainResponse(t *testing.T) {
	c := eq.New(eq.WithBandCount(1))
	if err := c.Configure(testRate); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	p := eq.DefaultBandParams(2000)
	p.GainDB = -6
	p.Interleave = 3
	if err := c.SetBandParams(0, p); err != nil {
		t.Fatalf("SetBandParams: %v", err)
	}

	spec, err := Measure(c, Config{SampleRate: testRate, FFTSize: 8192})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	if got := spec.MagnitudeDBAt(2000); math.Abs(got+6) > 0.05 {
		t.Errorf("chain gain at 2 kHz = %.3f dB, want -6 dB", got)
	}
	if got := spec.MagnitudeDBAt(100); math.Abs(got) > 0.1 {
		t.Errorf("chain gain at 100 Hz = %.3f dB, want about 0 dB", got)
	}
}

func TestEnergyConcentratesAroundPeak(t *testing.T) {
	coef := design.Bandpass(1000, 4, testRate)
	sec := &biquad.Section{Coefficients: coef}

	spec, err := Measure(sec, Config{SampleRate: testRate, FFTSize: 4096})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	inBand := spec.Energy(500, 2000)
	outBand := spec.Energy(4000, 24000)
	if inBand <= outBand {
		t.Errorf("in-band energy %g not above out-of-band energy %g", inBand, outBand)
	}
}

func TestNextPow2Rounding(t *testing.T) {
	spec, err := Measure(&biquad.Section{Coefficients: biquad.Coefficients{B0: 1}},
		Config{SampleRate: testRate, FFTSize: 5000})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	if got := len(spec.Bins()); got != 8192/2+1 {
		t.Errorf("bins = %d, want %d", got, 8192/2+1)
	}
}
