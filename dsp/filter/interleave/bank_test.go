package interleave

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
	"github.com/cwbudde/algo-eq/internal/testutil"
)

func lowpass1k() biquad.Coefficients {
	return design.Lowpass(1000, 0.707, 44100)
}

func TestCountClamping(t *testing.T) {
	b := New(lowpass1k(), 99)
	if b.Count() != MaxCount {
		t.Fatalf("count = %d, want %d", b.Count(), MaxCount)
	}

	b.SetCount(-3)
	if b.Count() != 0 {
		t.Fatalf("count = %d, want 0", b.Count())
	}
}

func TestZeroCountIsExactBypass(t *testing.T) {
	b := New(lowpass1k(), 0)

	input := testutil.DeterministicNoise(42, 1, 512)
	for i, x := range input {
		if y := b.ProcessSample(x); y != x {
			t.Fatalf("sample %d: got %v, want exact input %v", i, y, x)
		}
	}
}

func TestSingleCountMatchesPlainSection(t *testing.T) {
	c := lowpass1k()
	b := New(c, 1)
	s := biquad.NewSection(c)

	input := testutil.DeterministicNoise(7, 0.8, 1024)
	for i, x := range input {
		got := b.ProcessSample(x)
		want := s.ProcessSample(x)
		if got != want {
			t.Fatalf("sample %d: bank %v != section %v (must be bit-identical)", i, got, want)
		}
	}
}

func TestImpulseIsMeanOfSections(t *testing.T) {
	c := design.Peak(1000, 6, 1, 44100)

	for _, n := range []int{2, 4, 10} {
		b := New(c, n)

		// Stagger the histories so the sections genuinely diverge.
		for i := 0; i < n; i++ {
			for k := 0; k <= i; k++ {
				b.Section(i).ProcessSample(0.5)
			}
		}

		// Reference sections with identical staggered histories.
		refs := make([]*biquad.Section, n)
		for i := range refs {
			refs[i] = biquad.NewSection(c)
			refs[i].SetState(b.Section(i).State())
		}

		impulse := testutil.Impulse(64, 0)
		for j, x := range impulse {
			var sum float64
			for i := range refs {
				sum += refs[i].ProcessSample(x)
			}
			want := sum / float64(n)

			got := b.ProcessSample(x)
			if math.Abs(got-want) > 1e-15 {
				t.Fatalf("n=%d sample %d: got %v, want mean %v", n, j, got, want)
			}
		}
	}
}

func TestSetCountColdStartsNewSections(t *testing.T) {
	b := New(lowpass1k(), 3)

	for _, x := range testutil.DeterministicSine(500, 44100, 1, 256) {
		b.ProcessSample(x)
	}

	before := make([][4]float64, 3)
	for i := range before {
		before[i] = b.Section(i).State()
	}

	b.SetCount(4)

	for i := range before {
		if b.Section(i).State() != before[i] {
			t.Fatalf("section %d history changed on count increase", i)
		}
	}
	if b.Section(3).State() != [4]float64{} {
		t.Fatalf("new section history not zeroed: %v", b.Section(3).State())
	}
}

func TestSetCountDecreaseZeroesDropped(t *testing.T) {
	b := New(lowpass1k(), 4)
	for _, x := range testutil.DeterministicSine(500, 44100, 1, 64) {
		b.ProcessSample(x)
	}

	b.SetCount(2)

	if b.Section(2).State() != [4]float64{} || b.Section(3).State() != [4]float64{} {
		t.Fatal("deactivated sections must cold-start on re-activation")
	}
}

func TestSetCoefficientsUpdatesAllSections(t *testing.T) {
	b := New(lowpass1k(), 5)
	next := design.Highpass(400, 1.1, 44100)

	b.SetCoefficients(next)

	for i := 0; i < MaxCount; i++ {
		if b.Section(i).Coefficients != next {
			t.Fatalf("section %d still has stale coefficients", i)
		}
	}
}

func TestMeanPreservesSteadyStateGain(t *testing.T) {
	// With every history committed to the same steady state, interleaving
	// must not move the response off the single-filter target.
	c := design.Peak(1000, 6, 1, 44100)

	single := New(c, 1)
	ten := New(c, 10)

	input := testutil.DeterministicSine(1000, 44100, 0.5, 44100)
	var peakSingle, peakTen float64
	for i, x := range input {
		y1 := single.ProcessSample(x)
		y10 := ten.ProcessSample(x)
		if i < 4410 {
			continue // skip onset transient
		}
		peakSingle = math.Max(peakSingle, math.Abs(y1))
		peakTen = math.Max(peakTen, math.Abs(y10))
	}

	if math.Abs(peakSingle-peakTen) > 1e-6 {
		t.Fatalf("steady-state peak differs: n=1 %v, n=10 %v", peakSingle, peakTen)
	}
}

func TestResetZeroesEverySection(t *testing.T) {
	b := New(lowpass1k(), MaxCount)
	for _, x := range testutil.DeterministicNoise(3, 1, 128) {
		b.ProcessSample(x)
	}

	b.Reset()

	for i := 0; i < MaxCount; i++ {
		if b.Section(i).State() != [4]float64{} {
			t.Fatalf("section %d not reset", i)
		}
	}
	if b.Coefficients() != lowpass1k() {
		t.Fatal("reset must not touch coefficients")
	}
}

func BenchmarkProcessSample(b *testing.B) {
	for _, n := range []int{1, 2, 10} {
		b.Run(fmt.Sprintf("N=%d", n), func(b *testing.B) {
			bank := New(lowpass1k(), n)
			x := 1.0
			for b.Loop() {
				x = bank.ProcessSample(x)
			}
			_ = x
		})
	}
}
