package eq

import (
	"math"
	"testing"
)

func TestMeterTracksPeakAndDecays(t *testing.T) {
	var m Meter
	weight := meterDecayWeight(1000)

	m.update(0.5, weight)
	if m.Peak() != 0.5 {
		t.Fatalf("peak after first sample = %g, want 0.5", m.Peak())
	}

	// Louder samples raise the meter instantly, sign ignored.
	m.update(-0.9, weight)
	if m.Peak() != 0.9 {
		t.Fatalf("peak after louder sample = %g, want 0.9", m.Peak())
	}

	// Silence decays the level; the decay constant drops the meter by
	// 12 dB (a factor of 4) over 100 ms worth of samples.
	for range 100 {
		m.update(0, weight)
	}
	if got, want := m.Peak(), 0.9/4; math.Abs(got-want) > 1e-9 {
		t.Fatalf("peak after 100 ms of silence = %g, want %g", got, want)
	}

	m.Reset()
	if m.Peak() != 0 {
		t.Fatalf("peak after reset = %g, want 0", m.Peak())
	}
}

func TestChainMetersFollowSignal(t *testing.T) {
	c := New(WithBandCount(1))
	if err := c.Configure(testRate); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	c.ProcessSample(0.8)
	if got := c.InputMeter().Peak(); got != 0.8 {
		t.Fatalf("input meter = %g, want 0.8", got)
	}
	if got := c.OutputMeter().Peak(); got != 0.8 {
		t.Fatalf("output meter = %g, want 0.8", got)
	}

	c.Reset()
	if c.InputMeter().Peak() != 0 || c.OutputMeter().Peak() != 0 {
		t.Fatal("meters not cleared by Reset")
	}
}
