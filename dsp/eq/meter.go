package eq

import (
	"math"
	"sync/atomic"
)

// meterDecaySeconds is the time the peak level takes to fall by 12 dB
// after the signal drops away.
const meterDecaySeconds = 0.1

// Meter is a decaying peak-level meter. The audio goroutine feeds it one
// sample at a time; any other goroutine may read the current peak. The
// level rises instantly to new peaks and decays exponentially otherwise.
type Meter struct {
	bits atomic.Uint64
}

// meterDecayWeight returns the per-sample decay multiplier for the given
// sample rate.
func meterDecayWeight(sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}

	return math.Pow(0.25, 1/(sampleRate*meterDecaySeconds))
}

// update folds one sample into the meter using the precomputed decay
// weight.
func (m *Meter) update(x, weight float64) {
	level := math.Float64frombits(m.bits.Load())

	amp := math.Abs(x)
	if amp > level {
		level = amp
	} else {
		level *= weight
	}

	m.bits.Store(math.Float64bits(level))
}

// Peak returns the current peak level as a linear amplitude.
func (m *Meter) Peak() float64 {
	return math.Float64frombits(m.bits.Load())
}

// Reset clears the meter to silence.
func (m *Meter) Reset() {
	m.bits.Store(0)
}
