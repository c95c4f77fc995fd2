package interleave

import (
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// MaxCount is the maximum number of parallel sections in a bank.
const MaxCount = 10

// Bank holds up to [MaxCount] biquad sections that share one coefficient
// set but keep independent histories. Feeding the same input to every
// active section and averaging the outputs preserves the nominal frequency
// response while the diverging histories add transient coloration that a
// single biquad cannot produce.
//
// The section storage is a fixed array with a separate active count, so
// changing the count on the audio path never allocates.
type Bank struct {
	sections [MaxCount]biquad.Section
	count    int
}

// New creates a Bank with the given coefficients and active count.
// The count is clamped into [0, MaxCount].
func New(c biquad.Coefficients, count int) *Bank {
	b := &Bank{}
	b.SetCoefficients(c)
	b.SetCount(count)

	return b
}

// Count returns the number of active sections.
func (b *Bank) Count() int {
	return b.count
}

// SetCount changes the number of active sections. Newly activated sections
// start with zeroed history (cold start) while already-active sections keep
// their accumulated history: the resulting transient is the interleave
// coloration, not an artifact to suppress. Deactivated sections are zeroed
// so a later re-activation also cold-starts.
func (b *Bank) SetCount(n int) {
	if n < 0 {
		n = 0
	}

	if n > MaxCount {
		n = MaxCount
	}

	for i := n; i < b.count; i++ {
		b.sections[i].Reset()
	}

	b.count = n
}

// SetCoefficients updates every section, active or not, to the same
// coefficient set. Callers must invoke this between samples only: all
// sections observe the new coefficients before the next ProcessSample,
// never a mix of old and new.
func (b *Bank) SetCoefficients(c biquad.Coefficients) {
	for i := range b.sections {
		b.sections[i].Coefficients = c
	}
}

// Coefficients returns the shared coefficient set.
func (b *Bank) Coefficients() biquad.Coefficients {
	return b.sections[0].Coefficients
}

// ProcessSample feeds x to every active section in index order and returns
// the arithmetic mean of their outputs. The mean normalizes loudness
// regardless of the interleave count.
//
// A count of 0 bypasses the bank entirely; a count of 1 degenerates to a
// plain biquad. O(1), no allocation.
func (b *Bank) ProcessSample(x float64) float64 {
	switch b.count {
	case 0:
		return x
	case 1:
		return b.sections[0].ProcessSample(x)
	}

	var sum float64
	for i := 0; i < b.count; i++ {
		sum += b.sections[i].ProcessSample(x)
	}

	return sum / float64(b.count)
}

// ProcessBlock filters a block of samples in-place.
func (b *Bank) ProcessBlock(buf []float64) {
	if b.count == 0 {
		return
	}

	for i, x := range buf {
		buf[i] = b.ProcessSample(x)
	}
}

// Reset zeros the history of every section without touching coefficients.
func (b *Bank) Reset() {
	for i := range b.sections {
		b.sections[i].Reset()
	}
}

// Section returns a pointer to the i-th section for inspection.
// i must be in [0, MaxCount).
func (b *Bank) Section(i int) *biquad.Section {
	return &b.sections[i]
}
