package biquad

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The difference equation implemented by [Section] is Direct Form I:
//
//	y = B0*x + B1*x1 + B2*x2 - A1*y1 - A2*y2
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form I processing: the previous two input and output
// samples are kept as explicit history.
type Section struct {
	Coefficients

	x1, x2 float64
	y1, y2 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zero history.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
// O(1), no allocation; safe to call once per sample at audio rate.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.B1*s.x1 + s.B2*s.x2 - s.A1*s.y1 - s.A2*s.y2

	s.x2 = s.x1
	s.x1 = x
	s.y2 = s.y1
	s.y1 = y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	x1, x2 := s.x1, s.x2
	y1, y2 := s.y1, s.y2

	for i, x := range buf {
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}

	s.x1, s.x2 = x1, x2
	s.y1, s.y2 = y1, y2
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = s.ProcessSample(x)
	}
}

// Reset zeros the input/output history without touching the coefficients.
// Used when recovering from a discontinuity (band re-enabled, interleave
// count changed, sample rate changed).
func (s *Section) Reset() {
	s.x1, s.x2 = 0, 0
	s.y1, s.y2 = 0, 0
}

// State returns the current history [x1, x2, y1, y2].
func (s *Section) State() [4]float64 {
	return [4]float64{s.x1, s.x2, s.y1, s.y2}
}

// SetState restores a previously saved history.
func (s *Section) SetState(state [4]float64) {
	s.x1, s.x2 = state[0], state[1]
	s.y1, s.y2 = state[2], state[3]
}
