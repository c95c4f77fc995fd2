package resample

// Quality selects the halfband filter length.
type Quality int

const (
	// QualityFast uses two allpass sections per branch (9th-order
	// halfband). Transition band is wide but the cost per sample is
	// minimal.
	QualityFast Quality = iota
	// QualitySharp uses six allpass sections per branch (25th-order
	// halfband) for a much narrower transition band and deeper stopband.
	QualitySharp
)

// Polyphase allpass coefficients for the two halfband branches. Branch B
// carries exactly half a sample more group delay than branch A so the two
// polyphase paths line up after combination.
var (
	fastTapsA = []float64{0.167135116548925, 0.742130012538075}
	fastTapsB = []float64{0.0413554705262319, 0.3878932830211427}

	sharpTapsA = []float64{
		0.093022421467960, 0.312318050871736, 0.548379093159427,
		0.737198546150414, 0.872234992057129, 0.975497791832324,
	}
	sharpTapsB = []float64{
		0.024388383731296, 0.194029987625265, 0.433855675727187,
		0.650124972769370, 0.810418671775866, 0.925979700943193,
	}
)

func branchTaps(q Quality) (tapsA, tapsB []float64) {
	if q == QualitySharp {
		return sharpTapsA, sharpTapsB
	}
	return fastTapsA, fastTapsB
}

// allpassChain cascades one-multiply first-order allpass sections
// y[n] = x[n-1] + c*(x[n] - y[n-1]). Each section passes DC with exactly
// unity gain.
type allpassChain struct {
	coefs []float64
	x     []float64
	y     []float64
}

func newAllpassChain(coefs []float64) allpassChain {
	return allpassChain{
		coefs: coefs,
		x:     make([]float64, len(coefs)),
		y:     make([]float64, len(coefs)),
	}
}

func (c *allpassChain) process(in float64) float64 {
	for i, a := range c.coefs {
		out := c.x[i] + a*(in-c.y[i])
		c.x[i] = in
		c.y[i] = out
		in = out
	}
	return in
}

func (c *allpassChain) reset() {
	for i := range c.x {
		c.x[i] = 0
		c.y[i] = 0
	}
}

// chainDelay returns the DC group delay of the cascade in samples.
// A first-order allpass with coefficient a delays DC by (1-a)/(1+a).
func chainDelay(coefs []float64) float64 {
	d := 0.0
	for _, a := range coefs {
		d += (1 - a) / (1 + a)
	}
	return d
}

// Interpolator2x converts a stream to twice its sample rate. Each call to
// ProcessSample yields two consecutive output samples. Amplitude is
// preserved; no gain compensation is needed.
type Interpolator2x struct {
	a allpassChain
	b allpassChain
}

// NewInterpolator2x returns an interpolator with zeroed state.
func NewInterpolator2x(q Quality) *Interpolator2x {
	tapsA, tapsB := branchTaps(q)
	return &Interpolator2x{a: newAllpassChain(tapsA), b: newAllpassChain(tapsB)}
}

// ProcessSample returns the two output samples for input x, in time order.
// Branch B feeds the first slot: its extra half sample of group delay
// places both slots on a common delay of Latency() input samples.
func (u *Interpolator2x) ProcessSample(x float64) (y0, y1 float64) {
	return u.b.process(x), u.a.process(x)
}

// ProcessBlock interpolates src into dst. dst must hold 2*len(src)
// samples; excess dst capacity is left untouched.
func (u *Interpolator2x) ProcessBlock(dst, src []float64) {
	for i, x := range src {
		dst[2*i], dst[2*i+1] = u.ProcessSample(x)
	}
}

// Latency returns the group delay at DC in input samples.
func (u *Interpolator2x) Latency() float64 {
	return chainDelay(u.b.coefs)
}

// Reset clears all filter state.
func (u *Interpolator2x) Reset() {
	u.a.reset()
	u.b.reset()
}

// Decimator2x converts a stream to half its sample rate. Each call to
// ProcessSample consumes two consecutive input samples.
type Decimator2x struct {
	a allpassChain
	b allpassChain
}

// NewDecimator2x returns a decimator with zeroed state.
func NewDecimator2x(q Quality) *Decimator2x {
	tapsA, tapsB := branchTaps(q)
	return &Decimator2x{a: newAllpassChain(tapsA), b: newAllpassChain(tapsB)}
}

// ProcessSample folds the sample pair (x0, x1) into one output sample.
// x0 must be the earlier of the two.
func (d *Decimator2x) ProcessSample(x0, x1 float64) float64 {
	return 0.5 * (d.a.process(x0) + d.b.process(x1))
}

// ProcessBlock decimates src into dst. len(src) must be even and dst must
// hold len(src)/2 samples.
func (d *Decimator2x) ProcessBlock(dst, src []float64) {
	for i := range len(src) / 2 {
		dst[i] = d.ProcessSample(src[2*i], src[2*i+1])
	}
}

// Latency returns the group delay at DC in output samples.
func (d *Decimator2x) Latency() float64 {
	return chainDelay(d.a.coefs)
}

// Reset clears all filter state.
func (d *Decimator2x) Reset() {
	d.a.reset()
	d.b.reset()
}

// Latency2x reports the round-trip resampling group delay of an
// Oversampler2x of the given quality, in host samples.
func Latency2x(q Quality) float64 {
	tapsA, tapsB := branchTaps(q)
	return chainDelay(tapsA) + chainDelay(tapsB)
}

// Oversampler2x runs a per-sample processor at twice the surrounding
// sample rate. The processor sees every intermediate sample, so
// frequency-warped or nonlinear stages gain headroom up to the original
// Nyquist frequency.
type Oversampler2x struct {
	up    Interpolator2x
	down  Decimator2x
	inner func(float64) float64
}

// NewOversampler2x wraps inner, which is called twice per host sample.
func NewOversampler2x(q Quality, inner func(float64) float64) *Oversampler2x {
	return &Oversampler2x{
		up:    *NewInterpolator2x(q),
		down:  *NewDecimator2x(q),
		inner: inner,
	}
}

// ProcessSample pushes x through the interpolator, the wrapped processor
// and the decimator, returning one host-rate sample.
func (o *Oversampler2x) ProcessSample(x float64) float64 {
	u0, u1 := o.up.ProcessSample(x)
	return o.down.ProcessSample(o.inner(u0), o.inner(u1))
}

// ProcessBlock processes buf in place.
func (o *Oversampler2x) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = o.ProcessSample(x)
	}
}

// Latency returns the combined resampling group delay at DC in host
// samples. The wrapped processor's own delay is not included.
func (o *Oversampler2x) Latency() float64 {
	return o.up.Latency() + o.down.Latency()
}

// Reset clears the resampling filters. The wrapped processor is not
// touched.
func (o *Oversampler2x) Reset() {
	o.up.Reset()
	o.down.Reset()
}
