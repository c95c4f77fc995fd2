package eq

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/resample"
)

var (
	// ErrInvalidSampleRate is returned by Configure for rates that are
	// not finite and positive.
	ErrInvalidSampleRate = errors.New("eq: invalid sample rate")
	// ErrBandIndex is returned for band indices outside the fixed layout.
	ErrBandIndex = errors.New("eq: band index out of range")
)

// snapshot is one complete, immutable set of derived audio-side settings.
// The control side builds a fresh snapshot on every change and publishes
// it whole; the audio side never sees a partial update.
type snapshot struct {
	sampleRate  float64
	inputGain   float64
	outputGain  float64
	dryWet      float64
	meterWeight float64
	bands       []bandSnapshot
}

// Chain is a fixed sequence of Bands applied in series, with top-level
// gain staging and dry/wet blend around the whole sequence.
//
// Method roles: Configure, SetBandParams, SetChainGain and Reset belong to
// the control goroutine; ProcessSample and ProcessBlock belong to the
// audio goroutine. Readers such as Latency and the meters are safe from
// anywhere.
type Chain struct {
	mu      sync.Mutex
	rate    float64
	params  []BandParams
	gain    ChainGain
	quality resample.Quality

	snap         atomic.Pointer[snapshot]
	pendingReset atomic.Bool
	violations   atomic.Uint64

	// Audio-goroutine state. Filter histories live only here.
	active      *snapshot
	bands       []*Band
	inputGain   float64
	outputGain  float64
	dryWet      float64
	meterWeight float64

	inMeter  Meter
	outMeter Meter
}

// New returns an unconfigured chain with the given band layout. Until
// Configure is called the chain passes samples through untouched.
func New(opts ...Option) *Chain {
	cfg := defaultChainConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Chain{
		params:  make([]BandParams, len(cfg.bands)),
		gain:    ChainGain{DryWet: 1},
		quality: cfg.quality,
		bands:   make([]*Band, len(cfg.bands)),
	}
	for i, p := range cfg.bands {
		c.params[i] = clampBandParams(p)
		c.bands[i] = NewBand(cfg.quality)
	}

	return c
}

// Configure sets the host sample rate. It must be called once before
// processing and again on every rate change; every band's coefficients
// are rederived and all filter histories are cleared.
func (c *Chain) Configure(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return ErrInvalidSampleRate
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rate = sampleRate
	c.publishLocked()
	c.pendingReset.Store(true)

	return nil
}

// SetBandParams replaces band index's parameters. Out-of-range gains and
// interleave counts are clamped; unchanged parameters are a no-op so
// repeated automation writes do not republish.
func (c *Chain) SetBandParams(index int, p BandParams) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.params) {
		return ErrBandIndex
	}

	p = clampBandParams(p)
	if p == c.params[index] {
		return nil
	}

	c.params[index] = p
	c.publishLocked()

	return nil
}

// SetChainGain sets the top-level input gain, output gain (both in dB,
// clamped to ±12) and dry/wet blend (clamped to [0, 1]).
func (c *Chain) SetChainGain(inputGainDB, outputGainDB, dryWet float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g := clampChainGain(ChainGain{
		InputGainDB:  inputGainDB,
		OutputGainDB: outputGainDB,
		DryWet:       dryWet,
	})
	if g == c.gain {
		return
	}

	c.gain = g
	c.publishLocked()
}

// publishLocked derives a fresh snapshot from the control-side state and
// swaps it in. Callers hold mu. Before Configure there is nothing to
// derive coefficients against, so nothing is published.
func (c *Chain) publishLocked() {
	if c.rate <= 0 {
		return
	}

	s := &snapshot{
		sampleRate:  c.rate,
		inputGain:   core.DBToLinear(c.gain.InputGainDB),
		outputGain:  core.DBToLinear(c.gain.OutputGainDB),
		dryWet:      c.gain.DryWet,
		meterWeight: meterDecayWeight(c.rate),
		bands:       make([]bandSnapshot, len(c.params)),
	}
	for i, p := range c.params {
		s.bands[i] = designBand(p, c.rate, c.quality)
	}

	c.snap.Store(s)
}

// Reset requests that all filter histories be zeroed. The audio goroutine
// honors the request at its next sample boundary; coefficients and gains
// are untouched. Meters are cleared immediately.
func (c *Chain) Reset() {
	c.pendingReset.Store(true)
	c.inMeter.Reset()
	c.outMeter.Reset()
}

// ProcessSample runs one sample through the chain. Before Configure it
// passes the sample through unchanged and records a contract violation.
func (c *Chain) ProcessSample(x float64) float64 {
	s := c.snap.Load()
	if s == nil {
		c.violations.CompareAndSwap(0, 1)

		return x
	}

	if s != c.active {
		c.apply(s)
	}

	if c.pendingReset.CompareAndSwap(true, false) {
		for _, b := range c.bands {
			b.Reset()
		}
	}

	c.inMeter.update(x, c.meterWeight)

	dry := x
	v := x * c.inputGain
	for _, b := range c.bands {
		v = b.ProcessSample(v)
	}
	v *= c.outputGain

	out := core.Sanitize(c.dryWet*v + (1-c.dryWet)*dry)
	c.outMeter.update(out, c.meterWeight)

	return out
}

// ProcessBlock runs buf through the chain in place.
func (c *Chain) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}

// apply copies a freshly published snapshot into the audio-side state.
func (c *Chain) apply(s *snapshot) {
	c.inputGain = s.inputGain
	c.outputGain = s.outputGain
	c.dryWet = s.dryWet
	c.meterWeight = s.meterWeight
	for i := range c.bands {
		c.bands[i].apply(s.bands[i])
	}

	c.active = s
}

// Configured reports whether Configure has been called with a valid rate.
func (c *Chain) Configured() bool {
	return c.snap.Load() != nil
}

// ContractViolations reports whether samples were processed before
// Configure. It latches on the first violation.
func (c *Chain) ContractViolations() uint64 {
	return c.violations.Load()
}

// BandCount returns the fixed number of bands.
func (c *Chain) BandCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.params)
}

// Params returns the current control-side parameters of band index.
func (c *Chain) Params(index int) (BandParams, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.params) {
		return BandParams{}, ErrBandIndex
	}

	return c.params[index], nil
}

// Latency returns the chain's group delay in host samples, summed over
// the enabled oversampled bands.
func (c *Chain) Latency() float64 {
	s := c.snap.Load()
	if s == nil {
		return 0
	}

	total := 0.0
	for _, b := range s.bands {
		total += b.latency
	}

	return total
}

// InputMeter returns the decaying peak meter fed by the raw chain input.
func (c *Chain) InputMeter() *Meter {
	return &c.inMeter
}

// OutputMeter returns the decaying peak meter fed by the chain output.
func (c *Chain) OutputMeter() *Meter {
	return &c.outMeter
}
