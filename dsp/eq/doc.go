// Package eq implements a multi-band equalizer whose bands run an
// "interleave" of parallel biquad instances instead of a single filter.
//
// Each band owns up to ten biquad sections that share one coefficient set
// but keep independent histories. Their outputs are averaged, which keeps
// the nominal frequency response of a single filter while adding transient
// coloration that grows with the interleave count. Bands can optionally run
// their filter stage at twice the host sample rate behind a halfband
// resampler pair.
//
// Chain is safe to drive from two goroutines with fixed roles: a control
// goroutine calls Configure, SetBandParams, SetChainGain and Reset while an
// audio goroutine calls ProcessSample or ProcessBlock. Parameter updates
// are published as complete immutable snapshots through an atomic pointer,
// so the audio goroutine always observes either the old or the new settings
// in full. The audio path performs no allocation, takes no locks and never
// returns an error; invalid parameters are clamped and non-finite outputs
// are sanitized to silence.
package eq
