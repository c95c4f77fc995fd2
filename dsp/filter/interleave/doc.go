// Package interleave provides a bank of parallel biquad sections that share
// one coefficient set but evolve independent histories.
//
// A [Bank] feeds each input sample to all active sections in a fixed order
// and emits the arithmetic mean of their outputs. With identical histories
// the mean is indistinguishable from a single biquad; once the histories
// diverge (a count change cold-starts the new sections) the combination
// adds amplitude and phase detail around transients while the steady-state
// response stays on the single-filter target.
package interleave
