// Package design provides RBJ-cookbook biquad coefficient designers.
//
// The functions in this package produce coefficients consumable by
// dsp/filter/biquad for runtime processing. Each [FilterType] maps to one
// pure designer function; [Design] dispatches a [FilterParams] snapshot to
// the matching formula.
//
// All designers clamp out-of-range parameters to the nearest valid value
// instead of failing: this package sits below a real-time audio path that
// must always receive a usable, stable coefficient set, no matter what an
// automation lane or a deserialized preset hands in.
package design
