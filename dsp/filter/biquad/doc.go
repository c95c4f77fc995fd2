// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form I processing for a single second-order
// section defined by [Coefficients]. The explicit input/output history makes
// the per-sample state observable and cheap to reset, which the interleave
// and equalizer layers rely on for click-free parameter changes.
//
// This package provides the processing runtime only. Coefficient design
// (RBJ lowpass, peaking, shelving, etc.) lives in dsp/filter/design.
package biquad
