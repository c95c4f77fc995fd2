// Package resample provides streaming 2x sample-rate conversion built on
// polyphase allpass IIR halfband filters.
//
// Interpolator2x produces two output samples per input sample and
// Decimator2x consumes two input samples per output sample. Both run in
// constant time per sample, allocate nothing after construction, and pass
// DC with exactly unity gain, which makes them suitable for wrapping
// nonlinear or frequency-warped processors inside an oversampled section
// of a real-time audio path.
//
// The filters introduce a small constant group delay that is reported by
// Latency rather than compensated internally.
package resample
