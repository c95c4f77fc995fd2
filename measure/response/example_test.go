package response_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
	"github.com/cwbudde/algo-eq/measure/response"
)

// Measure a Butterworth lowpass and read its gain in the passband and at
// the cutoff.
func ExampleMeasure() {
	sec := &biquad.Section{Coefficients: design.Lowpass(1000, 0.707, 48000)}

	spec, err := response.Measure(sec, response.Config{SampleRate: 48000, FFTSize: 8192})
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.3f at 100 Hz, %.3f at cutoff\n", spec.MagnitudeAt(100), spec.MagnitudeAt(1000))
	// Output: 1.000 at 100 Hz, 0.707 at cutoff
}
