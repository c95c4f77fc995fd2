package resample_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/resample"
)

// Wrap a gain stage so it runs at twice the host rate. After the filter
// transient settles, a DC input passes through at exactly the wrapped
// processor's gain.
func ExampleOversampler2x() {
	halve := func(x float64) float64 { return 0.5 * x }
	o := resample.NewOversampler2x(resample.QualityFast, halve)

	var y float64
	for range 200 {
		y = o.ProcessSample(1)
	}
	fmt.Printf("%.4f %.2f\n", y, o.Latency())
	// Output: 0.5000 2.22
}
