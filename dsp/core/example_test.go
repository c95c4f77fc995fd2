package core_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
)

func ExampleSanitize() {
	fmt.Println(core.Sanitize(0.5), core.Sanitize(math.NaN()), core.Sanitize(math.Inf(1)))

	// Output:
	// 0.5 0 0
}

func ExampleDBToLinear() {
	fmt.Printf("%.4f\n", core.DBToLinear(-6))

	// Output:
	// 0.5012
}
