package eq_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

// The stock layout opens fully flat, so a configured chain is transparent
// until a band is boosted or cut.
func ExampleChain() {
	chain := eq.New()
	if err := chain.Configure(48000); err != nil {
		panic(err)
	}

	out := chain.ProcessSample(0.5)
	fmt.Printf("%d bands, output %.4f\n", chain.BandCount(), out)
	// Output: 5 bands, output 0.5000
}

func ExampleChain_SetBandParams() {
	chain := eq.New(eq.WithBandCount(1))
	if err := chain.Configure(48000); err != nil {
		panic(err)
	}

	boost := eq.DefaultBandParams(1200)
	boost.Type = design.Peaking
	boost.GainDB = 6
	boost.Interleave = 4
	if err := chain.SetBandParams(0, boost); err != nil {
		panic(err)
	}

	p, _ := chain.Params(0)
	fmt.Printf("%s at %.0f Hz, %d-way interleave\n", p.Type, p.CutoffHz, p.Interleave)
	// Output: peaking at 1200 Hz, 4-way interleave
}
