package eq

import "github.com/cwbudde/algo-eq/dsp/resample"

type chainConfig struct {
	bands   []BandParams
	quality resample.Quality
}

func defaultChainConfig() chainConfig {
	return chainConfig{
		bands:   DefaultBands(),
		quality: resample.QualityFast,
	}
}

// Option configures a Chain.
type Option func(*chainConfig)

// WithBands sets the initial band layout and fixes the band count for the
// lifetime of the chain. An empty layout is ignored.
func WithBands(bands ...BandParams) Option {
	return func(c *chainConfig) {
		if len(bands) == 0 {
			return
		}

		c.bands = append([]BandParams(nil), bands...)
	}
}

// WithBandCount fixes the band count to n flat peaking bands spread over
// the default layout. Values below 1 are ignored.
func WithBandCount(n int) Option {
	return func(c *chainConfig) {
		if n < 1 {
			return
		}

		defaults := DefaultBands()
		bands := make([]BandParams, n)
		for i := range bands {
			if i < len(defaults) {
				bands[i] = defaults[i]
			} else {
				bands[i] = DefaultBandParams(defaults[len(defaults)-1].CutoffHz)
			}
		}

		c.bands = bands
	}
}

// WithOversamplingQuality selects the halfband filter length used by
// oversampled bands. Defaults to resample.QualityFast.
func WithOversamplingQuality(q resample.Quality) Option {
	return func(c *chainConfig) {
		c.quality = q
	}
}
