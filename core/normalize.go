package core

import (
	"math"

	"github.com/goatarena/goatrank/schema"
)

// Normalize maps a raw value onto the [0,1] comparable scale given a
// reference distribution and a method. It is a pure function with defined
// fallbacks: degenerate distributions never cause an error.
//
// Methods:
//   - min-max: (v-min)/(max-min), clamped. When max == min the distribution
//     carries no spread, so the value is either at the top (1.0) or below
//     it (0.0).
//   - log: ln(max(v,0)+1)/ln(max+1), clamped. Suited to metrics with extreme
//     outliers such as follower counts. Returns 0.0 when max <= 0.
//   - z-score: the standard normal CDF of (v-mean)/stddev. A zero stddev
//     means no information, which maps to the midpoint 0.5.
//
// An unknown method falls back to min-max behavior.
func Normalize(value float64, stats schema.ComponentStats, method schema.NormalizationMethod) float64 {
	switch method {
	case schema.LogNormalization:
		if stats.Max <= 0 {
			return 0.0
		}
		normalized := math.Log(math.Max(value, 0)+1) / math.Log(stats.Max+1)
		return clamp01(normalized)

	case schema.ZScoreNormalization:
		if stats.StdDev == 0 {
			return 0.5
		}
		z := (value - stats.Mean) / stats.StdDev
		return 0.5 * (1 + math.Erf(z/math.Sqrt2))

	default: // min-max, also the fallback for unknown methods
		if stats.Max == stats.Min {
			if value >= stats.Max {
				return 1.0
			}
			return 0.0
		}
		normalized := (value - stats.Min) / (stats.Max - stats.Min)
		return clamp01(normalized)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
