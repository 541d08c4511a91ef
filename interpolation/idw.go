package interpolation

import (
	"iter"
	"math"

	"github.com/colinrgodsey/heatgrid/samples"
)

// DefaultPower is the distance decay exponent used when none is configured.
const DefaultPower = 2.0

/*
Inverse distance weighting. Each sample contributes value/d^p, normalized
by the sum of 1/d^p. A query that lands exactly on a sample returns that
sample's value; the zero test is bit-exact and happens before any
division. An empty set estimates 0.

The weights are plain float64. If d^p overflows to +Inf for every sample
all weights are 0 and the estimate falls back to 0, outside the sample
range. If d^p underflows to 0 the weights are +Inf and the estimate is
NaN. Keep coordinates and power in a range where d^p is finite and
non-zero.
*/

// Estimate returns the IDW estimate at (x, y) over every sample in set.
func Estimate(x, y float64, set samples.Set, power float64) float64 {
	return idw(vec2{x, y}, power, set.All())
}

// IDW returns an Interpolator2D over the whole sample set.
func IDW(set samples.Set, power float64) Interpolator2D {
	return func(pos Pos2D) float64 {
		return idw(pos.vec2(), power, set.All())
	}
}

func idw(target vec2, power float64, points iter.Seq2[int, samples.Sample]) float64 {
	var numerator, denominator float64
	for _, s := range points {
		d := target.sub(vec2{s.X, s.Y}).dist()
		if d == 0 {
			return s.Value
		}
		w := 1.0 / math.Pow(d, power)
		numerator += w * s.Value
		denominator += w
	}

	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
