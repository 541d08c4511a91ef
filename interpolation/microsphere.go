package interpolation

import (
	"math"

	"github.com/colinrgodsey/heatgrid/samples"
)

const (
	ε       = 1e-10
	nFacets = 96
)

var norms2D [nFacets]vec2

func init() {
	for i := range norms2D {
		Θ := float64(i) / nFacets * 2.0 * math.Pi
		norms2D[i] = vec2{math.Cos(Θ), math.Sin(Θ)}
	}
}

// microSphere2D projects every sample onto a ring of facets around pos
// and keeps the strongest sample per facet. Samples within ε of pos are
// returned directly.
func microSphere2D(pos vec2, set samples.Set, power float64) float64 {
	var facets [nFacets]struct {
		w, sample float64
	}
	for _, sample := range set.All() {
		Δp := pos.sub(vec2{sample.X, sample.Y})
		Δ := Δp.dist()
		if Δ < ε {
			return sample.Value
		}
		dir := Δp.norm()
		scale := math.Pow(Δ, -power)
		for i := range facets {
			w := scale * dir.dot(norms2D[i])
			if w > facets[i].w {
				facets[i].w = w
				facets[i].sample = sample.Value
			}
		}
	}

	var totalW, totalV float64
	for _, f := range facets {
		totalW += f.w
		totalV += f.sample * f.w
	}
	if totalW == 0 {
		return 0
	}
	return totalV / totalW
}

// MicroSphere returns a microsphere projection interpolator over set.
func MicroSphere(set samples.Set, power float64) Interpolator2D {
	return func(pos Pos2D) float64 {
		return microSphere2D(pos.vec2(), set, power)
	}
}
