package interpolation

import "math"

type vec2 [2]float64

func (v vec2) dot(o vec2) float64 {
	return v[0]*o[0] + v[1]*o[1]
}

func (v vec2) sub(o vec2) vec2 {
	return vec2{v[0] - o[0], v[1] - o[1]}
}

func (v vec2) mul(s float64) vec2 {
	return vec2{v[0] * s, v[1] * s}
}

func (v vec2) dist() float64 {
	return math.Sqrt(v.dot(v))
}

func (v vec2) norm() vec2 {
	d := v.dist()
	switch d {
	case 0, 1:
		return v
	}
	return v.mul(1.0 / d)
}
