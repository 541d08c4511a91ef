package samples

import (
	"iter"

	"gonum.org/v1/gonum/floats"
)

// Sample is a single measured value at a 2D location.
type Sample struct {
	X     float64 `csv:"x" json:"x"`
	Y     float64 `csv:"y" json:"y"`
	Value float64 `csv:"value" json:"value"`
}

// Set is an ordered, read-only collection of samples. It is safe to
// share a Set between goroutines.
type Set struct {
	points []Sample
	values []float64
}

// NewSet copies points into a new Set.
func NewSet(points []Sample) Set {
	s := Set{
		points: make([]Sample, len(points)),
		values: make([]float64, len(points)),
	}
	copy(s.points, points)
	for i, p := range s.points {
		s.values[i] = p.Value
	}
	return s
}

func (s Set) Len() int {
	return len(s.points)
}

func (s Set) At(i int) Sample {
	return s.points[i]
}

// All iterates the samples in load order.
func (s Set) All() iter.Seq2[int, Sample] {
	return func(yield func(int, Sample) bool) {
		for i, p := range s.points {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Slice returns a copy of the underlying samples.
func (s Set) Slice() []Sample {
	out := make([]Sample, len(s.points))
	copy(out, s.points)
	return out
}

// Range returns the smallest and largest sample value. ok is false
// for an empty set.
func (s Set) Range() (min, max float64, ok bool) {
	if len(s.values) == 0 {
		return
	}
	return floats.Min(s.values), floats.Max(s.values), true
}
