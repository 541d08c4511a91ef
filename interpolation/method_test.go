package interpolation

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colinrgodsey/heatgrid/samples"
)

func TestParseMethod(t *testing.T) {
	for name, want := range map[string]Method{
		"":            MethodIDW,
		"idw":         MethodIDW,
		"idw-nearest": MethodNearestIDW,
		"microsphere": MethodMicroSphere,
	} {
		m, err := ParseMethod(name)
		require.NoError(t, err)
		require.Equal(t, want, m)
	}

	_, err := ParseMethod("kriging")
	require.True(t, errors.Is(err, ErrUnknownMethod))

	_, err = New("kriging", samples.Set{}, DefaultPower, 0)
	require.True(t, errors.Is(err, ErrUnknownMethod))
}

func TestNearestIDWFallsBackToIDW(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	set := randomSet(r, 10)
	full := IDW(set, DefaultPower)

	for _, k := range []int{0, -1, 10, 50} {
		interp := NearestIDW(set, DefaultPower, k)
		for i := 0; i < 20; i++ {
			x, y := r.Float64()*50, r.Float64()*50
			require.Equal(t, full.At(x, y), interp.At(x, y))
		}
	}
}

func TestNearestIDWUsesClosest(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	set := randomSet(r, 60)
	const k = 6
	interp := NearestIDW(set, DefaultPower, k)

	for i := 0; i < 40; i++ {
		x, y := r.Float64()*50, r.Float64()*50

		// brute force the k closest, weighed in load order
		idx := make([]int, set.Len())
		for j := range idx {
			idx[j] = j
		}
		dist := func(j int) float64 {
			s := set.At(j)
			return math.Hypot(x-s.X, y-s.Y)
		}
		sort.Slice(idx, func(a, b int) bool { return dist(idx[a]) < dist(idx[b]) })
		closest := idx[:k]
		sort.Ints(closest)

		points := make([]samples.Sample, 0, k)
		for _, j := range closest {
			points = append(points, set.At(j))
		}
		want := Estimate(x, y, samples.NewSet(points), DefaultPower)
		require.InDelta(t, want, interp.At(x, y), 1e-9)
	}
}

func TestNearestIDWExactMatch(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	set := randomSet(r, 30)
	interp := NearestIDW(set, 3, 4)

	for _, s := range set.All() {
		require.Equal(t, s.Value, interp.At(s.X, s.Y))
	}
}

func TestMicroSphere(t *testing.T) {
	r := rand.New(rand.NewSource(21))
	set := randomSet(r, 20)
	min, max, _ := set.Range()
	interp, err := New(MethodMicroSphere, set, DefaultPower, 0)
	require.NoError(t, err)

	for _, s := range set.All() {
		require.Equal(t, s.Value, interp.At(s.X, s.Y))
	}
	for i := 0; i < 50; i++ {
		v := interp.At(r.Float64()*50, r.Float64()*50)
		require.GreaterOrEqual(t, v, min-1e-9)
		require.LessOrEqual(t, v, max+1e-9)
	}

	require.Equal(t, 0.0, MicroSphere(samples.Set{}, DefaultPower).At(1, 1))
}
