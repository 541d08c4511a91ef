package interpolation

import (
	"slices"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/colinrgodsey/heatgrid/samples"
)

// NearestIDW returns an IDW interpolator that only weighs the k samples
// closest to the query. k <= 0 or k >= set.Len() is plain IDW.
func NearestIDW(set samples.Set, power float64, k int) Interpolator2D {
	if k <= 0 || k >= set.Len() {
		return IDW(set, power)
	}

	pts := make(nodes, 0, set.Len())
	for i, s := range set.All() {
		pts = append(pts, node{vec2{s.X, s.Y}, i})
	}
	tree := kdtree.New(pts, false)

	return func(pos Pos2D) float64 {
		keeper := kdtree.NewNKeeper(k)
		tree.NearestSet(keeper, node{pos.vec2(), -1})

		idx := make([]int, 0, k)
		for _, c := range keeper.Heap {
			if c.Comparable == nil {
				continue
			}
			idx = append(idx, c.Comparable.(node).idx)
		}
		// weigh in load order so ties and exact hits resolve like IDW
		slices.Sort(idx)

		return idw(pos.vec2(), power, func(yield func(int, samples.Sample) bool) {
			for _, i := range idx {
				if !yield(i, set.At(i)) {
					return
				}
			}
		})
	}
}

// node is a sample location in the k-d tree, idx points back into the Set.
type node struct {
	vec2
	idx int
}

func (n node) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return n.vec2[d] - c.(node).vec2[d]
}

func (n node) Dims() int { return 2 }

// Distance returns the squared euclidean distance.
func (n node) Distance(c kdtree.Comparable) float64 {
	Δ := n.sub(c.(node).vec2)
	return Δ.dot(Δ)
}

type nodes []node

func (p nodes) Index(i int) kdtree.Comparable         { return p[i] }
func (p nodes) Len() int                              { return len(p) }
func (p nodes) Slice(start, end int) kdtree.Interface { return p[start:end] }

func (p nodes) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(plane{nodes: p, Dim: d}, kdtree.MedianOfMedians(plane{nodes: p, Dim: d}))
}

// plane sorts nodes along a single dimension.
type plane struct {
	nodes
	kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return p.nodes[i].vec2[p.Dim] < p.nodes[j].vec2[p.Dim]
}

func (p plane) Swap(i, j int) {
	p.nodes[i], p.nodes[j] = p.nodes[j], p.nodes[i]
}

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{nodes: p.nodes[start:end], Dim: p.Dim}
}
