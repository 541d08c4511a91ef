package grid

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colinrgodsey/heatgrid/interpolation"
	"github.com/colinrgodsey/heatgrid/samples"
)

func TestSpecValidate(t *testing.T) {
	require.NoError(t, Spec{Size: 1}.Validate())
	for _, size := range []int{0, -3} {
		require.True(t, errors.Is(Spec{Size: size}.Validate(), ErrInvalidSpec))
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		workers   int
		want      []RowRange
		uncovered RowRange
	}{
		{"exact", 10, 2, []RowRange{{0, 5}, {5, 10}}, RowRange{10, 10}},
		{"remainder", 10, 3, []RowRange{{0, 3}, {3, 6}, {6, 9}}, RowRange{9, 10}},
		{"single worker", 7, 1, []RowRange{{0, 7}}, RowRange{7, 7}},
		{"more workers than rows", 2, 3, []RowRange{{0, 0}, {0, 0}, {0, 0}}, RowRange{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PartitionAll(tt.size, tt.workers)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.uncovered, Uncovered(tt.size, tt.workers))

			for i, r := range got {
				require.Equal(t, r, Partition(tt.size, tt.workers, i))
			}
		})
	}
}

func TestPartitionDisjoint(t *testing.T) {
	for size := 1; size <= 40; size++ {
		for workers := 1; workers <= 9; workers++ {
			owner := make([]int, size)
			for i := range owner {
				owner[i] = -1
			}
			prevEnd := 0
			for i, r := range PartitionAll(size, workers) {
				require.GreaterOrEqual(t, r.Start, prevEnd)
				prevEnd = r.End
				for row := r.Start; row < r.End; row++ {
					require.Equal(t, -1, owner[row], "row %d assigned twice", row)
					owner[row] = i
				}
			}

			rest := Uncovered(size, workers)
			require.Equal(t, size%workers, rest.Len())
			for row, w := range owner {
				require.Equal(t, rest.Contains(row), w == -1, "size %d workers %d row %d", size, workers, row)
			}
		}
	}
}

func testInterp() interpolation.Interpolator2D {
	set := samples.NewSet([]samples.Sample{
		{X: 0, Y: 0, Value: 10},
		{X: 2, Y: 2, Value: 30},
		{X: 4, Y: 1, Value: 18.5},
	})
	return interpolation.IDW(set, interpolation.DefaultPower)
}

func TestEvaluate(t *testing.T) {
	interp := testInterp()
	cells := slices.Collect(Evaluate(RowRange{1, 3}, 4, interp))

	require.Len(t, cells, 8)
	i := 0
	for row := 1; row < 3; row++ {
		for col := 0; col < 4; col++ {
			c := cells[i]
			require.Equal(t, row, c.Row)
			require.Equal(t, col, c.Col)
			require.Equal(t, interp.At(float64(row), float64(col)), c.Value)
			i++
		}
	}

	require.Equal(t, 30.0, cells[6].Value, "(2,2) is a sample location")
}

func TestEvaluateRestartable(t *testing.T) {
	seq := Evaluate(RowRange{0, 5}, 5, testInterp())
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Equal(t, first, second)

	var n int
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	require.Equal(t, 3, n)
}

func TestEvaluateEmptyRange(t *testing.T) {
	require.Empty(t, slices.Collect(Evaluate(RowRange{3, 3}, 5, testInterp())))
}

func TestRows(t *testing.T) {
	interp := testInterp()
	want := slices.Collect(Evaluate(RowRange{2, 6}, 7, interp))

	for _, threads := range []int{0, 1, 4} {
		var got []Cell
		var rows []int
		for row, cells := range Rows(RowRange{2, 6}, 7, interp, threads) {
			require.Len(t, cells, 7)
			rows = append(rows, row)
			got = append(got, cells...)
		}
		require.Equal(t, []int{2, 3, 4, 5}, rows)
		require.Equal(t, want, got, "threads %d", threads)
	}
}
