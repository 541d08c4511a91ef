package grid

import (
	"iter"

	"github.com/colinrgodsey/heatgrid/interpolation"
)

// Cell is the estimate for a single grid coordinate.
type Cell struct {
	Row, Col int
	Value    float64
}

// Evaluate lazily estimates every cell of rows in row-major order. The
// query position of a cell is (x=row, y=col). Each iteration recomputes
// from scratch.
func Evaluate(rows RowRange, gridSize int, interp interpolation.Interpolator2D) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for row := rows.Start; row < rows.End; row++ {
			for col := 0; col < gridSize; col++ {
				c := Cell{row, col, interp.At(float64(row), float64(col))}
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Rows yields one complete row at a time, in ascending order. With threads
// > 1 the cells of each row are estimated concurrently; the yielded row is
// the same as the sequential one. The slice is reused between rows.
func Rows(rows RowRange, gridSize int, interp interpolation.Interpolator2D, threads int) iter.Seq2[int, []Cell] {
	return func(yield func(int, []Cell) bool) {
		buf := make([]Cell, gridSize)
		for row := rows.Start; row < rows.End; row++ {
			if threads > 1 {
				evalRowMulti(row, buf, interp, threads)
			} else {
				col := 0
				for c := range Evaluate(RowRange{row, row + 1}, gridSize, interp) {
					buf[col] = c
					col++
				}
			}
			if !yield(row, buf) {
				return
			}
		}
	}
}

func evalRowMulti(row int, buf []Cell, interp interpolation.Interpolator2D, threads int) {
	positions := make(chan interpolation.Pos2D)
	go func() {
		defer close(positions)
		for col := range buf {
			positions <- interpolation.Pos2D{X: float64(row), Y: float64(col)}
		}
	}()

	for s := range interp.Multi(positions, threads) {
		col := int(s.Pos.Y)
		buf[col] = Cell{row, col, s.Val}
	}
}
