package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidSpec is returned for grids that can't be evaluated.
var ErrInvalidSpec = errors.New("invalid grid spec")

// Spec describes a Size x Size grid of integer (row, col) coordinates.
type Spec struct {
	Size int `json:"size"`
}

func (s Spec) Validate() error {
	if s.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidSpec, s.Size)
	}
	return nil
}

// RowRange is a half-open [Start, End) band of rows.
type RowRange struct {
	Start, End int
}

func (r RowRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

func (r RowRange) Contains(row int) bool {
	return row >= r.Start && row < r.End
}

func (r RowRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

/*
Every worker gets gridSize/workerCount rows, starting at
workerIndex*segment. When the division isn't exact the last
gridSize%workerCount rows belong to nobody; see Uncovered.
*/

// Partition returns the rows owned by workerIndex.
func Partition(gridSize, workerCount, workerIndex int) RowRange {
	segment := gridSize / workerCount
	start := workerIndex * segment
	return RowRange{start, start + segment}
}

// PartitionAll returns the row range of every worker, in worker order.
func PartitionAll(gridSize, workerCount int) []RowRange {
	out := make([]RowRange, workerCount)
	for i := range out {
		out[i] = Partition(gridSize, workerCount, i)
	}
	return out
}

// Uncovered returns the remainder rows that Partition assigns to no worker.
func Uncovered(gridSize, workerCount int) RowRange {
	covered := workerCount * (gridSize / workerCount)
	return RowRange{covered, gridSize}
}
