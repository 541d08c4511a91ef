package pipeline

import (
	"fmt"
	"time"

	"github.com/colinrgodsey/heatgrid/grid"
	"github.com/colinrgodsey/heatgrid/samples"
)

// Messages written by a worker to its tail, in order: WorkerStart, then
// grid.Cell values with a RowEnd after each row, then WorkerDone. A
// failing worker writes a WorkerError instead and stops.

type WorkerStart struct {
	Rank    int
	Rows    grid.RowRange
	Samples int
}

type RowEnd struct {
	Rank, Row int
}

type WorkerDone struct {
	Rank    int
	Rows    grid.RowRange
	Cells   int
	Elapsed time.Duration
}

type WorkerError struct {
	Rank int
	Err  error
}

func (e WorkerError) Error() string {
	return fmt.Sprintf("worker %d: %v", e.Rank, e.Err)
}

func (e WorkerError) Unwrap() error {
	return e.Err
}

// Sink consumes the output of all workers. Calls are never concurrent.
// Cells of one worker arrive in row-major order, each row followed by
// EndRow; output of different workers is interleaved arbitrarily.
type Sink interface {
	Start(rank int, rows grid.RowRange)
	Cell(rank int, c grid.Cell)
	EndRow(rank, row int)
}

// Loader produces the sample set for a worker.
type Loader func() (samples.Set, error)

// FileLoader loads path with samples.LoadFile on every call.
func FileLoader(path string) Loader {
	return func() (samples.Set, error) {
		return samples.LoadFile(path)
	}
}

// StaticLoader always returns set.
func StaticLoader(set samples.Set) Loader {
	return func() (samples.Set, error) {
		return set, nil
	}
}
