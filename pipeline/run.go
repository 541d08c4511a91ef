package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/colinrgodsey/heatgrid/grid"
	"github.com/colinrgodsey/heatgrid/io"
)

const workerQueueSize = 256

var errNoWorkers = errors.New("need at least one worker")

// Options configure a run. Worker is the template for every worker;
// Rank and Workers are filled in per worker.
type Options struct {
	Workers int
	Source  SpecSource
	Worker  WorkerOptions
	Logger  *slog.Logger
}

// Summary describes a completed run.
type Summary struct {
	Spec      grid.Spec
	Workers   []WorkerDone
	Uncovered grid.RowRange
	Cells     int
	Elapsed   time.Duration
}

type envelope struct {
	rank int
	msg  io.Any
}

func handler(head io.Conn, size int, h func(head, tail io.Conn)) (tail io.Conn) {
	head = head.Flip()
	tail = io.NewConn(size, size)

	go h(head, tail)

	return
}

// Broadcast hands spec to every worker as its first message, in rank
// order. It returns once each worker has received it. This is not a
// barrier: a worker starts loading and computing as soon as it has the
// spec, possibly before later ranks received theirs.
func Broadcast(ctx context.Context, spec grid.Spec, heads ...io.Conn) error {
	for _, head := range heads {
		if err := head.WriteContext(ctx, spec); err != nil {
			return err
		}
	}
	return nil
}

// Run starts opts.Workers workers, asks the source for the grid spec,
// broadcasts it and feeds all worker output to sink. If any worker fails
// the whole run fails with that worker's error and the rest of the
// output is dropped.
func Run(ctx context.Context, opts Options, sink Sink) (sum Summary, err error) {
	if opts.Workers < 1 {
		return sum, errNoWorkers
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	var workers sync.WaitGroup
	defer func() {
		cancel()
		workers.Wait()
	}()

	heads := make([]io.Conn, opts.Workers)
	tails := make([]io.Conn, opts.Workers)
	for rank := range heads {
		wopts := opts.Worker
		wopts.Rank, wopts.Workers = rank, opts.Workers
		if wopts.Logger == nil {
			wopts.Logger = log
		}
		h := WorkerHandler(ctx, wopts)

		heads[rank] = io.NewConn(0, 0)
		workers.Add(1)
		tails[rank] = handler(heads[rank], workerQueueSize, func(head, tail io.Conn) {
			defer workers.Done()
			h(head, tail)
		}).Flip()
	}

	if sum.Spec, err = opts.Source(ctx); err != nil {
		return sum, fmt.Errorf("reading grid spec: %w", err)
	}
	if err = sum.Spec.Validate(); err != nil {
		return sum, err
	}

	sum.Uncovered = grid.Uncovered(sum.Spec.Size, opts.Workers)
	instrumentUncovered(sum.Uncovered.Len())
	if sum.Uncovered.Len() > 0 {
		log.Warn("grid size is not a multiple of the worker count, remainder rows are not computed",
			"size", sum.Spec.Size,
			"workers", opts.Workers,
			"uncovered_start", sum.Uncovered.Start,
			"uncovered_end", sum.Uncovered.End,
		)
	}

	if err = Broadcast(ctx, sum.Spec, heads...); err != nil {
		return sum, err
	}

	sum.Workers = make([]WorkerDone, opts.Workers)
	for env := range fanIn(ctx, tails) {
		switch msg := env.msg.(type) {
		case WorkerError:
			if err == nil {
				err = msg
				cancel()
			}
		case WorkerStart:
			if err == nil {
				sink.Start(env.rank, msg.Rows)
			}
		case grid.Cell:
			if err == nil {
				sink.Cell(env.rank, msg)
			}
		case RowEnd:
			if err == nil {
				sink.EndRow(env.rank, msg.Row)
			}
		case WorkerDone:
			sum.Workers[env.rank] = msg
			sum.Cells += msg.Cells
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	sum.Elapsed = time.Since(start)
	return
}

// fanIn merges the worker tails until every worker has finished or failed.
func fanIn(ctx context.Context, tails []io.Conn) <-chan envelope {
	var wg sync.WaitGroup
	out := make(chan envelope, len(tails))

	wg.Add(len(tails))
	for rank, tail := range tails {
		go func() {
			defer wg.Done()
			for {
				msg, err := tail.ReadContext(ctx)
				if err != nil {
					return
				}
				select {
				case out <- envelope{rank, msg}:
				case <-ctx.Done():
					return
				}
				switch msg.(type) {
				case WorkerDone, WorkerError:
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
