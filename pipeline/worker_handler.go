package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/colinrgodsey/heatgrid/grid"
	"github.com/colinrgodsey/heatgrid/interpolation"
	"github.com/colinrgodsey/heatgrid/io"
)

// WorkerOptions configure a single worker. Rank and Workers decide
// which rows it owns.
type WorkerOptions struct {
	Rank, Workers int

	Load      Loader
	Method    interpolation.Method
	Power     float64
	Neighbors int

	// Threads estimates the cells of a row concurrently when > 1.
	Threads int

	Logger *slog.Logger
}

type workerHandler struct {
	head, tail io.Conn
	ctx        context.Context
	opts       WorkerOptions
	log        *slog.Logger
}

// WorkerHandler returns the handler for one worker. The first message on
// head must be the grid.Spec broadcast; nothing is loaded or computed
// before it arrives. Output goes to tail.
func WorkerHandler(ctx context.Context, opts WorkerOptions) func(head, tail io.Conn) {
	return func(head, tail io.Conn) {
		log := opts.Logger
		if log == nil {
			log = slog.Default()
		}
		h := workerHandler{
			head: head, tail: tail,
			ctx:  ctx,
			opts: opts,
			log:  log.With("rank", opts.Rank),
		}

		msg, err := head.ReadContext(ctx)
		if err != nil {
			return // run was abandoned before the broadcast
		}
		spec, ok := msg.(grid.Spec)
		if !ok {
			h.fail(fmt.Errorf("expected grid spec as first message, got %T", msg))
			return
		}
		if err := h.run(spec); err != nil {
			h.fail(err)
		}
	}
}

func (h *workerHandler) run(spec grid.Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	set, err := h.opts.Load()
	if err != nil {
		return fmt.Errorf("loading samples: %w", err)
	}
	interp, err := interpolation.New(h.opts.Method, set, h.opts.Power, h.opts.Neighbors)
	if err != nil {
		return err
	}

	start := time.Now()
	rows := grid.Partition(spec.Size, h.opts.Workers, h.opts.Rank)
	h.log.Info("generating segment",
		"start_row", rows.Start,
		"end_row", rows.End,
		"samples", set.Len(),
	)
	if err := h.tail.WriteContext(h.ctx, WorkerStart{h.opts.Rank, rows, set.Len()}); err != nil {
		return nil
	}

	var cells int
	for row, rowCells := range grid.Rows(rows, spec.Size, interp, h.opts.Threads) {
		for _, c := range rowCells {
			if err := h.tail.WriteContext(h.ctx, c); err != nil {
				return nil
			}
		}
		if err := h.tail.WriteContext(h.ctx, RowEnd{h.opts.Rank, row}); err != nil {
			return nil
		}
		cells += len(rowCells)
		instrumentRow(h.opts.Rank, len(rowCells))
	}

	elapsed := time.Since(start)
	instrumentWorkerDone(elapsed)
	h.log.Debug("segment done", "cells", cells, "elapsed", elapsed)

	h.tail.WriteContext(h.ctx, WorkerDone{h.opts.Rank, rows, cells, elapsed})
	return nil
}

func (h *workerHandler) fail(err error) {
	instrumentWorkerFailure()
	h.log.Error("worker failed", "error", err)
	h.tail.WriteContext(h.ctx, WorkerError{h.opts.Rank, err})
}
