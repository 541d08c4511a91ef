package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	gio "io"
	"strconv"
	"strings"

	"github.com/colinrgodsey/heatgrid/grid"
)

// SpecSource decides the grid spec for a run. Run calls it exactly once,
// from the coordinator, after the workers are waiting for the broadcast.
type SpecSource func(ctx context.Context) (grid.Spec, error)

// StaticSpec always returns a grid of the given size.
func StaticSpec(size int) SpecSource {
	return func(context.Context) (grid.Spec, error) {
		return grid.Spec{Size: size}, nil
	}
}

// PromptSpec asks for the grid size on w and reads it from r. Blank
// lines are skipped.
func PromptSpec(r gio.Reader, w gio.Writer) SpecSource {
	return func(ctx context.Context) (spec grid.Spec, err error) {
		if _, err = fmt.Fprint(w, "Enter the grid size: "); err != nil {
			return
		}

		lines := make(chan string, 1)
		errs := make(chan error, 1)
		go func() {
			scanner := bufio.NewScanner(r)
			for scanner.Scan() {
				if line := strings.TrimSpace(scanner.Text()); line != "" {
					lines <- line
					return
				}
			}
			err := scanner.Err()
			if err == nil {
				err = gio.ErrUnexpectedEOF
			}
			errs <- err
		}()

		select {
		case <-ctx.Done():
			err = ctx.Err()
		case err = <-errs:
		case line := <-lines:
			if spec.Size, err = strconv.Atoi(line); err != nil {
				err = errors.Join(grid.ErrInvalidSpec, err)
			}
		}
		return
	}
}
