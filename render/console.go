package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/colinrgodsey/heatgrid/grid"
)

type Options struct {
	Mode  Mode
	Bands Bands

	// Low and High scale the truecolor gradient, usually the sample value range.
	Low, High float64

	// Banner prints a line naming each worker's rows before its output.
	Banner bool
}

// Console prints estimated cells as colored terminal rows. Cells are
// buffered per worker and each row is written in one call, so rows of
// different workers never mix on a line. Calls must not be concurrent.
type Console struct {
	w    io.Writer
	opts Options
	rows map[int]*bytes.Buffer
	err  error
}

func NewConsole(w io.Writer, opts Options) *Console {
	return &Console{
		w:    w,
		opts: opts,
		rows: make(map[int]*bytes.Buffer),
	}
}

func (c *Console) Start(rank int, rows grid.RowRange) {
	if !c.opts.Banner {
		return
	}
	c.write([]byte(fmt.Sprintf("worker %d generating segment for rows %d to %d.\n", rank, rows.Start, rows.End)))
}

func (c *Console) Cell(rank int, cell grid.Cell) {
	buf, ok := c.rows[rank]
	if !ok {
		buf = new(bytes.Buffer)
		c.rows[rank] = buf
	}
	buf.WriteString(FormatCell(cell.Value, c.opts))
}

func (c *Console) EndRow(rank, row int) {
	buf, ok := c.rows[rank]
	if !ok {
		buf = new(bytes.Buffer)
		c.rows[rank] = buf
	}
	buf.WriteByte('\n')
	c.write(buf.Bytes())
	buf.Reset()
}

// Err returns the first write error, if any.
func (c *Console) Err() error {
	return c.err
}

func (c *Console) write(b []byte) {
	if c.err != nil {
		return
	}
	_, c.err = c.w.Write(b)
}
