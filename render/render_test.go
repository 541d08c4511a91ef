package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colinrgodsey/heatgrid/grid"
)

var defaultBands = Bands{Cold: 15, Mild: 25}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"ansi", "truecolor", "none"} {
		m, err := ParseMode(name)
		require.NoError(t, err)
		require.Equal(t, Mode(name), m)
	}
	_, err := ParseMode("sixel")
	require.True(t, errors.Is(err, ErrUnknownMode))
}

func TestANSIColor(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{10.0, 44},
		{14.75, 47},
		{15.0, 42},
		{20.5, 44},
		{24.99, 45},
		{25.0, 41},
		{30.25, 42},
		{-0.75, 41},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ansiColor(tt.v, defaultBands), "value %v", tt.v)
	}
}

func TestFormatCell(t *testing.T) {
	opts := Options{Mode: ModeANSI, Bands: defaultBands}
	require.Equal(t, "\033[42m[20.0]\033[0m", FormatCell(20, opts))
	require.Equal(t, "\033[44m[3.0]\033[0m", FormatCell(3, opts))

	opts.Mode = ModeNone
	require.Equal(t, "[99.0]", FormatCell(99, opts))

	opts = Options{Mode: ModeTrueColor, Low: 0, High: 10}
	require.Equal(t, "\033[48;2;0;0;255m[0.0]\033[0m", FormatCell(0, opts))
	require.Equal(t, "\033[48;2;255;0;0m[10.0]\033[0m", FormatCell(10, opts))
	require.Equal(t, "\033[48;2;255;0;0m[12.0]\033[0m", FormatCell(12, opts))
}

func TestConsoleRows(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, Options{Mode: ModeNone, Banner: true})

	c.Start(0, grid.RowRange{Start: 0, End: 1})
	c.Start(1, grid.RowRange{Start: 1, End: 2})
	c.Cell(0, grid.Cell{Row: 0, Col: 0, Value: 1})
	c.Cell(1, grid.Cell{Row: 1, Col: 0, Value: 3})
	c.Cell(0, grid.Cell{Row: 0, Col: 1, Value: 2})
	c.EndRow(0, 0)
	c.Cell(1, grid.Cell{Row: 1, Col: 1, Value: 4})
	c.EndRow(1, 1)
	require.NoError(t, c.Err())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Equal(t, []string{
		"worker 0 generating segment for rows 0 to 1.",
		"worker 1 generating segment for rows 1 to 2.",
		"[1.0][2.0]",
		"[3.0][4.0]",
	}, lines)
}
