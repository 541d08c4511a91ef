package render

import (
	"errors"
	"fmt"
	"math"

	hsl "github.com/gerow/go-color"
)

// ErrUnknownMode is returned for unsupported render modes.
var ErrUnknownMode = errors.New("unknown render mode")

type Mode string

const (
	// ModeANSI uses the 8 standard background colors.
	ModeANSI Mode = "ansi"
	// ModeTrueColor maps values onto a 24-bit blue to red gradient.
	ModeTrueColor Mode = "truecolor"
	// ModeNone prints bare values.
	ModeNone Mode = "none"
)

func ParseMode(name string) (Mode, error) {
	switch m := Mode(name); m {
	case ModeANSI, ModeTrueColor, ModeNone:
		return m, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMode, name)
}

// Bands are the exclusive upper bounds of the cold (blue) and mild
// (green) ANSI colors. Anything at or above Mild is red.
type Bands struct {
	Cold, Mild float64
}

const (
	ansiRed   = 41
	ansiGreen = 42
	ansiBlue  = 44

	// blue, in go-color hue units
	coldHue = 2.0 / 3.0
)

// ansiColor picks the background color code for v. The fractional part
// of v nudges the code up to 3 steps past the band color.
func ansiColor(v float64, bands Bands) int {
	base := ansiRed
	switch {
	case v < bands.Cold:
		base = ansiBlue
	case v < bands.Mild:
		base = ansiGreen
	}
	return base + int((v-math.Trunc(v))*4)
}

func trueColor(v, low, high float64) (r, g, b uint8) {
	z := 0.5
	if high > low {
		z = clamp((v - low) / (high - low))
	}
	c := hsl.HSL{H: (1 - z) * coldHue, S: 1, L: 0.5}.ToRGB()
	return uint8(c.R * 255), uint8(c.G * 255), uint8(c.B * 255)
}

func clamp(f float64) float64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	} else if f > 1 {
		return 1
	}
	return f
}

// FormatCell renders a single value the way Console prints it.
func FormatCell(v float64, opts Options) string {
	switch opts.Mode {
	case ModeTrueColor:
		r, g, b := trueColor(v, opts.Low, opts.High)
		return fmt.Sprintf("\033[48;2;%d;%d;%dm[%2.1f]\033[0m", r, g, b, v)
	case ModeNone:
		return fmt.Sprintf("[%2.1f]", v)
	}
	return fmt.Sprintf("\033[%dm[%2.1f]\033[0m", ansiColor(v, opts.Bands), v)
}
