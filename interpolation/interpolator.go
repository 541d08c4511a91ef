package interpolation

import (
	"runtime"
	"sync"
)

type Sample2D struct {
	Pos Pos2D
	Val float64
}

type Pos2D struct {
	X, Y float64
}

// Interpolator2D estimates the field value at a position. Implementations
// are pure and safe for concurrent use.
type Interpolator2D func(pos Pos2D) float64

// At is a convenience for interp(Pos2D{x, y}).
func (interp Interpolator2D) At(x, y float64) float64 {
	return interp(Pos2D{x, y})
}

// Multi evaluates positions across procs goroutines (GOMAXPROCS if procs
// is <= 0). Results are not produced in input order. The returned channel
// is closed once positions is closed and drained.
func (interp Interpolator2D) Multi(positions <-chan Pos2D, procs int) <-chan Sample2D {
	var wg sync.WaitGroup
	if procs <= 0 {
		procs = runtime.GOMAXPROCS(0)
	}
	c := make(chan Sample2D, procs*5)

	wg.Add(procs)
	for i := 0; i < procs; i++ {
		go func() {
			defer wg.Done()
			for pos := range positions {
				c <- Sample2D{pos, interp(pos)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(c)
	}()

	return c
}

func (p Pos2D) vec2() vec2 {
	return vec2{p.X, p.Y}
}
