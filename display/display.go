// Package display shows a running simulation in a window. The window build
// requires the ebiten build tag; without it Available reports false.
package display

import (
	"time"

	"github.com/sheikhrachel/species-gol/rules"
)

// Simulation is what a window drives once per frame
type Simulation interface {
	Size() (width, height int)
	// Advance runs one tick. done reports that the run should end.
	Advance() (done bool, err error)
	// Cells returns the current generation, row-major
	Cells() []rules.SpeciesID
}

// Options controls the window
type Options struct {
	Title     string
	Scale     int
	FrameRate time.Duration // zero syncs ticks with the display refresh rate
}
