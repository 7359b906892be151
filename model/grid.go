package model

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/sheikhrachel/species-gol/rules"
	"github.com/sheikhrachel/species-gol/utils"
)

// Grid is one generation of species IDs stored row-major
type Grid struct {
	width  int
	height int
	cells  []rules.SpeciesID
}

// bounds is the bounding box of living cells, inclusive on both ends
type bounds struct {
	minX, maxX, minY, maxY int
	valid                  bool
}

// NewGrid creates a grid with the specified dimensions, every cell Dead
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Reset(width, height)
	return g
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Cells exposes the backing slice
func (g *Grid) Cells() []rules.SpeciesID {
	return g.cells
}

// Index returns the linear index for (x, y)
func (g *Grid) Index(x, y int) int {
	return y*g.width + x
}

// Reset resizes the grid and kills every cell
func (g *Grid) Reset(width, height int) {
	g.width = width
	g.height = height
	if cap(g.cells) >= width*height {
		g.cells = g.cells[:width*height]
	} else {
		g.cells = make([]rules.SpeciesID, width*height)
	}
	g.Clear()
}

// Clear kills every cell
func (g *Grid) Clear() {
	g.Fill(rules.Dead)
}

// Fill sets every cell to s
func (g *Grid) Fill(s rules.SpeciesID) {
	for i := range g.cells {
		g.cells[i] = s
	}
}

// Set sets the species of a cell; coordinates outside the grid are ignored
func (g *Grid) Set(x, y int, s rules.SpeciesID) {
	if x >= 0 && x < g.width && y >= 0 && y < g.height {
		g.cells[y*g.width+x] = s
	}
}

// Get returns the species of a cell, Dead outside the grid
func (g *Grid) Get(x, y int) rules.SpeciesID {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return rules.Dead
	}
	return g.cells[y*g.width+x]
}

// activeBounds scans for the bounding box of living cells. It only reads the grid.
func (g *Grid) activeBounds() bounds {
	var b bounds
	for y := range g.height {
		row := g.cells[y*g.width : (y+1)*g.width]
		for x, s := range row {
			if s == rules.Dead {
				continue
			}
			if !b.valid {
				b = bounds{minX: x, maxX: x, minY: y, maxY: y, valid: true}
				continue
			}
			b.minX = min(b.minX, x)
			b.maxX = max(b.maxX, x)
			b.minY = min(b.minY, y)
			b.maxY = max(b.maxY, y)
		}
	}
	return b
}

// GetBoundingBoxSize returns the size of the active region
func (g *Grid) GetBoundingBoxSize() int {
	b := g.activeBounds()
	if !b.valid {
		return 0
	}
	return (b.maxX - b.minX + 1) * (b.maxY - b.minY + 1)
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, s := range g.cells {
		if s != rules.Dead {
			count++
		}
	}
	return
}

// Population returns per-species cell counts; index 0 is unused and values
// outside 1..speciesCount are not counted.
func (g *Grid) Population(speciesCount int) []int {
	population := make([]int, speciesCount+1)
	for _, s := range g.cells {
		if s >= 1 && int(s) <= speciesCount {
			population[s]++
		}
	}
	return population
}

// Validate returns a DomainViolation for the first cell outside {Dead} ∪ {1..speciesCount}
func (g *Grid) Validate(speciesCount int) error {
	for i, s := range g.cells {
		if !rules.InDomain(s, speciesCount) {
			return &utils.DomainViolation{Index: i, Value: int32(s), SpeciesCount: speciesCount}
		}
	}
	return nil
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	buf := make([]byte, 4*g.width)
	for y := range g.height {
		for x, s := range g.cells[y*g.width : (y+1)*g.width] {
			binary.LittleEndian.PutUint32(buf[4*x:], uint32(s))
		}
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Randomize fills every cell with a uniform species in [1, speciesCount]
func (g *Grid) Randomize(rng *rand.Rand, speciesCount int) {
	for i := range g.cells {
		g.cells[i] = rules.SpeciesID(rng.IntN(speciesCount) + 1)
	}
}
