package model

import (
	"math/rand/v2"

	"github.com/sheikhrachel/species-gol/utils"
)

const historySize = 5

// Store owns the two generation buffers of a simulation: the read-only current
// generation and the output generation the engine fills during a tick.
type Store struct {
	width, height int
	current       *Grid
	next          *Grid
	pool          *GridPool
	generation    uint64

	history []string // recent grid hashes for cycle detection
}

// NewStore allocates both buffers with every cell Dead. A nil pool allocates fresh grids.
func NewStore(width, height int, pool *GridPool) (*Store, error) {
	if width <= 0 {
		return nil, utils.NewConfigurationError("width", width, "must be positive")
	}
	if height <= 0 {
		return nil, utils.NewConfigurationError("height", height, "must be positive")
	}
	s := &Store{width: width, height: height, pool: pool}
	s.current = s.allocate()
	s.next = s.allocate()
	return s, nil
}

func (s *Store) allocate() *Grid {
	if s.pool != nil {
		return s.pool.Get(s.width, s.height)
	}
	return NewGrid(s.width, s.height)
}

// Width returns the grid width
func (s *Store) Width() int { return s.width }

// Height returns the grid height
func (s *Store) Height() int { return s.height }

// Current returns the generation that is input to the next tick
func (s *Store) Current() *Grid { return s.current }

// Next returns the output buffer of the next tick. Its contents are stale
// and are overwritten cell by cell before anything reads them.
func (s *Store) Next() *Grid { return s.next }

// Generation returns the number of swaps since the last Seed
func (s *Store) Generation() uint64 { return s.generation }

// LinearIndex maps (x, y) to its row-major index
func (s *Store) LinearIndex(x, y int) int { return y*s.width + x }

// Seed fills the current generation with uniform species in [1, speciesCount],
// leaving no Dead cells, and restarts the generation count.
func (s *Store) Seed(speciesCount int, rng *rand.Rand) error {
	if err := utils.ValidateSpeciesCount(speciesCount); err != nil {
		return err
	}
	s.current.Randomize(rng, speciesCount)
	s.generation = 0
	s.history = nil
	return nil
}

// Swap promotes the output buffer to current in O(1)
func (s *Store) Swap() {
	s.current, s.next = s.next, s.current
	s.generation++
}

// Release hands both buffers back to the pool. The store must not be used afterwards.
func (s *Store) Release() {
	GridToPool(s.current, s.pool)
	GridToPool(s.next, s.pool)
	s.current, s.next = nil, nil
}

// UpdateHistory adds the current state to history and maintains size
func (s *Store) UpdateHistory() {
	s.history = append(s.history, s.current.GetGridHash())

	if len(s.history) > historySize {
		s.history = s.history[1:]
	}
}

// IsStagnant reports whether the current generation repeats one of the three
// generations before it, i.e. the grid is static or cycling with period up to 3.
// Call it before UpdateHistory for the current generation.
func (s *Store) IsStagnant() bool {
	if len(s.history) < 3 {
		return false
	}

	currentHash := s.current.GetGridHash()
	for _, h := range s.history[len(s.history)-3:] {
		if h == currentHash {
			return true
		}
	}
	return false
}
