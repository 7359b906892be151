package model

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/sheikhrachel/species-gol/rules"
	"github.com/sheikhrachel/species-gol/utils"
)

// Engine computes generation N+1 from generation N. Rows are split into bands that
// run in parallel; every output cell is written by exactly one band.
//
// An Engine may be shared by several stores stepping concurrently. The weighted
// semaphore caps the number of bands in flight across all of them.
type Engine struct {
	workers    int
	sem        *semaphore.Weighted
	tickSalted bool
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithWorkers sets the number of parallel bands; n <= 0 means one per CPU
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithTickSaltedTieBreak folds the generation number into the birth tie-break seed.
// Off by default, in which case the seed depends on cell position only.
func WithTickSaltedTieBreak(enabled bool) EngineOption {
	return func(e *Engine) {
		e.tickSalted = enabled
	}
}

// NewEngine returns an Engine using one worker per CPU unless configured otherwise
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(e)
	}
	e.sem = semaphore.NewWeighted(int64(e.workers))
	return e
}

// Workers returns the configured worker count
func (e *Engine) Workers() int {
	return e.workers
}

// Step fills next from current for every cell. current is only read; next must
// have the same dimensions and is fully overwritten. Step returns once every cell
// is written. A cancelled ctx stops the tick before any band is dispatched; a tick
// already dispatched runs to completion.
func (e *Engine) Step(ctx context.Context, current, next *Grid, speciesCount int, generation uint64) error {
	if err := e.checkStep(current, next, speciesCount); err != nil {
		return err
	}
	return e.sweep(ctx, current, next, speciesCount, generation, 0, current.height, 0, current.width)
}

// StepBounded is Step restricted to the bounding box of living cells plus a one
// cell margin. Cells further out have no living neighbors and stay Dead, so the
// result is identical to Step. Like Step it only reads current, so concurrent
// calls may share one current grid.
func (e *Engine) StepBounded(ctx context.Context, current, next *Grid, speciesCount int, generation uint64) error {
	if err := e.checkStep(current, next, speciesCount); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	b := current.activeBounds()

	next.Clear()
	if !b.valid {
		return nil
	}

	minX := max(0, b.minX-1)
	maxX := min(current.width-1, b.maxX+1)
	minY := max(0, b.minY-1)
	maxY := min(current.height-1, b.maxY+1)

	return e.sweep(ctx, current, next, speciesCount, generation, minY, maxY+1, minX, maxX+1)
}

// Tick advances the store by one generation and swaps its buffers
func (e *Engine) Tick(ctx context.Context, store *Store, speciesCount int, bounded bool) error {
	step := e.Step
	if bounded {
		step = e.StepBounded
	}
	if err := step(ctx, store.Current(), store.Next(), speciesCount, store.Generation()); err != nil {
		return errors.Wrapf(err, "[Tick] generation %d", store.Generation())
	}
	store.Swap()
	return nil
}

func (e *Engine) checkStep(current, next *Grid, speciesCount int) error {
	if err := utils.ValidateSpeciesCount(speciesCount); err != nil {
		return err
	}
	if current == next {
		return errors.New("[Step] current and next must be distinct buffers")
	}
	if current.width != next.width || current.height != next.height {
		return utils.NewConfigurationError("next", [2]int{next.width, next.height}, "dimensions differ from current grid")
	}
	return nil
}

// sweep evaluates rows [y0, y1) and columns [x0, x1) in parallel bands
func (e *Engine) sweep(
	ctx context.Context,
	current, next *Grid,
	speciesCount int,
	generation uint64,
	y0, y1, x0, x1 int,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if y1 <= y0 || x1 <= x0 {
		return nil
	}

	var (
		eg           errgroup.Group
		rows         = y1 - y0
		numBands     = min(e.workers, rows)
		rowsPerBand  = (rows + numBands - 1) / numBands // Ceiling division
		width        = current.width
		height       = current.height
		currentCells = current.cells
		nextCells    = next.cells
	)

	// Bands are acquired without the tick's ctx: once dispatch starts the tick
	// must finish, so it only waits for its turn on a shared engine.
	for startRow := y0; startRow < y1; startRow += rowsPerBand {
		endRow := min(startRow+rowsPerBand, y1)

		if err := e.sem.Acquire(context.Background(), 1); err != nil {
			return errors.Wrap(err, "[Step] failed to acquire worker")
		}
		eg.Go(func() error {
			defer e.sem.Release(1)
			for y := startRow; y < endRow; y++ {
				for x := x0; x < x1; x++ {
					idx := y*width + x
					seed := rules.Seed(idx, generation, e.tickSalted)
					nextCells[idx] = rules.ApplySpeciesRules(currentCells, width, height, x, y, speciesCount, seed)
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return errors.Wrap(err, "[Step] parallel sweep failed")
	}
	return nil
}
