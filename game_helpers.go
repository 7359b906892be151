package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/species-gol/model"
	"github.com/sheikhrachel/species-gol/rules"
	"github.com/sheikhrachel/species-gol/utils"
)

// simulation drives the store and engine one tick at a time
type simulation struct {
	ctx    context.Context
	config utils.Config
	out    io.Writer

	pool   *model.GridPool
	store  *model.Store
	engine *model.Engine
	rng    *rand.Rand
	stats  *utils.Stats

	generation     int // total generations, across restarts
	stagnantCount  int
	lastRestartGen int
	lastFrameTime  time.Time
}

// newSimulation sets up the initial game state from a validated config
func newSimulation(ctx context.Context, config utils.Config, out io.Writer) (*simulation, error) {
	var pool *model.GridPool
	if config.UseMemoryPool {
		pool = model.NewGridPool()
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sim := &simulation{
		ctx:    ctx,
		config: config,
		out:    out,
		pool:   pool,
		engine: model.NewEngine(
			model.WithWorkers(config.Workers),
			model.WithTickSaltedTieBreak(config.TickSaltedTieBreak),
		),
		rng:           rand.New(rand.NewPCG(uint64(seed), 0)),
		stats:         utils.NewStats(),
		lastFrameTime: time.Now(),
	}
	if err := sim.reseed(); err != nil {
		return nil, err
	}
	return sim, nil
}

// reseed replaces the store with a freshly seeded one, recycling the old buffers
func (s *simulation) reseed() error {
	if s.store != nil {
		s.store.Release()
	}
	store, err := model.NewStore(s.config.Width, s.config.Height, s.pool)
	if err != nil {
		return errors.Wrap(err, "[reseed] failed to allocate grid store")
	}
	if err = store.Seed(s.config.SpeciesCount, s.rng); err != nil {
		return errors.Wrap(err, "[reseed] failed to seed grid store")
	}
	s.store = store
	s.stagnantCount = 0
	return nil
}

// Size implements display.Simulation
func (s *simulation) Size() (int, int) {
	return s.store.Width(), s.store.Height()
}

// Cells implements display.Simulation
func (s *simulation) Cells() []rules.SpeciesID {
	return s.store.Current().Cells()
}

// Advance implements display.Simulation. It runs one tick, then observes the
// new generation for stagnation and restarts when configured to.
func (s *simulation) Advance() (bool, error) {
	if s.ctx.Err() != nil {
		return true, nil
	}
	if s.config.MaxGenerations > 0 && s.generation >= s.config.MaxGenerations {
		fmt.Fprintf(s.out, "\n🏁 Reached maximum generations limit (%d)\n", s.config.MaxGenerations)
		return true, nil
	}

	frameStart := time.Now()
	if err := s.engine.Tick(s.ctx, s.store, s.config.SpeciesCount, s.config.UseBoundedGrid); err != nil {
		if s.ctx.Err() != nil {
			return true, nil
		}
		return false, err
	}
	s.generation++

	livingCells, isStagnant := s.updateGameState(frameStart)
	s.lastFrameTime = frameStart

	if isStagnant {
		s.stagnantCount++
	} else {
		s.stagnantCount = 0
	}

	shouldRestart, reason := checkRestartConditions(livingCells, s.stagnantCount, s.config)
	if shouldRestart && s.config.AutoRestart {
		fmt.Fprintf(s.out, "🔄 Restarting due to %s...\n", reason)
		if err := s.reseed(); err != nil {
			return false, err
		}
		s.lastRestartGen = s.generation
	}
	return false, nil
}

// Close returns the grid buffers to the pool
func (s *simulation) Close() {
	if s.store != nil {
		s.store.Release()
		s.store = nil
	}
}

// updateGameState refreshes stats and stagnation history for the current generation
func (s *simulation) updateGameState(frameStart time.Time) (int, bool) {
	current := s.store.Current()
	population := current.Population(s.config.SpeciesCount)
	s.stats.Update(s.generation, population[1:], frameStart.Sub(s.lastFrameTime))

	// Check against history before recording this generation in it
	isStagnant := s.store.IsStagnant()
	s.store.UpdateHistory()

	return s.stats.LivingCells, isStagnant
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, sim *simulation) {
	fmt.Fprintf(out, "Features: Memory Pool: %v, Bounded: %v, Workers: %d, Salted tie-break: %v\n",
		config.UseMemoryPool, config.UseBoundedGrid, sim.engine.Workers(), config.TickSaltedTieBreak)
	fmt.Fprintf(out, "Grid: %dx%d | Species: %d | Initial living cells: %d\n",
		config.Width, config.Height, config.SpeciesCount, sim.store.Current().CountLivingCells())
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(out)
}

// displayGameStatus shows the current game status
func displayGameStatus(out io.Writer, sim *simulation) {
	var (
		stats   = sim.stats
		cells   = sim.config.Width * sim.config.Height
		density = float64(stats.LivingCells) / float64(cells) * 100
		status  = "Active"
	)
	if sim.stagnantCount > 0 {
		status = fmt.Sprintf("Stagnant (%d)", sim.stagnantCount)
	}
	if stats.LivingCells == 0 {
		status = "Extinct"
	}

	boundingInfo := ""
	if sim.config.UseBoundedGrid {
		boundingInfo = fmt.Sprintf(" | Bounding box: %d cells", sim.store.Current().GetBoundingBoxSize())
	}

	fmt.Fprintf(out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s%s\n",
		sim.generation, stats.LivingCells, density, status, boundingInfo)
	fmt.Fprintf(out, "Species: %s\n", formatPopulation(stats.SpeciesPopulation))
	fmt.Fprintf(out, "Performance: %.1f gen/sec | Avg Pop: %.1f | RSS: %.1f MiB | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, float64(stats.MemoryUsage)/(1<<20),
		time.Since(stats.StartTime).Seconds())

	if sim.generation > sim.lastRestartGen && sim.lastRestartGen > 0 {
		fmt.Fprintf(out, "Generations since restart: %d\n", sim.generation-sim.lastRestartGen)
	}
	fmt.Fprintln(out)
}

// formatPopulation renders per-species counts as "1:123 2:456 ..."
func formatPopulation(population []int) string {
	parts := make([]string, 0, len(population))
	for i, n := range population {
		parts = append(parts, fmt.Sprintf("%d:%d", i+1, n))
	}
	return strings.Join(parts, " ")
}
