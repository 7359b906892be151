package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikhrachel/species-gol/display"
	"github.com/sheikhrachel/species-gol/model"
	"github.com/sheikhrachel/species-gol/utils"
)

const statusInterval = time.Second

func main() {
	config, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	if config.Interactive {
		if config.SpeciesCount, err = promptSpeciesCount(os.Stdin, os.Stdout); err != nil {
			log.Fatal(err)
		}
	}
	if err = config.Validate(); err != nil {
		log.Fatal(err)
	}
	if config.Renderer == utils.RendererWindow && !display.Available {
		fmt.Println("Window renderer unavailable (build with -tags ebiten), running headless")
		config.Renderer = utils.RendererNone
	}

	// Ctrl+C stops the run between ticks
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sim, err := newSimulation(ctx, config, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	defer sim.Close()
	displayGameInfo(os.Stdout, config, sim)

	switch config.Renderer {
	case utils.RendererWindow:
		err = display.Run(sim, display.Options{
			Title:     fmt.Sprintf("Game of Life - %d species", config.SpeciesCount),
			Scale:     config.Scale,
			FrameRate: config.FrameRate,
		})
	default:
		err = runLoop(ctx, sim)
	}
	if err != nil {
		log.Printf("Simulation stopped: %v", err)
	}

	fmt.Println("\n🛑 Shutting down gracefully...")
	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		sim.generation, time.Since(sim.stats.StartTime).Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		sim.stats.GenerationsPerSecond, sim.stats.AveragePopulation)
}

// runLoop ticks at the configured frame rate and reports to the terminal
func runLoop(ctx context.Context, sim *simulation) error {
	var renderer *model.TerminalRenderer
	if sim.config.Renderer == utils.RendererTerminal {
		renderer = model.NewTerminalRenderer()
	}
	lastStatus := time.Now()

	for {
		frameStart := time.Now()

		done, err := sim.Advance()
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if renderer != nil {
			renderer.Clear()
			_ = sim.stats.SampleMemory()
			displayGameStatus(os.Stdout, sim)
			renderer.Display(sim.store.Current())
		} else if time.Since(lastStatus) >= statusInterval {
			_ = sim.stats.SampleMemory()
			displayGameStatus(os.Stdout, sim)
			lastStatus = time.Now()
		}

		// Wait before next frame
		if wait := sim.config.FrameRate - time.Since(frameStart); wait > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(wait):
			}
		}
	}
}
