package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/species-gol/rules"
	"github.com/sheikhrachel/species-gol/utils"
)

// bindFlags registers command line overrides for every config field on fs
func bindFlags(fs *flag.FlagSet, cfg *utils.Config) {
	fs.IntVar(&cfg.Width, "width", cfg.Width, "grid width in cells")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "grid height in cells")
	fs.IntVar(&cfg.SpeciesCount, "species", cfg.SpeciesCount, "number of species (5-10)")
	fs.DurationVar(&cfg.FrameRate, "frame", cfg.FrameRate, "time per generation, 0 for as fast as possible")
	fs.IntVar(&cfg.MaxGenerations, "generations", cfg.MaxGenerations, "stop after this many generations, 0 for no limit")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel workers, 0 for one per CPU")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for time based")
	fs.BoolVar(&cfg.AutoRestart, "restart", cfg.AutoRestart, "reseed on extinction or stagnation")
	fs.IntVar(&cfg.StagnationThreshold, "stagnation", cfg.StagnationThreshold, "stagnant generations before a restart")
	fs.BoolVar(&cfg.UseMemoryPool, "pool", cfg.UseMemoryPool, "recycle grid buffers across restarts")
	fs.BoolVar(&cfg.UseBoundedGrid, "bounded", cfg.UseBoundedGrid, "only sweep the region around living cells")
	fs.StringVar(&cfg.Renderer, "renderer", cfg.Renderer, "window, terminal or none")
	fs.IntVar(&cfg.Scale, "scale", cfg.Scale, "window pixels per cell")
	fs.BoolVar(&cfg.TickSaltedTieBreak, "salted", cfg.TickSaltedTieBreak, "fold the generation into the birth tie-break")
	fs.BoolVar(&cfg.Interactive, "interactive", cfg.Interactive, "prompt for the species count")
}

// parseConfig builds the run configuration: defaults, then the optional config
// file, then any flags given on the command line.
func parseConfig(args []string, output io.Writer) (utils.Config, error) {
	newFlagSet := func(cfg *utils.Config) (*flag.FlagSet, *string) {
		fs := flag.NewFlagSet("species-gol", flag.ContinueOnError)
		fs.SetOutput(output)
		path := fs.String("config", "", "JSON, YAML or TOML config file")
		bindFlags(fs, cfg)
		return fs, path
	}

	config := utils.DefaultConfig()
	fs, path := newFlagSet(&config)
	if err := fs.Parse(args); err != nil {
		return config, errors.Wrap(err, "[parseConfig] failed to parse flags")
	}
	if *path == "" {
		return config, nil
	}

	loaded, err := utils.LoadConfig(*path)
	if err != nil {
		return config, err
	}
	// Parse again on top of the file so explicit flags win
	fs, _ = newFlagSet(&loaded)
	if err = fs.Parse(args); err != nil {
		return loaded, errors.Wrap(err, "[parseConfig] failed to parse flags")
	}
	return loaded, nil
}

// promptSpeciesCount asks for a species count until a valid one is entered
func promptSpeciesCount(in io.Reader, out io.Writer) (int, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "Enter the number of species (%d-%d): ", rules.MinSpecies, rules.MaxSpecies)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, errors.Wrap(err, "[promptSpeciesCount] failed to read input")
			}
			return 0, errors.New("[promptSpeciesCount] input closed before a species count was entered")
		}

		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(out, "Please enter a whole number.")
			continue
		}
		if err = utils.ValidateSpeciesCount(n); err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		return n, nil
	}
}
