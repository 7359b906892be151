package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/species-gol/rules"
	"github.com/sheikhrachel/species-gol/utils"
)

func testConfig() utils.Config {
	config := utils.DefaultConfig()
	config.Width = 48
	config.Height = 32
	config.SpeciesCount = 6
	config.Seed = 42
	config.FrameRate = 0
	config.Renderer = utils.RendererNone
	config.Workers = 3
	return config
}

func TestParseConfigDefaults(t *testing.T) {
	config, err := parseConfig(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, utils.DefaultConfig(), config)
}

func TestParseConfigFlags(t *testing.T) {
	config, err := parseConfig([]string{"-species", "9", "-width", "80", "-bounded", "-salted", "-frame", "10ms"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 9, config.SpeciesCount)
	assert.Equal(t, 80, config.Width)
	assert.True(t, config.UseBoundedGrid)
	assert.True(t, config.TickSaltedTieBreak)
	assert.Equal(t, 10*time.Millisecond, config.FrameRate)

	_, err = parseConfig([]string{"-nope"}, io.Discard)
	assert.Error(t, err)
}

func TestParseConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 200\nheight: 100\nspecies_count: 7\n"), 0o600))

	config, err := parseConfig([]string{"-config", path, "-species", "10"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 200, config.Width)
	assert.Equal(t, 100, config.Height)
	assert.Equal(t, 10, config.SpeciesCount)

	_, err = parseConfig([]string{"-config", filepath.Join(t.TempDir(), "missing.json")}, io.Discard)
	assert.Error(t, err)
}

func TestPromptSpeciesCountReprompts(t *testing.T) {
	var out bytes.Buffer
	n, err := promptSpeciesCount(strings.NewReader("many\n4\n11\n 7 \n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, 4, strings.Count(out.String(), "Enter the number of species (5-10): "))
	assert.Contains(t, out.String(), "Please enter a whole number.")

	_, err = promptSpeciesCount(strings.NewReader("3\n"), io.Discard)
	assert.Error(t, err)
}

func TestCheckRestartConditions(t *testing.T) {
	config := testConfig()

	restart, reason := checkRestartConditions(0, 0, config)
	assert.True(t, restart)
	assert.Equal(t, "extinction", reason)

	restart, reason = checkRestartConditions(10, config.StagnationThreshold, config)
	assert.True(t, restart)
	assert.Equal(t, "stagnation detected", reason)

	restart, _ = checkRestartConditions(10, config.StagnationThreshold-1, config)
	assert.False(t, restart)

	config.StagnationThreshold = 0
	restart, _ = checkRestartConditions(10, 100, config)
	assert.False(t, restart)
}

func TestSimulationAdvance(t *testing.T) {
	config := testConfig()
	config.MaxGenerations = 3

	var out bytes.Buffer
	sim, err := newSimulation(context.Background(), config, &out)
	require.NoError(t, err)
	defer sim.Close()

	width, height := sim.Size()
	assert.Equal(t, 48, width)
	assert.Equal(t, 32, height)
	assert.Equal(t, config.Width*config.Height, sim.store.Current().CountLivingCells(), "seeding leaves no dead cells")

	for gen := 1; gen <= 3; gen++ {
		done, err := sim.Advance()
		require.NoError(t, err)
		require.False(t, done)
		assert.Equal(t, gen, sim.generation)
		require.NoError(t, sim.store.Current().Validate(config.SpeciesCount))
	}

	done, err := sim.Advance()
	require.NoError(t, err)
	assert.True(t, done)
	assert.Contains(t, out.String(), "maximum generations limit (3)")

	displayGameStatus(&out, sim)
	assert.Contains(t, out.String(), "Gen: 3 |")
}

func TestSimulationDeterministicForSeed(t *testing.T) {
	run := func() []rules.SpeciesID {
		sim, err := newSimulation(context.Background(), testConfig(), io.Discard)
		require.NoError(t, err)
		defer sim.Close()
		for range 5 {
			_, err = sim.Advance()
			require.NoError(t, err)
		}
		return append([]rules.SpeciesID(nil), sim.Cells()...)
	}
	assert.Equal(t, run(), run())
}

func TestSimulationStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sim, err := newSimulation(ctx, testConfig(), io.Discard)
	require.NoError(t, err)
	defer sim.Close()

	cancel()
	done, err := sim.Advance()
	require.NoError(t, err)
	assert.True(t, done)
	assert.Zero(t, sim.generation)

	assert.NoError(t, runLoop(ctx, sim))
}

func TestSimulationRestartsOnExtinction(t *testing.T) {
	config := testConfig()
	config.AutoRestart = true

	var out bytes.Buffer
	sim, err := newSimulation(context.Background(), config, &out)
	require.NoError(t, err)
	defer sim.Close()

	sim.store.Current().Fill(rules.Dead)
	done, err := sim.Advance()
	require.NoError(t, err)
	assert.False(t, done)

	assert.Contains(t, out.String(), "Restarting due to extinction")
	assert.Equal(t, 1, sim.lastRestartGen)
	assert.Equal(t, config.Width*config.Height, sim.store.Current().CountLivingCells())
	assert.Zero(t, sim.store.Generation())
}

func TestSimulationBoundedMatchesFull(t *testing.T) {
	full, err := newSimulation(context.Background(), testConfig(), io.Discard)
	require.NoError(t, err)
	defer full.Close()

	config := testConfig()
	config.UseBoundedGrid = true
	bounded, err := newSimulation(context.Background(), config, io.Discard)
	require.NoError(t, err)
	defer bounded.Close()

	for range 8 {
		_, err = full.Advance()
		require.NoError(t, err)
		_, err = bounded.Advance()
		require.NoError(t, err)
		require.Equal(t, full.Cells(), bounded.Cells())
	}
}
