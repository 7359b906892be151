package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/species-gol/rules"
)

const (
	RendererWindow   = "window"
	RendererTerminal = "terminal"
	RendererNone     = "none"
)

// Config holds the configuration for the simulation
type Config struct {
	Width               int           `json:"width" yaml:"width" toml:"width"`
	Height              int           `json:"height" yaml:"height" toml:"height"`
	SpeciesCount        int           `json:"species_count" yaml:"species_count" toml:"species_count"`
	FrameRate           time.Duration `json:"frame_rate" yaml:"frame_rate" toml:"frame_rate"`
	MaxGenerations      int           `json:"max_generations" yaml:"max_generations" toml:"max_generations"`
	Workers             int           `json:"workers" yaml:"workers" toml:"workers"`
	Seed                int64         `json:"seed" yaml:"seed" toml:"seed"`
	AutoRestart         bool          `json:"auto_restart" yaml:"auto_restart" toml:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold" yaml:"stagnation_threshold" toml:"stagnation_threshold"`
	UseMemoryPool       bool          `json:"use_memory_pool" yaml:"use_memory_pool" toml:"use_memory_pool"`
	UseBoundedGrid      bool          `json:"use_bounded_grid" yaml:"use_bounded_grid" toml:"use_bounded_grid"`
	Renderer            string        `json:"renderer" yaml:"renderer" toml:"renderer"`
	Scale               int           `json:"scale" yaml:"scale" toml:"scale"`
	TickSaltedTieBreak  bool          `json:"tick_salted_tie_break" yaml:"tick_salted_tie_break" toml:"tick_salted_tie_break"`
	Interactive         bool          `json:"interactive" yaml:"interactive" toml:"interactive"`
}

// UnmarshalJSON accepts frame_rate either as a duration string ("50ms") or as
// integer nanoseconds, matching what the YAML and TOML loaders take.
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	aux := struct {
		*plain
		FrameRate json.RawMessage `json:"frame_rate"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := aux.FrameRate
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return errors.Wrap(err, "[UnmarshalJSON] invalid frame_rate")
		}
		d, err := time.ParseDuration(text)
		if err != nil {
			return errors.Wrapf(err, "[UnmarshalJSON] invalid frame_rate %q", text)
		}
		c.FrameRate = d
		return nil
	}
	var nanos int64
	if err := json.Unmarshal(raw, &nanos); err != nil {
		return errors.Wrapf(err, "[UnmarshalJSON] invalid frame_rate %s", raw)
	}
	c.FrameRate = time.Duration(nanos)
	return nil
}

// DefaultConfig returns the reference setup: a 1024x768 window at 30 frames per second
func DefaultConfig() Config {
	return Config{
		Width:               1024,
		Height:              768,
		SpeciesCount:        rules.MinSpecies,
		FrameRate:           time.Second / 30,
		MaxGenerations:      0, // run until interrupted
		Workers:             0, // one per CPU
		Seed:                0, // time based
		AutoRestart:         false,
		StagnationThreshold: 5,
		UseMemoryPool:       true,
		UseBoundedGrid:      false,
		Renderer:            RendererWindow,
		Scale:               1,
		TickSaltedTieBreak:  false,
		Interactive:         false,
	}
}

// LoadConfig loads configuration from a JSON, YAML or TOML file, chosen by extension.
// Fields missing from the file keep their default values.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	case ".toml":
		err = toml.Unmarshal(data, &config)
	case ".json", "":
		err = json.Unmarshal(data, &config)
	default:
		return config, errors.Errorf("[LoadConfig] unsupported config format %q: %+v", ext, filename)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate rejects settings a simulation run cannot start with
func (c Config) Validate() error {
	if c.Width <= 0 {
		return NewConfigurationError("width", c.Width, "must be positive")
	}
	if c.Height <= 0 {
		return NewConfigurationError("height", c.Height, "must be positive")
	}
	if err := ValidateSpeciesCount(c.SpeciesCount); err != nil {
		return err
	}
	if c.FrameRate < 0 {
		return NewConfigurationError("frame_rate", c.FrameRate, "must not be negative")
	}
	if c.Workers < 0 {
		return NewConfigurationError("workers", c.Workers, "must not be negative")
	}
	if c.StagnationThreshold < 0 {
		return NewConfigurationError("stagnation_threshold", c.StagnationThreshold, "must not be negative")
	}
	if c.Scale <= 0 {
		return NewConfigurationError("scale", c.Scale, "must be positive")
	}
	switch c.Renderer {
	case RendererWindow, RendererTerminal, RendererNone:
	default:
		return NewConfigurationError("renderer", c.Renderer, "must be one of window, terminal, none")
	}
	return nil
}

// ValidateSpeciesCount checks n against the fixed birth-count accumulator bounds
func ValidateSpeciesCount(n int) error {
	if n < rules.MinSpecies || n > rules.MaxSpecies {
		return NewConfigurationError("species_count", n,
			fmt.Sprintf("must be between %d and %d", rules.MinSpecies, rules.MaxSpecies))
	}
	return nil
}
