// Package config loads simulation and logging defaults for poker-odds from
// an HCL file, with environment overrides for the random seed.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/handequity/sdk/analysis"
)

// Environment variable names
const (
	// EnvSeed provides a random seed for reproducible simulations
	EnvSeed = "HANDEQUITY_SEED"

	// EnvLogLevel overrides the configured log level
	EnvLogLevel = "HANDEQUITY_LOG_LEVEL"
)

// Config represents the complete poker-odds configuration
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Beaters    *BeaterSettings     `hcl:"beaters,block"`
	Log        *LogSettings        `hcl:"log,block"`
}

// SimulationSettings contains Monte Carlo defaults
type SimulationSettings struct {
	Players int   `hcl:"players,optional"`
	Trials  int   `hcl:"trials,optional"`
	Workers int   `hcl:"workers,optional"`
	Seed    int64 `hcl:"seed,optional"` // 0 seeds from the clock
}

// BeaterSettings bounds the likely-beaters search
type BeaterSettings struct {
	MaxHands  int `hcl:"max_hands,optional"`
	MaxTrials int `hcl:"max_trials,optional"`
}

// LogSettings contains logging settings
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	beaters := analysis.DefaultBeaterOptions()
	return &Config{
		Simulation: &SimulationSettings{
			Players: 2,
			Trials:  1000,
			Workers: 0,
		},
		Beaters: &BeaterSettings{
			MaxHands:  beaters.MaxHands,
			MaxTrials: beaters.MaxTrials,
		},
		Log: &LogSettings{
			Level: "warn",
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Simulation == nil {
		c.Simulation = defaults.Simulation
	}
	if c.Simulation.Players == 0 {
		c.Simulation.Players = defaults.Simulation.Players
	}
	if c.Simulation.Trials == 0 {
		c.Simulation.Trials = defaults.Simulation.Trials
	}

	if c.Beaters == nil {
		c.Beaters = defaults.Beaters
	}
	if c.Beaters.MaxHands == 0 {
		c.Beaters.MaxHands = defaults.Beaters.MaxHands
	}
	if c.Beaters.MaxTrials == 0 {
		c.Beaters.MaxTrials = defaults.Beaters.MaxTrials
	}

	if c.Log == nil {
		c.Log = defaults.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// ApplyEnv overrides settings from HANDEQUITY_* environment variables.
func (c *Config) ApplyEnv() error {
	if seedStr := os.Getenv(EnvSeed); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvSeed, seedStr, err)
		}
		c.Simulation.Seed = seed
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.Players < 2 || c.Simulation.Players > analysis.MaxPlayers {
		return fmt.Errorf("players must be between 2 and %d", analysis.MaxPlayers)
	}
	if c.Simulation.Trials <= 0 {
		return fmt.Errorf("trials must be positive")
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	if c.Beaters.MaxHands <= 0 || c.Beaters.MaxTrials <= 0 {
		return fmt.Errorf("beater limits must be positive")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// BeaterOptions converts the beater settings for the analyzer.
func (c *Config) BeaterOptions() analysis.BeaterOptions {
	return analysis.BeaterOptions{
		MaxHands:  c.Beaters.MaxHands,
		MaxTrials: c.Beaters.MaxTrials,
	}
}
