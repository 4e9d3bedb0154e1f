// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Agent     AgentConfig     `yaml:"agent"`
	Obstacles ObstaclesConfig `yaml:"obstacles"`
	Evolution EvolutionConfig `yaml:"evolution"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. Width and Height are also the playfield size.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds the tick-rate independent motion constants.
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`
	MaxTickRate       float64 `yaml:"max_tick_rate"`       // Target ticks per second
	PixelsPerSecond   float64 `yaml:"pixels_per_second"`   // Scroll speed in real time
	TickRateSmoothing float64 `yaml:"tick_rate_smoothing"` // EMA weight of the previous rate, 0 = use measured rate as is
	JumpForce         float64 `yaml:"jump_force"`
}

// AgentConfig holds agent spawn parameters.
type AgentConfig struct {
	StartX float64 `yaml:"start_x"`
	Size   float64 `yaml:"size"`
}

// ObstaclesConfig holds pipe generation parameters.
type ObstaclesConfig struct {
	DistanceBetweenPipes float64 `yaml:"distance_between_pipes"`
	MinGap               int     `yaml:"min_gap"`
	MaxGap               int     `yaml:"max_gap"`
	Width                float64 `yaml:"width"`
	Margin               int     `yaml:"margin"`    // Minimum distance from gap edges to playfield edges
	Lookahead            int     `yaml:"lookahead"` // Obstacles kept ahead of the agents
}

// EvolutionConfig holds genetic algorithm parameters.
type EvolutionConfig struct {
	PopulationSize     int     `yaml:"population_size"`
	MutationFactor     float64 `yaml:"mutation_factor"` // Percent chance per weight, compared against a [0,100) roll
	MutationBound      int     `yaml:"mutation_bound"`  // Mutation offset drawn from [-bound, bound]
	DistanceFactor     float64 `yaml:"distance_factor"`
	ScoreFactor        float64 `yaml:"score_factor"`
	InitialWeightBound int     `yaml:"initial_weight_bound"` // First generation weight = U(0,1) * randInt(-bound, bound)
	CrossoverSwap      []int   `yaml:"crossover_swap"`       // Genome components exchanged between paired parents
	MaxGenerationTicks int     `yaml:"max_generation_ticks"` // 0 = unlimited
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	PlayfieldW  float64 // Screen.Width as float64
	PlayfieldH  float64 // Screen.Height as float64
	ScrollSpeed float64 // Initial per-tick scroll advance at MaxTickRate
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate reports every constraint the configuration violates.
// Values are never clamped.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Screen.Width > 0, "screen.width must be positive, got %d", c.Screen.Width)
	check(c.Screen.Height > 0, "screen.height must be positive, got %d", c.Screen.Height)
	check(c.Screen.TargetFPS > 0, "screen.target_fps must be positive, got %d", c.Screen.TargetFPS)

	check(c.Physics.MaxTickRate > 0, "physics.max_tick_rate must be positive, got %v", c.Physics.MaxTickRate)
	check(c.Physics.PixelsPerSecond > 0, "physics.pixels_per_second must be positive, got %v", c.Physics.PixelsPerSecond)
	check(c.Physics.TickRateSmoothing >= 0 && c.Physics.TickRateSmoothing < 1,
		"physics.tick_rate_smoothing must be in [0,1), got %v", c.Physics.TickRateSmoothing)

	check(c.Agent.Size > 0, "agent.size must be positive, got %v", c.Agent.Size)

	obs := c.Obstacles
	check(obs.DistanceBetweenPipes > 0, "obstacles.distance_between_pipes must be positive, got %v", obs.DistanceBetweenPipes)
	check(obs.Width > 0, "obstacles.width must be positive, got %v", obs.Width)
	check(obs.MinGap > 0, "obstacles.min_gap must be positive, got %d", obs.MinGap)
	check(obs.MinGap <= obs.MaxGap, "obstacles.min_gap (%d) must not exceed max_gap (%d)", obs.MinGap, obs.MaxGap)
	check(obs.Margin >= 0, "obstacles.margin must not be negative, got %d", obs.Margin)
	check(obs.MaxGap+2*obs.Margin <= c.Screen.Height,
		"obstacles.max_gap (%d) plus twice the margin (%d) must fit screen.height (%d)", obs.MaxGap, obs.Margin, c.Screen.Height)
	check(obs.Lookahead >= 1, "obstacles.lookahead must be at least 1, got %d", obs.Lookahead)

	evo := c.Evolution
	check(evo.PopulationSize > 0, "evolution.population_size must be positive, got %d", evo.PopulationSize)
	check(evo.MutationFactor >= 0 && evo.MutationFactor <= 100,
		"evolution.mutation_factor must be a percentage in [0,100], got %v", evo.MutationFactor)
	check(evo.MutationBound >= 0, "evolution.mutation_bound must not be negative, got %d", evo.MutationBound)
	check(evo.InitialWeightBound >= 0, "evolution.initial_weight_bound must not be negative, got %d", evo.InitialWeightBound)
	check(evo.MaxGenerationTicks >= 0, "evolution.max_generation_ticks must not be negative, got %d", evo.MaxGenerationTicks)
	seen := make(map[int]bool, len(evo.CrossoverSwap))
	for _, idx := range evo.CrossoverSwap {
		check(idx >= 0 && idx < NumSensors, "evolution.crossover_swap index %d out of range [0,%d)", idx, NumSensors)
		check(!seen[idx], "evolution.crossover_swap index %d listed twice", idx)
		seen[idx] = true
	}

	return errors.Join(errs...)
}

// NumSensors is the genome length the crossover indices are checked against.
const NumSensors = 3

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.PlayfieldW = float64(c.Screen.Width)
	c.Derived.PlayfieldH = float64(c.Screen.Height)
	c.Derived.ScrollSpeed = c.Physics.PixelsPerSecond / c.Physics.MaxTickRate
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Evolution.CrossoverSwap = append([]int(nil), c.Evolution.CrossoverSwap...)
	return &cp
}

// Refresh re-validates the configuration and recomputes derived values.
// Call it after mutating fields programmatically.
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
