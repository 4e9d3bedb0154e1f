// Package game runs the simulation: it owns the scroll frame, the obstacle
// track and the live agents, feeds dead agents to the evolution engine and
// repopulates when a generation dies out.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flap/camera"
	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/evolution"
	"github.com/pthm-cable/flap/systems"
	"github.com/pthm-cable/flap/telemetry"
)

// Game holds the complete game state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	// Agent storage
	agentMapper *ecs.Map4[
		components.Position,
		components.Motion,
		components.Body,
		components.Player,
	]
	agentFilter *ecs.Filter4[
		components.Position,
		components.Motion,
		components.Body,
		components.Player,
	]

	physics systems.Physics
	frame   *camera.ScrollFrame
	track   *systems.Track
	engine  *evolution.Engine

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.GenerationStats)
	onNewBest     func(int)
	logStats      bool
	lastStats     telemetry.GenerationStats

	// State
	tick           int64
	generationTick int
	aliveCount     int
	paused         bool
	stepsPerUpdate int
	maxTicks       int64
	maxGenerations int

	// Scratch buffers reused every tick
	dead     []deadAgent
	frameBuf Frame
}

// NewGameWithOptions creates a game and spawns the first generation.
// It fails on an invalid configuration.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	if err := cfg.Refresh(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	engine, err := evolution.NewEngine(evolution.ParamsFromConfig(cfg), rng)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	frame := camera.NewScrollFrame(cfg.Physics.PixelsPerSecond, cfg.Physics.MaxTickRate, cfg.Physics.TickRateSmoothing)

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rng,
		agentMapper: ecs.NewMap4[
			components.Position,
			components.Motion,
			components.Body,
			components.Player,
		](world),
		agentFilter: ecs.NewFilter4[
			components.Position,
			components.Motion,
			components.Body,
			components.Player,
		](world),
		physics:        systems.PhysicsFromConfig(cfg),
		frame:          frame,
		track:          systems.NewTrack(systems.TrackParamsFromConfig(cfg), rng, frame),
		engine:         engine,
		collector:      telemetry.NewCollector(),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		statsCallback:  opts.StatsCallback,
		onNewBest:      opts.OnNewBest,
		logStats:       opts.LogStats,
		stepsPerUpdate: clampSteps(opts.StepsPerUpdate),
		maxTicks:       opts.MaxTicks,
		maxGenerations: opts.MaxGenerations,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, err
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, err
		}
		g.outputManager = om
	}

	g.spawnGeneration(engine.FirstGeneration())

	slog.Debug("game created",
		"seed", opts.Seed,
		"population", cfg.Evolution.PopulationSize,
		"headless", opts.Headless,
	)

	return g, nil
}

// Unload flushes and closes run output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.outputManager = nil
}

// Tick returns the number of ticks simulated since start.
func (g *Game) Tick() int64 {
	return g.tick
}

// Generation returns the 1-based number of the running generation.
func (g *Game) Generation() int {
	return g.engine.Generation()
}

// AliveCount returns the number of live agents.
func (g *Game) AliveCount() int {
	return g.aliveCount
}

// BestScore returns the best score across all generations.
func (g *Game) BestScore() int {
	return g.collector.AllTimeBest()
}

// LastStats returns the stats of the most recently finished generation.
func (g *Game) LastStats() telemetry.GenerationStats {
	return g.lastStats
}

// Config returns the configuration the game runs with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(p bool) {
	g.paused = p
}

// StepsPerUpdate returns how many ticks each update runs.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate sets how many ticks each update runs, clamped to
// [MinStepsPerUpdate, MaxStepsPerUpdate].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = clampSteps(n)
}

// Done reports whether a configured stop condition was reached.
func (g *Game) Done() bool {
	if g.maxTicks > 0 && g.tick >= g.maxTicks {
		return true
	}
	// Generation counts finished generations against the running one
	if g.maxGenerations > 0 && g.engine.Generation() > g.maxGenerations {
		return true
	}
	return false
}
