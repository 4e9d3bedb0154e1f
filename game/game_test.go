package game

import (
	"context"
	"errors"
	"testing"

	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/evolution"
	"github.com/pthm-cable/flap/telemetry"
)

func newTestGame(t *testing.T, tweak func(*config.Config), opts Options) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Evolution.PopulationSize = 10
	if tweak != nil {
		tweak(cfg)
	}
	opts.Config = cfg
	opts.Headless = true
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

// zeroGenomes makes every controller inert: the activation is always 0,
// so no agent jumps on its own.
func zeroGenomes(cfg *config.Config) {
	cfg.Evolution.InitialWeightBound = 0
	cfg.Evolution.MutationFactor = 0
}

func TestNewGameSpawnsPopulation(t *testing.T) {
	g := newTestGame(t, nil, Options{})

	if g.AliveCount() != 10 {
		t.Errorf("AliveCount = %d, want 10", g.AliveCount())
	}
	if g.Generation() != 1 {
		t.Errorf("Generation = %d, want 1", g.Generation())
	}

	primaries := 0
	query := g.agentFilter.Query()
	for query.Next() {
		pos, motion, body, player := query.Get()
		if player.Primary {
			primaries++
		}
		if pos.X != g.cfg.Agent.StartX {
			t.Errorf("agent x = %v, want %v", pos.X, g.cfg.Agent.StartX)
		}
		if want := g.cfg.Derived.PlayfieldH/2 - body.Size/2; pos.Y != want {
			t.Errorf("agent y = %v, want %v", pos.Y, want)
		}
		if want := g.cfg.Physics.Gravity / g.cfg.Physics.MaxTickRate; motion.AccelY != want {
			t.Errorf("agent accel = %v, want %v", motion.AccelY, want)
		}
	}
	if primaries != 1 {
		t.Errorf("primary agents = %d, want 1", primaries)
	}
}

func TestNewGameRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Evolution.PopulationSize = 0

	if _, err := NewGameWithOptions(Options{Config: cfg, Headless: true}); err == nil {
		t.Error("expected error for empty population")
	}
}

func TestGenerationTransition(t *testing.T) {
	var stats []telemetry.GenerationStats
	g := newTestGame(t, zeroGenomes, Options{
		StatsCallback: func(s telemetry.GenerationStats) { stats = append(stats, s) },
	})

	for i := 0; i < 2000 && len(stats) == 0; i++ {
		g.Step(false, 60)
	}
	if len(stats) == 0 {
		t.Fatal("inert agents never died")
	}

	s := stats[0]
	if s.Generation != 1 {
		t.Errorf("stats generation = %d, want 1", s.Generation)
	}
	if s.Population != 10 {
		t.Errorf("recorded agents = %d, want 10", s.Population)
	}
	// Every inert agent falls identically and dies on the same tick
	if s.DistanceMax <= 0 || s.FitnessMax != s.DistanceMax {
		t.Errorf("fitness max %v, distance max %v: want equal positive distance-only fitness", s.FitnessMax, s.DistanceMax)
	}

	if g.Generation() != 2 {
		t.Errorf("Generation = %d, want 2", g.Generation())
	}
	if g.AliveCount() != 10 {
		t.Errorf("AliveCount after repopulation = %d, want 10", g.AliveCount())
	}
	if g.frame.Distance() != 0 {
		t.Errorf("frame offset after reset = %v, want 0", g.frame.Distance())
	}
	if g.LastStats().Generation != 1 {
		t.Errorf("LastStats generation = %d, want 1", g.LastStats().Generation)
	}
}

func TestOffsetMonotonicWithinGeneration(t *testing.T) {
	g := newTestGame(t, nil, Options{})
	gen := g.Generation()
	prev := g.frame.Distance()

	for i := 0; i < 300; i++ {
		g.Step(false, 60)
		if g.Generation() != gen {
			gen = g.Generation()
			prev = g.frame.Distance()
			continue
		}
		if d := g.frame.Distance(); d < prev {
			t.Fatalf("tick %d: offset decreased from %v to %v", g.Tick(), prev, d)
		}
		prev = g.frame.Distance()
	}
}

func TestForceJumpPrimaryOnly(t *testing.T) {
	g := newTestGame(t, zeroGenomes, Options{})

	g.Step(true, 60)

	var primaryY, otherY float64
	query := g.agentFilter.Query()
	for query.Next() {
		pos, _, _, player := query.Get()
		if player.Primary {
			primaryY = pos.Y
		} else {
			otherY = pos.Y
		}
	}
	if primaryY >= otherY {
		t.Errorf("primary y = %v, other y = %v: want the primary above after a forced jump", primaryY, otherY)
	}
}

func TestMaxGenerationTicksRetiresAgents(t *testing.T) {
	var stats []telemetry.GenerationStats
	g := newTestGame(t, func(cfg *config.Config) {
		cfg.Evolution.MaxGenerationTicks = 5
	}, Options{
		StatsCallback: func(s telemetry.GenerationStats) { stats = append(stats, s) },
	})

	for i := 0; i < 5; i++ {
		g.Step(false, 60)
	}

	if len(stats) != 1 {
		t.Fatalf("generations flushed = %d, want 1", len(stats))
	}
	if stats[0].Population != 10 {
		t.Errorf("recorded agents = %d, want 10", stats[0].Population)
	}
	if stats[0].Ticks != 5 {
		t.Errorf("generation ticks = %d, want 5", stats[0].Ticks)
	}
	if stats[0].Retired == 0 {
		t.Error("expected agents retired by the tick cap")
	}
}

func TestFrameSnapshot(t *testing.T) {
	g := newTestGame(t, nil, Options{})
	g.Step(false, 60)

	f := g.Frame()
	if len(f.Pipes) != g.cfg.Obstacles.Lookahead {
		t.Errorf("pipes = %d, want %d", len(f.Pipes), g.cfg.Obstacles.Lookahead)
	}
	if len(f.Agents) != g.AliveCount() || f.Alive != g.AliveCount() {
		t.Errorf("agents = %d, alive = %d, want %d", len(f.Agents), f.Alive, g.AliveCount())
	}
	for i, p := range f.Pipes {
		if p.Upper.X != p.Lower.X {
			t.Errorf("pipe %d: upper and lower x differ", i)
		}
		if p.Lower.Y+p.Lower.H != f.PlayfieldH {
			t.Errorf("pipe %d: lower pipe does not reach the ground", i)
		}
	}
	if f.Generation != 1 || f.Tick != 1 {
		t.Errorf("generation/tick = %d/%d, want 1/1", f.Generation, f.Tick)
	}
}

func TestSetStepsPerUpdateClamps(t *testing.T) {
	g := newTestGame(t, nil, Options{})

	tests := []struct {
		in, want int
	}{
		{0, MinStepsPerUpdate},
		{-3, MinStepsPerUpdate},
		{4, 4},
		{99, MaxStepsPerUpdate},
	}
	for _, tt := range tests {
		g.SetStepsPerUpdate(tt.in)
		if got := g.StepsPerUpdate(); got != tt.want {
			t.Errorf("SetStepsPerUpdate(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestUpdateHeadlessRunsSteps(t *testing.T) {
	g := newTestGame(t, nil, Options{StepsPerUpdate: 3})
	g.UpdateHeadless()
	if g.Tick() != 3 {
		t.Errorf("Tick = %d, want 3", g.Tick())
	}
}

type pausedInput struct {
	NopInput
}

func (pausedInput) Paused() bool        { return true }
func (pausedInput) StepsPerUpdate() int { return 1 }

func TestUpdateHonorsControls(t *testing.T) {
	g := newTestGame(t, nil, Options{})
	g.Update(pausedInput{}, FixedClock(60))

	if g.Tick() != 0 {
		t.Errorf("Tick = %d, want 0 while paused", g.Tick())
	}
	if !g.Paused() {
		t.Error("expected game to be paused")
	}
}

type countingSink struct {
	frames int
}

func (s *countingSink) Render(*Frame) { s.frames++ }

type quitAfter struct {
	NopInput
	n int
}

func (q *quitAfter) Quit() bool {
	q.n--
	return q.n < 0
}

func TestRunStopsOnQuit(t *testing.T) {
	g := newTestGame(t, nil, Options{})
	sink := &countingSink{}

	err := g.Run(context.Background(), sink, &quitAfter{n: 5}, FixedClock(60))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sink.frames != 5 || g.Tick() != 5 {
		t.Errorf("frames/ticks = %d/%d, want 5/5", sink.frames, g.Tick())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	g := newTestGame(t, nil, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Run(ctx, NopSink{}, NopInput{}, FixedClock(60))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	if g.Tick() != 0 {
		t.Errorf("Tick = %d, want 0 after cancelled run", g.Tick())
	}
}

func TestRunStopsAtMaxTicks(t *testing.T) {
	g := newTestGame(t, nil, Options{MaxTicks: 25})

	if err := g.Run(context.Background(), NopSink{}, NopInput{}, FixedClock(60)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g.Tick() != 25 {
		t.Errorf("Tick = %d, want 25", g.Tick())
	}
}

func TestOutputDirWritesGenerations(t *testing.T) {
	dir := t.TempDir()
	g := newTestGame(t, func(cfg *config.Config) {
		cfg.Evolution.MaxGenerationTicks = 3
	}, Options{OutputDir: dir})

	for i := 0; i < 9; i++ {
		g.Step(false, 60)
	}
	if g.Generation() != 4 {
		t.Errorf("Generation = %d, want 4", g.Generation())
	}
}

func TestFrameStatusLines(t *testing.T) {
	f := &Frame{Score: 3, BestScore: 7, Generation: 12, Alive: 4, Population: 100, Paused: true, StepsPerUpdate: 2}
	lines := f.StatusLines()

	if len(lines) != 4 {
		t.Fatalf("len(lines) = %d, want 4", len(lines))
	}
	if lines[0] != "Score: 3 | Best: 7" {
		t.Errorf("lines[0] = %q", lines[0])
	}
	if lines[1] != "Generation: 12 | Alive: 4/100" {
		t.Errorf("lines[1] = %q", lines[1])
	}
	if lines[3] != "PAUSED" {
		t.Errorf("lines[3] = %q, want PAUSED", lines[3])
	}
}

func TestFramePrimaryView(t *testing.T) {
	g := newTestGame(t, zeroGenomes, Options{})
	g.Step(false, 60)

	f := g.Frame()
	if f.Primary == nil {
		t.Fatal("primary view missing while the primary agent is alive")
	}
	p := f.Primary
	if p.Activation != 0 || p.Jumping {
		t.Errorf("zero genome: activation = %v, jumping = %v", p.Activation, p.Jumping)
	}
	if p.Inputs[0] != p.ObstacleDX || p.Inputs[1] != p.GapTopDY || p.Inputs[2] != p.GapBottomDY {
		t.Errorf("inputs %v do not match sensor fields", p.Inputs)
	}
	if p.ObstacleDX <= 0 {
		t.Errorf("ObstacleDX = %v, want the first pipe ahead of the agent", p.ObstacleDX)
	}
}

func TestDeadAgentsLeaveWorld(t *testing.T) {
	g := newTestGame(t, func(cfg *config.Config) {
		cfg.Evolution.PopulationSize = 20
		cfg.Evolution.MaxGenerationTicks = 300
	}, Options{})

	for i := 0; i < 20000 && g.Generation() <= 5; i++ {
		g.Step(false, 60)
		if used := g.world.Stats().Entities.Used; used != g.AliveCount() {
			t.Fatalf("tick %d: expected %d entities in the world, got %d", g.Tick(), g.AliveCount(), used)
		}
	}
	if g.Generation() <= 5 {
		t.Fatalf("expected more than 5 generations, got %d", g.Generation())
	}
}

func TestFittestRecord(t *testing.T) {
	if _, ok := fittest(nil); ok {
		t.Error("expected no fittest record for an empty generation")
	}

	records := []evolution.Record{
		{ID: 1, Fitness: 10},
		{ID: 2, Fitness: 40},
		{ID: 3, Fitness: 40},
		{ID: 4, Fitness: 5},
	}
	best, ok := fittest(records)
	if !ok || best.ID != 2 {
		t.Errorf("expected record 2, got %d (ok=%v)", best.ID, ok)
	}
}

func TestNextGenerationRequiresAllRecorded(t *testing.T) {
	g := newTestGame(t, nil, Options{})

	defer func() {
		if recover() == nil {
			t.Error("expected panic when live agents have no fitness record")
		}
	}()
	g.nextGeneration()
}

// rampClock reports the next rate on every call.
type rampClock struct {
	rates []float64
	calls int
}

func (c *rampClock) TickRate() float64 {
	r := c.rates[min(c.calls, len(c.rates)-1)]
	c.calls++
	return r
}

func (c *rampClock) WaitNextTick() {}

func TestUpdateSamplesRateEveryTick(t *testing.T) {
	g := newTestGame(t, nil, Options{StepsPerUpdate: 3})
	clock := &rampClock{rates: []float64{30, 45, 50}}

	g.Update(NopInput{}, clock)

	if clock.calls != 3 {
		t.Errorf("expected 3 rate samples, got %d", clock.calls)
	}
	if g.frame.TickRate != 50 {
		t.Errorf("expected tick rate of the last sample (50), got %v", g.frame.TickRate)
	}
}
