package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/pthm-cable/flap/audio"
	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/renderer"
	"github.com/pthm-cable/flap/terminal"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	tui := flag.Bool("tui", false, "Render in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output generation and perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and fitness plot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	maxGenerations := flag.Int("max-generations", 0, "Stop after N finished generations (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster runs)")
	sound := flag.Bool("sound", false, "Beep on every new best score")

	flag.Parse()

	// Set up slog (JSON to stderr, or away from the terminal while tcell owns it)
	logOut, closeLog, err := logWriter(*tui && !*headless, *outputDir)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer closeLog()
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		Headless:       *headless,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
		MaxTicks:       *maxTicks,
		MaxGenerations: *maxGenerations,
	}

	if *sound && !*headless {
		beeper, err := audio.NewBeeper()
		if err != nil {
			// Non-fatal, the game runs without sound
			slog.Warn("audio unavailable", "error", err)
		} else {
			defer beeper.Close()
			opts.OnNewBest = beeper.NewBest
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	switch {
	case *headless:
		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"population", cfg.Evolution.PopulationSize,
			"max_ticks", *maxTicks,
			"max_generations", *maxGenerations,
			"steps_per_update", *stepsPerUpdate,
		)
		for !g.Done() && ctx.Err() == nil {
			g.UpdateHeadless()
		}
		slog.Info("simulation finished",
			"tick", g.Tick(),
			"generation", g.Generation(),
			"best_score", g.BestScore(),
		)

	case *tui:
		screen, err := terminal.NewScreen(cfg, g.StepsPerUpdate())
		if err != nil {
			slog.Error("failed to open terminal", "error", err)
			return
		}
		defer screen.Close()
		run(ctx, g, screen, screen, screen)

	default:
		window := renderer.NewWindow(cfg, "Flap", g.StepsPerUpdate())
		defer window.Close()
		run(ctx, g, window, window, window)
	}
}

// logWriter picks the log destination. The terminal mode logs to
// flap.log in the output directory, or nowhere without one.
func logWriter(tuiMode bool, outputDir string) (io.Writer, func(), error) {
	if !tuiMode {
		return os.Stderr, func() {}, nil
	}
	if outputDir == "" {
		return io.Discard, func() {}, nil
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(filepath.Join(outputDir, "flap.log"))
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// run drives an interactive game and logs why it stopped.
func run(ctx context.Context, g *game.Game, sink game.RenderSink, input game.InputSource, clock game.Clock) {
	if err := g.Run(ctx, sink, input, clock); err != nil {
		slog.Info("interrupted", "error", err, "tick", g.Tick())
		return
	}
	slog.Info("stopped", "tick", g.Tick(), "generation", g.Generation(), "best_score", g.BestScore())
}
