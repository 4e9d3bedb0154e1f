package game

import (
	"log/slog"

	"github.com/pthm-cable/flap/evolution"
)

// flushGeneration produces the finished generation's stats and hands them
// to the callback, the log and the CSV output.
func (g *Game) flushGeneration() {
	stats := g.collector.Flush(g.tick)
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		if best, ok := fittest(g.engine.Records()); ok {
			slog.Info("fittest genome",
				"generation", stats.Generation,
				"id", best.ID,
				"fitness", best.Fitness,
				"weights", best.Genome.MarshalWeights(),
			)
		}
	}

	if err := g.outputManager.WriteGeneration(stats); err != nil {
		slog.Error("failed to write generation", "error", err)
	}
}

// fittest returns the record with the highest fitness; the earliest wins ties.
func fittest(records []evolution.Record) (evolution.Record, bool) {
	if len(records) == 0 {
		return evolution.Record{}, false
	}
	best := records[0]
	for _, r := range records[1:] {
		if r.Fitness > best.Fitness {
			best = r
		}
	}
	return best, true
}

// flushPerf logs and writes perf stats once per collector window.
func (g *Game) flushPerf() {
	window := int64(g.cfg.Telemetry.PerfCollectorWindow)
	if window <= 0 || g.tick%window != 0 {
		return
	}
	if !g.logStats && g.outputManager == nil {
		return
	}

	perfStats := g.perfCollector.Stats()
	if g.logStats {
		perfStats.LogStats()
	}
	if err := g.outputManager.WritePerf(perfStats, g.tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
