package telemetry

import (
	"log/slog"
	"time"
)

// TickPhase identifies one stage of a game tick.
type TickPhase int

// Tick phases in execution order.
const (
	PhaseScroll TickPhase = iota
	PhaseObstacles
	PhaseAgents
	PhaseCleanup
	PhaseEvolution
	numPhases
)

var phaseNames = [numPhases]string{"scroll", "obstacles", "agents", "cleanup", "evolution"}

func (p TickPhase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// PhaseTimes holds one duration per tick phase.
type PhaseTimes [numPhases]time.Duration

// tickSample is the timing of a single finished tick.
type tickSample struct {
	total  time.Duration
	phases PhaseTimes
}

// PerfCollector keeps the last window ticks' timings in a ring buffer.
// All methods are no-ops on a nil collector.
type PerfCollector struct {
	now func() time.Time

	ring   []tickSample
	next   int
	filled int

	current    tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      TickPhase
	inPhase    bool

	lastFrame time.Time
	frameDur  time.Duration
}

// NewPerfCollector creates a collector averaging over window ticks
// (60 when window < 1).
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{now: time.Now, ring: make([]tickSample, window)}
}

// SetClock replaces the time source. Nil restores time.Now.
func (p *PerfCollector) SetClock(now func() time.Time) {
	if p == nil {
		return
	}
	if now == nil {
		now = time.Now
	}
	p.now = now
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	if p == nil {
		return
	}
	p.tickStart = p.now()
	p.current = tickSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase TickPhase) {
	if p == nil {
		return
	}
	t := p.closePhase()
	p.phase = phase
	p.phaseStart = t
	p.inPhase = true
}

// EndTick closes the running phase and stores the tick in the ring.
func (p *PerfCollector) EndTick() {
	if p == nil {
		return
	}
	t := p.closePhase()
	p.inPhase = false
	p.current.total = t.Sub(p.tickStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	p.filled = min(p.filled+1, len(p.ring))
}

func (p *PerfCollector) closePhase() time.Time {
	t := p.now()
	if p.inPhase && p.phase >= 0 && p.phase < numPhases {
		p.current.phases[p.phase] += t.Sub(p.phaseStart)
	}
	return t
}

// RecordFrame measures the interval since the previous rendered frame.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	t := p.now()
	if !p.lastFrame.IsZero() {
		p.frameDur = t.Sub(p.lastFrame)
	}
	p.lastFrame = t
}

// PerfStats aggregates the collector's window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64

	PhaseAvg PhaseTimes
	PhasePct [numPhases]float64 // share of the average tick, in percent

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the ticks currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p == nil {
		return s
	}
	s.FrameDuration = p.frameDur
	if p.frameDur > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDur)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phaseTotal PhaseTimes
	for i, sample := range p.ring[:p.filled] {
		total += sample.total
		if i == 0 || sample.total < s.MinTickDuration {
			s.MinTickDuration = sample.total
		}
		s.MaxTickDuration = max(s.MaxTickDuration, sample.total)
		for ph, d := range sample.phases {
			phaseTotal[ph] += d
		}
	}

	n := time.Duration(p.filled)
	s.AvgTickDuration = total / n
	for ph := range phaseTotal {
		s.PhaseAvg[ph] = phaseTotal[ph] / n
		if total > 0 {
			s.PhasePct[ph] = float64(phaseTotal[ph]) / float64(total) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs the aggregate at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer. Phases under 0.1% are omitted.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for ph := range numPhases {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	Tick        int64   `csv:"tick"`
	AvgTickUS   int64   `csv:"avg_tick_us"`
	MinTickUS   int64   `csv:"min_tick_us"`
	MaxTickUS   int64   `csv:"max_tick_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
	FPS         float64 `csv:"fps"`
	ScrollPct   float64 `csv:"scroll_pct"`
	ObstaclePct float64 `csv:"obstacles_pct"`
	AgentsPct   float64 `csv:"agents_pct"`
	CleanupPct  float64 `csv:"cleanup_pct"`
	EvolvePct   float64 `csv:"evolution_pct"`
}

// ToCSV flattens the stats into a perf.csv row for the given tick.
func (s PerfStats) ToCSV(tick int64) PerfStatsCSV {
	return PerfStatsCSV{
		Tick:        tick,
		AvgTickUS:   s.AvgTickDuration.Microseconds(),
		MinTickUS:   s.MinTickDuration.Microseconds(),
		MaxTickUS:   s.MaxTickDuration.Microseconds(),
		TicksPerSec: s.TicksPerSecond,
		FPS:         s.FPS,
		ScrollPct:   s.PhasePct[PhaseScroll],
		ObstaclePct: s.PhasePct[PhaseObstacles],
		AgentsPct:   s.PhasePct[PhaseAgents],
		CleanupPct:  s.PhasePct[PhaseCleanup],
		EvolvePct:   s.PhasePct[PhaseEvolution],
	}
}
