package game

import (
	"fmt"

	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/neural"
	"github.com/pthm-cable/flap/systems"
)

// PipeRects are the two rectangles of one obstacle, above and below the gap.
type PipeRects struct {
	Upper, Lower systems.Rect
}

// AgentView is a live agent as seen by a render sink.
type AgentView struct {
	Rect    systems.Rect
	Color   components.Color
	Primary bool
}

// PrimaryView describes the primary agent's controller state for the
// inspector panel. Tags drive the panel's formatting.
type PrimaryView struct {
	ID          uint32        `inspect:"label"`
	Score       int           `inspect:"label"`
	VelocityY   float64       `inspect:"label,fmt:%.2f"`
	ObstacleDX  float64       `inspect:"label,fmt:%.0f"`
	GapTopDY    float64       `inspect:"label,fmt:%.0f"`
	GapBottomDY float64       `inspect:"label,fmt:%.0f"`
	Activation  float64       `inspect:"label,fmt:%.1f"`
	Jumping     bool          `inspect:"bool"`
	Inputs      neural.Inputs `inspect:"skip"`
	Genome      neural.Genome `inspect:"weights"`
}

// Frame is a snapshot of the state a render sink may draw.
// Slices are reused between ticks; sinks must not keep them.
type Frame struct {
	PlayfieldW, PlayfieldH float64

	Pipes  []PipeRects
	Agents []AgentView

	Score          int // Best score among live agents
	BestScore      int // Best score across all generations
	Generation     int
	Alive          int
	Population     int
	Tick           int64
	Distance       float64
	TickRate       float64
	Paused         bool
	StepsPerUpdate int

	// Primary is nil once the primary agent has died.
	Primary *PrimaryView
	primary PrimaryView
}

// Frame returns the current snapshot. The returned frame is owned by the
// game and overwritten by the next call.
func (g *Game) Frame() *Frame {
	f := &g.frameBuf
	f.PlayfieldW = g.cfg.Derived.PlayfieldW
	f.PlayfieldH = g.cfg.Derived.PlayfieldH

	f.Pipes = f.Pipes[:0]
	for _, o := range g.track.Obstacles() {
		upper, lower := o.Rects(f.PlayfieldH)
		f.Pipes = append(f.Pipes, PipeRects{Upper: upper, Lower: lower})
	}

	f.Agents = f.Agents[:0]
	f.Score = 0
	f.Primary = nil
	nearest := g.track.Nearest()
	query := g.agentFilter.Query()
	for query.Next() {
		pos, motion, body, player := query.Get()
		if !player.Alive {
			continue
		}
		if player.Primary {
			g.fillPrimary(&f.primary, *pos, *motion, *body, *player, nearest)
			f.Primary = &f.primary
		}
		f.Agents = append(f.Agents, AgentView{
			Rect:    systems.AgentRect(*pos, *body),
			Color:   body.Color,
			Primary: player.Primary,
		})
		if player.Score > f.Score {
			f.Score = player.Score
		}
	}

	f.BestScore = g.collector.AllTimeBest()
	f.Generation = g.engine.Generation()
	f.Alive = g.aliveCount
	f.Population = g.engine.Params().PopulationSize
	f.Tick = g.tick
	f.Distance = g.frame.Distance()
	f.TickRate = g.frame.TickRate
	f.Paused = g.paused
	f.StepsPerUpdate = g.stepsPerUpdate
	return f
}

func (g *Game) fillPrimary(v *PrimaryView, pos components.Position, motion components.Motion,
	body components.Body, player components.Player, nearest *systems.Obstacle) {
	sensors := systems.Sense(pos, body, nearest)
	genome, _ := g.engine.Genome(player.ID)
	inputs := sensors.AsInputs()

	v.ID = player.ID
	v.Score = player.Score
	v.VelocityY = motion.VelocityY
	v.ObstacleDX = sensors.ObstacleDX
	v.GapTopDY = sensors.GapTopDY
	v.GapBottomDY = sensors.GapBottomDY
	v.Inputs = inputs
	v.Genome = genome
	v.Activation = genome.Activation(inputs)
	v.Jumping = neural.Decide(inputs, genome)
}

// StatusLines formats the counters for display, one line each.
func (f *Frame) StatusLines() []string {
	state := "Running"
	if f.Paused {
		state = "PAUSED"
	}
	return []string{
		fmt.Sprintf("Score: %d | Best: %d", f.Score, f.BestScore),
		fmt.Sprintf("Generation: %d | Alive: %d/%d", f.Generation, f.Alive, f.Population),
		fmt.Sprintf("Tick: %d | Distance: %.0f | Rate: %.0f/s | Speed: %dx", f.Tick, f.Distance, f.TickRate, f.StepsPerUpdate),
		state,
	}
}
