package game

import (
	"github.com/pthm-cable/flap/neural"
	"github.com/pthm-cable/flap/systems"
	"github.com/pthm-cable/flap/telemetry"
)

// Step advances the simulation by one tick. forceJump makes the primary
// agent jump; measuredRate is the clock's tick rate, zero if unknown.
func (g *Game) Step(forceJump bool, measuredRate float64) {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseScroll)
	g.frame.ObserveTickRate(measuredRate)
	g.frame.Advance()

	g.perfCollector.StartPhase(telemetry.PhaseObstacles)
	g.track.Update(g.frame)

	g.perfCollector.StartPhase(telemetry.PhaseAgents)
	g.updateAgents(forceJump)

	g.perfCollector.StartPhase(telemetry.PhaseCleanup)
	g.tick++
	g.generationTick++
	capped := g.cfg.Evolution.MaxGenerationTicks > 0 && g.generationTick >= g.cfg.Evolution.MaxGenerationTicks
	g.cleanupDead(capped)

	if g.aliveCount == 0 {
		g.perfCollector.StartPhase(telemetry.PhaseEvolution)
		g.nextGeneration()
	}

	g.perfCollector.EndTick()
	g.flushPerf()
}

// updateAgents runs sense, decide, physics, scoring and the death test for
// every live agent. Agents read only the shared frame and track, so no
// agent observes another agent's state for this tick. Dead agents are only
// marked here.
func (g *Game) updateAgents(forceJump bool) {
	nearest := g.track.Nearest()
	playfieldH := g.cfg.Derived.PlayfieldH
	tickRate := g.frame.TickRate

	query := g.agentFilter.Query()
	for query.Next() {
		pos, motion, body, player := query.Get()
		if !player.Alive {
			continue
		}

		genome, ok := g.engine.Genome(player.ID)
		if !ok {
			panic("game: live agent without a genome")
		}

		inputs := systems.Sense(*pos, *body, nearest).AsInputs()
		if neural.Decide(inputs, genome) || (forceJump && player.Primary) {
			g.physics.Jump(motion, player, tickRate)
		}
		g.physics.Step(pos, motion, player, tickRate)

		if systems.UpdateScore(*pos, *body, player, nearest) {
			if g.collector.ObserveScore(player.Score) && g.onNewBest != nil {
				g.onNewBest(player.Score)
			}
		}

		if systems.IsDead(*pos, *body, nearest, playfieldH) {
			player.Alive = false
		}
	}
}
