package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/evolution"
)

// deadAgent is an agent collected for removal.
type deadAgent struct {
	entity  ecs.Entity
	id      uint32
	score   int
	retired bool
}

// spawnGeneration creates one agent per member. The first member is the
// primary agent that receives the manual jump signal.
func (g *Game) spawnGeneration(members []evolution.Member) {
	cfg := g.cfg
	size := cfg.Agent.Size
	tickRate := g.frame.TickRate

	for i, m := range members {
		pos := components.Position{
			X: cfg.Agent.StartX,
			Y: cfg.Derived.PlayfieldH/2 - size/2,
		}
		motion := g.physics.InitialMotion(tickRate)
		body := components.Body{
			Size: size,
			Color: components.Color{
				R: uint8(g.rng.Intn(256)),
				G: uint8(g.rng.Intn(256)),
				B: uint8(g.rng.Intn(256)),
			},
		}
		player := components.Player{
			ID:      m.ID,
			Alive:   true,
			Primary: i == 0,
		}
		g.agentMapper.NewEntity(&pos, &motion, &body, &player)
		g.aliveCount++
	}

	g.generationTick = 0
	g.collector.StartGeneration(g.engine.Generation(), g.tick, g.engine.LastMutations())
}

// cleanupDead removes agents marked dead this tick after recording their
// fitness. With retireAll every remaining agent is retired as well.
func (g *Game) cleanupDead(retireAll bool) {
	// First pass: collect dead entities (must complete before modifying)
	g.dead = g.dead[:0]
	query := g.agentFilter.Query()
	for query.Next() {
		_, _, _, player := query.Get()
		if player.Alive && !retireAll {
			continue
		}
		g.dead = append(g.dead, deadAgent{
			entity:  query.Entity(),
			id:      player.ID,
			score:   player.Score,
			retired: player.Alive,
		})
	}

	// Second pass: record and remove (query iteration complete)
	distance := g.frame.Distance()
	for _, dead := range g.dead {
		fitness := g.engine.RecordFitness(dead.id, distance, dead.score)
		g.collector.RecordDeath(distance, dead.score, fitness, dead.retired)
		g.world.RemoveEntity(dead.entity)
		g.aliveCount--
	}
}

// nextGeneration closes the finished generation and starts the next one on
// a fresh frame and track.
func (g *Game) nextGeneration() {
	if n := g.engine.Pending(); n != 0 {
		panic(fmt.Sprintf("game: generation %d ended with %d agents unrecorded", g.engine.Generation(), n))
	}
	g.flushGeneration()

	members := g.engine.NextGeneration()

	g.frame.Reset()
	g.track.Reset(g.frame)
	g.spawnGeneration(members)

	slog.Debug("generation started",
		"generation", g.engine.Generation(),
		"population", len(members),
		"mutations", g.engine.LastMutations(),
	)
}
