// Package systems contains the per-tick rules of the simulation: agent
// physics, the obstacle track, collision and scoring, and sensors.
package systems

import (
	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/config"
)

// Physics holds the tick-rate independent motion constants.
type Physics struct {
	Gravity   float64
	JumpForce float64
}

// PhysicsFromConfig extracts the motion constants from the configuration.
func PhysicsFromConfig(cfg *config.Config) Physics {
	return Physics{
		Gravity:   cfg.Physics.Gravity,
		JumpForce: cfg.Physics.JumpForce,
	}
}

// InitialMotion returns the motion state of a freshly spawned agent.
func (p Physics) InitialMotion(tickRate float64) components.Motion {
	accel := p.Gravity / tickRate
	return components.Motion{
		AccelY:    accel,
		VelocityY: accel / tickRate,
	}
}

// Step integrates one tick of falling. Acceleration compounds every tick
// and is only reset by Jump. Dead agents do not move.
func (p Physics) Step(pos *components.Position, m *components.Motion, player *components.Player, tickRate float64) {
	if !player.Alive {
		return
	}
	m.AccelY += p.Gravity / tickRate
	m.VelocityY -= m.AccelY / tickRate
	pos.Y -= m.VelocityY
}

// Jump resets the compounded acceleration and gives the agent upward velocity.
func (p Physics) Jump(m *components.Motion, player *components.Player, tickRate float64) {
	if !player.Alive {
		return
	}
	m.AccelY = p.Gravity / tickRate
	m.VelocityY = p.JumpForce / tickRate
}
