package systems

import (
	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/neural"
)

// SensorInputs holds the computed sensor values for one agent.
type SensorInputs struct {
	ObstacleDX  float64 // obstacle leading edge minus agent leading edge
	GapTopDY    float64 // gap top edge minus agent top edge
	GapBottomDY float64 // gap bottom edge minus agent bottom edge
}

// AsInputs returns the sensor values in controller order.
func (s SensorInputs) AsInputs() neural.Inputs {
	return neural.Inputs{s.ObstacleDX, s.GapTopDY, s.GapBottomDY}
}

// Sense computes the agent's readings against the nearest obstacle.
// It reads only its arguments.
func Sense(pos components.Position, body components.Body, o *Obstacle) SensorInputs {
	return SensorInputs{
		ObstacleDX:  o.ScreenX - (pos.X + body.Size),
		GapTopDY:    o.GapTop - pos.Y,
		GapBottomDY: o.GapBottom() - (pos.Y + body.Size),
	}
}
