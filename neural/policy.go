// Package neural provides the agent controller: a fixed linear weighting of
// sensor readings that decides whether to jump.
package neural

// NumInputs is the number of sensor readings fed to the controller.
const NumInputs = 3

// Inputs are the sensor readings for one tick, in sensor order:
// horizontal gap to the obstacle, vertical gap to the gap's top edge,
// vertical gap to the gap's bottom edge.
type Inputs [NumInputs]float64

// Genome is one weight per sensor. It is the unit of inheritance and is
// held by value, independent of the agent it drives.
type Genome [NumInputs]float64

// Activation returns the weighted sum of the inputs.
func (g Genome) Activation(in Inputs) float64 {
	var sum float64
	for i := range g {
		sum += in[i] * g[i]
	}
	return sum
}

// Decide reports whether the agent should jump this tick.
func Decide(in Inputs, g Genome) bool {
	return g.Activation(in) > 0
}

// MarshalWeights returns a copy of the weights as a slice for logging.
func (g Genome) MarshalWeights() []float64 {
	out := make([]float64, NumInputs)
	copy(out, g[:])
	return out
}
