package inspector

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/neural"
)

// InputLabels name the controller inputs in sensor order.
var InputLabels = [neural.NumInputs]string{"Pipe DX", "Gap top", "Gap bottom"}

// Colors for activation visualization.
var (
	ColorNodePositive = rl.Color{R: 255, G: 100, B: 100, A: 255}
	ColorNodeNegative = rl.Color{R: 100, G: 100, B: 255, A: 255}
	ColorEdgePositive = rl.Color{R: 200, G: 80, B: 80, A: 100}
	ColorEdgeNegative = rl.Color{R: 80, G: 80, B: 200, A: 100}
	ColorLabelDim     = rl.Color{R: 160, G: 160, B: 160, A: 255}
)

// DrawPolicyDiagram renders the controller: one node per input, one output
// node, and an edge per weight. Edge thickness follows the weight's share
// of the largest weight; node color follows the signed value it carries.
func DrawPolicyDiagram(x, y, width, height int32, in neural.Inputs, g neural.Genome) {
	nodeRadius := float32(6)
	spacing := float32(height-20) / float32(neural.NumInputs)

	inputX := float32(x) + float32(width)/3
	outputX := float32(x) + float32(width)*5/6
	output := rl.Vector2{X: outputX, Y: float32(y) + float32(height)/2}

	var maxW float64
	for _, w := range g {
		maxW = math.Max(maxW, math.Abs(w))
	}

	for i := range neural.NumInputs {
		node := rl.Vector2{X: inputX, Y: float32(y) + 10 + spacing*(float32(i)+0.5)}
		if maxW > 0 {
			drawEdge(node, output, g[i]/maxW)
		}
		drawNode(node, nodeRadius, normalize(in[i]))

		labelWidth := rl.MeasureText(InputLabels[i], 10)
		rl.DrawText(InputLabels[i], int32(node.X-nodeRadius)-labelWidth-4, int32(node.Y)-5, 10, ColorLabelDim)
	}

	drawNode(output, nodeRadius+2, normalize(g.Activation(in)))
	rl.DrawText("Jump", int32(output.X+nodeRadius+6), int32(output.Y)-5, 10, ColorLabelDim)
}

// normalize squashes a raw pixel-scale value into [-1,1] for coloring.
func normalize(v float64) float32 {
	return float32(math.Tanh(v / 100))
}

// drawNode renders a single node.
func drawNode(pos rl.Vector2, radius, activation float32) {
	rl.DrawCircleV(pos, radius, activationColor(activation))
	rl.DrawCircleLinesV(pos, radius, rl.Color{R: 100, G: 100, B: 100, A: 255})
}

// drawEdge renders a connection; weight is relative, in [-1,1].
func drawEdge(from, to rl.Vector2, weight float64) {
	mag := float32(math.Abs(weight))
	thickness := max(0.5, mag*3)

	color := ColorEdgePositive
	if weight < 0 {
		color = ColorEdgeNegative
	}
	color.A = uint8(40 + mag*110)

	rl.DrawLineEx(from, to, thickness, color)
}

// activationColor returns a color based on activation value.
// Negative = blue, Zero = gray, Positive = red.
func activationColor(activation float32) rl.Color {
	t := min(float32(math.Abs(float64(activation))), 1)
	if activation > 0 {
		return rl.Color{R: uint8(60 + t*195), G: uint8(60 - t*30), B: uint8(60 - t*30), A: 255}
	}
	return rl.Color{R: uint8(60 - t*30), G: uint8(60 - t*30), B: uint8(60 + t*195), A: 255}
}
