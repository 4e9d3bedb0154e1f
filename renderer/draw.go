package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/camera"
	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/systems"
)

var (
	skyColor      = rl.Color{R: 112, G: 197, B: 206, A: 255}
	pipeColor     = rl.Color{R: 83, G: 160, B: 52, A: 255}
	pipeEdgeColor = rl.Color{R: 45, G: 95, B: 30, A: 255}
)

// screenRect maps a playfield rectangle onto the window.
func screenRect(v *camera.Viewport, r systems.Rect) rl.Rectangle {
	x, y, w, h := v.RectToScreen(r.X, r.Y, r.W, r.H)
	return rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}
}

func drawPipes(v *camera.Viewport, pipes []game.PipeRects) {
	for _, p := range pipes {
		if !v.IsVisible(p.Upper.X, p.Upper.W) {
			continue
		}
		for _, r := range [2]systems.Rect{p.Upper, p.Lower} {
			sr := screenRect(v, r)
			rl.DrawRectangleRec(sr, pipeColor)
			rl.DrawRectangleLinesEx(sr, 2, pipeEdgeColor)
		}
	}
}

func drawAgents(v *camera.Viewport, agents []game.AgentView) {
	for _, a := range agents {
		sr := screenRect(v, a.Rect)
		rl.DrawRectangleRec(sr, rl.Color{R: a.Color.R, G: a.Color.G, B: a.Color.B, A: 255})
		if a.Primary {
			rl.DrawRectangleLinesEx(sr, 2, rl.White)
		}
	}
}
