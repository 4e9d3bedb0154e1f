// Package renderer runs the game in a raylib window. The window is the
// game's render sink, input source and clock at once.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/camera"
	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/inspector"
	"github.com/pthm-cable/flap/ui"
)

const controlsHint = "SPACE: jump | P: pause | , . : speed | I: inspect | ESC: quit"

// Window is a resizable raylib window showing the whole playfield.
type Window struct {
	title     string
	viewport  *camera.Viewport
	hud       *ui.HUD
	panel     *ui.ControlPanel
	inspector *inspector.Inspector
}

// NewWindow opens the window. Must be called from the main goroutine and
// paired with Close.
func NewWindow(cfg *config.Config, title string, stepsPerUpdate int) *Window {
	w, h := cfg.Screen.Width, cfg.Screen.Height

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(w), int32(h), title)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	return &Window{
		title:     title,
		viewport:  camera.NewViewport(float64(w), float64(h), cfg.Derived.PlayfieldW, cfg.Derived.PlayfieldH),
		hud:       ui.NewHUD(),
		panel:     ui.NewControlPanel(float32(w-270), 10, stepsPerUpdate, game.MinStepsPerUpdate, game.MaxStepsPerUpdate),
		inspector: inspector.NewInspector(),
	}
}

// Close closes the window.
func (w *Window) Close() {
	rl.CloseWindow()
}

// ForceJump reports whether the jump key was pressed this frame.
func (w *Window) ForceJump() bool {
	return rl.IsKeyPressed(rl.KeySpace)
}

// Quit reports whether the window was asked to close.
func (w *Window) Quit() bool {
	return rl.WindowShouldClose()
}

// Paused reports the control panel's pause state.
func (w *Window) Paused() bool {
	return w.panel.Paused()
}

// StepsPerUpdate reports the control panel's speed.
func (w *Window) StepsPerUpdate() int {
	return w.panel.Steps()
}

// TickRate returns raylib's measured frame rate. One tick runs per frame.
func (w *Window) TickRate() float64 {
	return float64(rl.GetFPS())
}

// WaitNextTick is a no-op: EndDrawing in Render paces the loop to the
// target frame rate.
func (w *Window) WaitNextTick() {}

// handleResize keeps the viewport and the panel in sync with the window size.
func (w *Window) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()
	w.viewport.Resize(float64(sw), float64(sh))
	w.panel.SetPosition(float32(sw-270), 10)
}

// Render draws one frame.
func (w *Window) Render(f *game.Frame) {
	w.handleResize()
	w.panel.HandleKeys()
	w.inspector.HandleKeys()

	rl.BeginDrawing()
	rl.ClearBackground(skyColor)

	drawPipes(w.viewport, f.Pipes)
	drawAgents(w.viewport, f.Agents)

	w.hud.Draw(w.title, f.StatusLines())
	w.hud.DrawControls(int32(rl.GetScreenHeight()), controlsHint)
	w.panel.Draw()
	w.inspector.Draw(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), f.Primary)

	rl.EndDrawing()
}
