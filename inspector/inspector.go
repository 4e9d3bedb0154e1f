// Package inspector shows the primary agent's controller in graphical mode:
// its sensor readings, weights and the resulting jump decision.
package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/ui"
)

// Panel dimensions
const (
	PanelWidth    = 300
	DiagramHeight = 110
)

// Inspector renders the primary agent panel. It is toggled with I.
type Inspector struct {
	renderer *ui.Renderer
	visible  bool
}

// NewInspector creates a hidden inspector.
func NewInspector() *Inspector {
	return &Inspector{renderer: ui.NewRenderer()}
}

// Visible reports whether the panel is shown.
func (ins *Inspector) Visible() bool {
	return ins.visible
}

// Toggle shows or hides the panel.
func (ins *Inspector) Toggle() {
	ins.visible = !ins.visible
}

// HandleKeys toggles the panel on I.
func (ins *Inspector) HandleKeys() {
	if rl.IsKeyPressed(rl.KeyI) {
		ins.Toggle()
	}
}

// Draw renders the panel in the bottom-right corner of the screen.
func (ins *Inspector) Draw(screenWidth, screenHeight int32, primary *game.PrimaryView) {
	if !ins.visible {
		return
	}
	r := ins.renderer
	pad := r.Theme.Padding

	lines := []string{"Primary agent died"}
	if primary != nil {
		lines = Lines(primary)
	}

	height := r.PanelHeight(len(lines)+1) + DiagramHeight
	x := screenWidth - PanelWidth - pad
	y := screenHeight - height - 40
	r.DrawPanel(x, y, PanelWidth, height)

	rl.DrawText("Primary", x+pad, y+pad, r.Theme.FontSize, r.Theme.TitleColor)
	next := r.DrawLines(x+pad, y+pad+r.Theme.LineHeight, lines, r.Theme.TextColor)

	if primary != nil {
		DrawPolicyDiagram(x+pad, next, PanelWidth-2*pad, DiagramHeight, primary.Inputs, primary.Genome)
	}
}
