package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    420,
	}
}

// Draw renders the title and status lines in the top-left corner.
// The last line is drawn in the status color.
func (h *HUD) Draw(title string, lines []string) {
	r := h.renderer
	pad := r.Theme.Padding

	r.DrawPanel(pad/2, pad/2, h.width, r.PanelHeight(len(lines)+1))

	x, y := pad, pad
	rl.DrawText(title, x, y, r.Theme.TitleSize, r.Theme.TitleColor)
	y += r.Theme.LineHeight + 4

	if len(lines) == 0 {
		return
	}
	y = r.DrawLines(x, y, lines[:len(lines)-1], r.Theme.TextColor)
	rl.DrawText(lines[len(lines)-1], x, y, r.Theme.FontSize, r.Theme.StatusColor)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, h.renderer.Theme.HintColor)
}
