package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawLines draws text lines top to bottom and returns the next free Y.
func (r *Renderer) DrawLines(x, y int32, lines []string, color rl.Color) int32 {
	for _, line := range lines {
		rl.DrawText(line, x, y, r.Theme.FontSize, color)
		y += r.Theme.LineHeight
	}
	return y
}

// PanelHeight returns the height of a panel holding n text lines.
func (r *Renderer) PanelHeight(n int) int32 {
	return int32(n)*r.Theme.LineHeight + 2*r.Theme.Padding
}
