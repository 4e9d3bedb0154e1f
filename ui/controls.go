package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlPanel holds the pause toggle and the steps-per-update slider.
type ControlPanel struct {
	renderer *Renderer
	x, y     float32

	paused   bool
	steps    int
	minSteps int
	maxSteps int
}

// NewControlPanel creates a control panel anchored at (x, y).
// Steps start at initial and stay within [minSteps, maxSteps].
func NewControlPanel(x, y float32, initial, minSteps, maxSteps int) *ControlPanel {
	c := &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		minSteps: minSteps,
		maxSteps: maxSteps,
	}
	c.SetSteps(initial)
	return c
}

// SetPosition moves the panel, e.g. after a window resize.
func (c *ControlPanel) SetPosition(x, y float32) {
	c.x, c.y = x, y
}

// Paused reports whether the pause toggle is on.
func (c *ControlPanel) Paused() bool {
	return c.paused
}

// TogglePause flips the pause state.
func (c *ControlPanel) TogglePause() {
	c.paused = !c.paused
}

// Steps returns the selected steps per update.
func (c *ControlPanel) Steps() int {
	return c.steps
}

// SetSteps sets the steps per update, clamped to the panel range.
func (c *ControlPanel) SetSteps(n int) {
	if n < c.minSteps {
		n = c.minSteps
	}
	if n > c.maxSteps {
		n = c.maxSteps
	}
	c.steps = n
}

// HandleKeys applies keyboard shortcuts: P pauses, comma and period change
// the speed.
func (c *ControlPanel) HandleKeys() {
	if rl.IsKeyPressed(rl.KeyP) {
		c.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		c.SetSteps(c.steps - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		c.SetSteps(c.steps + 1)
	}
}

// Draw renders the panel and applies widget interaction.
func (c *ControlPanel) Draw() {
	r := c.renderer
	const width, height = 260, 80
	r.DrawPanel(int32(c.x), int32(c.y), width, height)

	x := c.x + float32(r.Theme.Padding)
	y := c.y + float32(r.Theme.Padding)

	label := "Pause"
	if c.paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 100, Height: 24}, label) {
		c.TogglePause()
	}
	rl.DrawText(fmt.Sprintf("Speed %dx", c.steps), int32(x)+120, int32(y)+4, r.Theme.FontSize, r.Theme.TextColor)

	y += 36
	newSteps := gui.SliderBar(
		rl.Rectangle{X: x + 30, Y: y, Width: width - 80, Height: 20},
		fmt.Sprint(c.minSteps), fmt.Sprint(c.maxSteps),
		float32(c.steps), float32(c.minSteps), float32(c.maxSteps),
	)
	c.SetSteps(int(newSteps + 0.5))
}
