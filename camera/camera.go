// Package camera provides the horizontally scrolling world frame and the
// viewport that maps playfield coordinates onto a window or terminal.
package camera

// Viewport maps playfield coordinates to screen coordinates.
// The whole playfield is always visible; the screen may have a different
// size or aspect ratio (a resized window, a terminal cell grid).
type Viewport struct {
	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Playfield dimensions
	WorldW, WorldH float64

	// Per-axis scale from world units to screen units
	ScaleX, ScaleY float64
}

// NewViewport creates a viewport showing the full playfield.
func NewViewport(viewportW, viewportH, worldW, worldH float64) *Viewport {
	v := &Viewport{WorldW: worldW, WorldH: worldH}
	v.Resize(viewportW, viewportH)
	return v
}

// WorldToScreen converts playfield coordinates to screen coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx * v.ScaleX, wy * v.ScaleY
}

// ScreenToWorld converts screen coordinates to playfield coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return sx / v.ScaleX, sy / v.ScaleY
}

// RectToScreen converts a playfield rectangle to screen space.
func (v *Viewport) RectToScreen(x, y, w, h float64) (sx, sy, sw, sh float64) {
	sx, sy = v.WorldToScreen(x, y)
	return sx, sy, w * v.ScaleX, h * v.ScaleY
}

// IsVisible returns true if the rectangle overlaps the playfield horizontally.
// Used to cull obstacles that have not scrolled in yet.
func (v *Viewport) IsVisible(x, w float64) bool {
	return x+w >= 0 && x <= v.WorldW
}

// Resize updates viewport dimensions and recalculates the scale.
func (v *Viewport) Resize(viewportW, viewportH float64) {
	if viewportW == v.ViewportW && viewportH == v.ViewportH && v.ScaleX != 0 {
		return
	}
	v.ViewportW = viewportW
	v.ViewportH = viewportH
	v.ScaleX = safeDiv(viewportW, v.WorldW)
	v.ScaleY = safeDiv(viewportH, v.WorldH)
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 1
	}
	return a / b
}
