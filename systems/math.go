package systems

// Rect is an axis-aligned rectangle in screen coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Overlaps reports whether two rectangles intersect with positive area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}
