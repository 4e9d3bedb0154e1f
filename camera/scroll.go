package camera

import "math"

// ScrollFrame owns the world offset of a generation's run.
// Obstacles live in world coordinates; their screen position is
// spawn_x - OffsetX. OffsetX never decreases.
type ScrollFrame struct {
	OffsetX     float64
	ScrollSpeed float64 // world units per tick
	TickRate    float64 // effective ticks per second used by physics

	pixelsPerSecond float64
	maxTickRate     float64
	smoothing       float64
}

// NewScrollFrame creates a frame scrolling at pixelsPerSecond in real time,
// assuming the target tick rate until a measurement arrives.
// smoothing is the weight of the previous rate when a new one is observed.
func NewScrollFrame(pixelsPerSecond, maxTickRate, smoothing float64) *ScrollFrame {
	return &ScrollFrame{
		ScrollSpeed:     pixelsPerSecond / maxTickRate,
		TickRate:        maxTickRate,
		pixelsPerSecond: pixelsPerSecond,
		maxTickRate:     maxTickRate,
		smoothing:       smoothing,
	}
}

// Advance moves the frame forward by one tick.
func (f *ScrollFrame) Advance() {
	f.OffsetX += f.ScrollSpeed
}

// ObserveTickRate feeds a measured tick rate into the frame.
// Zero, negative and NaN measurements keep the previous rate.
// Measurements above the target rate are capped at the target.
func (f *ScrollFrame) ObserveTickRate(measured float64) {
	if !(measured > 0) || math.IsInf(measured, 0) {
		return
	}
	if measured > f.maxTickRate {
		measured = f.maxTickRate
	}

	rate := measured
	if f.smoothing > 0 {
		rate = f.smoothing*f.TickRate + (1-f.smoothing)*measured
	}
	if rate == f.TickRate {
		return
	}
	f.TickRate = rate
	f.ScrollSpeed = f.pixelsPerSecond / rate
}

// ScreenX converts a world x coordinate to a screen x coordinate.
func (f *ScrollFrame) ScreenX(worldX float64) float64 {
	return worldX - f.OffsetX
}

// Distance returns how far the frame has scrolled, the distance every
// agent alive since the start of the generation has traveled.
func (f *ScrollFrame) Distance() float64 {
	return f.OffsetX
}

// Reset rewinds the frame for a new generation. The tick rate is kept.
func (f *ScrollFrame) Reset() {
	f.OffsetX = 0
}
