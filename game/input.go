package game

// RenderSink consumes one Frame per displayed tick. It never reads back
// from the game.
type RenderSink interface {
	Render(f *Frame)
}

// InputSource is sampled once per tick.
type InputSource interface {
	// ForceJump makes the primary agent jump this tick.
	ForceJump() bool
	// Quit stops the run loop between ticks.
	Quit() bool
}

// Controls is optionally implemented by an InputSource that can pause the
// game or change its speed.
type Controls interface {
	Paused() bool
	StepsPerUpdate() int
}

// Clock measures and paces ticks.
type Clock interface {
	// TickRate returns the measured ticks per second. Zero means unknown.
	TickRate() float64
	// WaitNextTick blocks until the next tick is due.
	WaitNextTick()
}

// NopSink discards frames.
type NopSink struct{}

func (NopSink) Render(*Frame) {}

// NopInput never jumps and never quits.
type NopInput struct{}

func (NopInput) ForceJump() bool { return false }
func (NopInput) Quit() bool      { return false }

// FixedClock reports a constant tick rate and never waits.
type FixedClock float64

func (c FixedClock) TickRate() float64 { return float64(c) }
func (FixedClock) WaitNextTick()       {}
