package game

import "context"

// UpdateHeadless runs StepsPerUpdate ticks at the target tick rate without
// input or rendering.
func (g *Game) UpdateHeadless() {
	rate := g.cfg.Physics.MaxTickRate
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(false, rate)
		if g.Done() {
			return
		}
	}
}

// Update runs StepsPerUpdate ticks unless paused. The clock's rate is
// sampled for every tick. The force-jump signal is a per-frame event, so it
// is sampled once and applied to the first tick only. Controls, when the
// input implements them, override the pause state and speed first.
func (g *Game) Update(input InputSource, clock Clock) {
	if c, ok := input.(Controls); ok {
		g.paused = c.Paused()
		g.stepsPerUpdate = clampSteps(c.StepsPerUpdate())
	}
	if g.paused {
		return
	}

	forceJump := input.ForceJump()
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(forceJump && i == 0, clock.TickRate())
		if g.Done() {
			return
		}
	}
}

// Run drives the game until ctx is cancelled, the input asks to quit or a
// stop condition is reached. Cancellation is only observed between ticks.
// It returns ctx.Err() on cancellation and nil otherwise.
func (g *Game) Run(ctx context.Context, sink RenderSink, input InputSource, clock Clock) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if input.Quit() || g.Done() {
			return nil
		}

		g.Update(input, clock)
		g.perfCollector.RecordFrame()
		sink.Render(g.Frame())
		clock.WaitNextTick()
	}
}
