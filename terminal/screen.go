// Package terminal runs the game in a text terminal using tcell. The screen
// is the game's render sink, input source and clock at once.
package terminal

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/flap/camera"
	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/systems"
)

// statusRows are reserved below the playfield for the counters.
const statusRows = 4

var (
	pipeStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Screen draws frames as terminal cells.
type Screen struct {
	screen   tcell.Screen
	viewport *camera.Viewport
	ticker   *time.Ticker
	lastTick time.Time
	rate     float64

	// Written by the event goroutine
	jump    atomic.Bool
	quit    atomic.Bool
	paused  atomic.Bool
	steps   atomic.Int32
	resized atomic.Bool
}

// NewScreen initializes the terminal and starts reading key events.
// Call Close to restore the terminal.
func NewScreen(cfg *config.Config, stepsPerUpdate int) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	cols, rows := screen.Size()
	s := &Screen{
		screen:   screen,
		viewport: camera.NewViewport(float64(cols), float64(max(rows-statusRows, 1)), cfg.Derived.PlayfieldW, cfg.Derived.PlayfieldH),
		ticker:   time.NewTicker(time.Second / time.Duration(cfg.Screen.TargetFPS)),
	}
	s.steps.Store(int32(stepsPerUpdate))

	go s.pollEvents()
	return s, nil
}

// Close stops the clock and restores the terminal.
func (s *Screen) Close() {
	s.ticker.Stop()
	s.screen.Fini()
}

// pollEvents runs until the screen is finalized.
func (s *Screen) pollEvents() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		s.handleEvent(ev)
	}
}

func (s *Screen) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			s.quit.Store(true)
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				s.jump.Store(true)
			case 'q':
				s.quit.Store(true)
			case 'p':
				s.paused.Store(!s.paused.Load())
			case ',':
				s.steps.Store(int32(max(int(s.steps.Load())-1, game.MinStepsPerUpdate)))
			case '.':
				s.steps.Store(int32(min(int(s.steps.Load())+1, game.MaxStepsPerUpdate)))
			}
		}
	case *tcell.EventResize:
		s.resized.Store(true)
	}
}

// ForceJump reports and clears a pending jump key press.
func (s *Screen) ForceJump() bool {
	return s.jump.Swap(false)
}

// Quit reports whether a quit key was pressed.
func (s *Screen) Quit() bool {
	return s.quit.Load()
}

// Paused reports whether the pause key toggled the game off.
func (s *Screen) Paused() bool {
	return s.paused.Load()
}

// StepsPerUpdate reports the speed selected with the , and . keys.
func (s *Screen) StepsPerUpdate() int {
	return int(s.steps.Load())
}

// TickRate returns the rate measured between the last two ticks, or zero
// before the second tick.
func (s *Screen) TickRate() float64 {
	return s.rate
}

// WaitNextTick blocks until the ticker fires and measures the interval.
func (s *Screen) WaitNextTick() {
	now := <-s.ticker.C
	if !s.lastTick.IsZero() {
		if dt := now.Sub(s.lastTick).Seconds(); dt > 0 {
			s.rate = 1 / dt
		}
	}
	s.lastTick = now
}

// Render draws one frame.
func (s *Screen) Render(f *game.Frame) {
	if s.resized.Swap(false) {
		s.screen.Sync()
		cols, rows := s.screen.Size()
		s.viewport.Resize(float64(cols), float64(max(rows-statusRows, 1)))
	}

	s.screen.Clear()

	for _, p := range f.Pipes {
		if !s.viewport.IsVisible(p.Upper.X, p.Upper.W) {
			continue
		}
		s.fill(p.Upper, '█', pipeStyle)
		s.fill(p.Lower, '█', pipeStyle)
	}
	for _, a := range f.Agents {
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(a.Color.R), int32(a.Color.G), int32(a.Color.B)))
		r := '●'
		if a.Primary {
			r = '◆'
		}
		s.fill(a.Rect, r, style)
	}

	_, rows := s.screen.Size()
	for i, line := range f.StatusLines() {
		s.drawText(0, rows-statusRows+i, line, statusStyle)
	}

	s.screen.Show()
}

func (s *Screen) fill(r systems.Rect, ch rune, style tcell.Style) {
	x0, y0, x1, y1 := cellSpan(s.viewport, r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (s *Screen) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		s.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// cellSpan returns the half-open cell range [x0,x1) x [y0,y1) covered by a
// playfield rectangle, clipped to the viewport. Any rectangle inside the
// viewport covers at least one cell.
func cellSpan(v *camera.Viewport, r systems.Rect) (x0, y0, x1, y1 int) {
	sx, sy, sw, sh := v.RectToScreen(r.X, r.Y, r.W, r.H)
	x0 = int(math.Floor(sx))
	y0 = int(math.Floor(sy))
	x1 = max(int(math.Ceil(sx+sw)), x0+1)
	y1 = max(int(math.Ceil(sy+sh)), y0+1)

	cols, rows := int(v.ViewportW), int(v.ViewportH)
	x0, x1 = min(max(x0, 0), cols), min(x1, cols)
	y0, y1 = min(max(y0, 0), rows), min(y1, rows)
	return x0, y0, x1, y1
}
