package systems

import (
	"math/rand"

	"github.com/pthm-cable/flap/camera"
	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/config"
)

// Obstacle is a pipe pair with a gap. GapTop is the y of the gap's upper edge.
type Obstacle struct {
	ID        components.ObstacleID
	SpawnX    float64 // world coordinate
	GapTop    float64
	GapHeight float64
	Width     float64

	ScreenX float64 // SpawnX - frame offset, refreshed every tick
}

// UpdateScreenPosition recomputes ScreenX from the frame offset.
func (o *Obstacle) UpdateScreenPosition(frame *camera.ScrollFrame) {
	o.ScreenX = frame.ScreenX(o.SpawnX)
}

// IsOut reports whether the obstacle's right edge has left the screen.
func (o *Obstacle) IsOut() bool {
	return o.ScreenX+o.Width < 0
}

// GapBottom returns the y of the gap's lower edge.
func (o *Obstacle) GapBottom() float64 {
	return o.GapTop + o.GapHeight
}

// Rects returns the pipe above the gap and the pipe below it.
func (o *Obstacle) Rects(playfieldH float64) (upper, lower Rect) {
	upper = Rect{X: o.ScreenX, Y: 0, W: o.Width, H: o.GapTop}
	lower = Rect{X: o.ScreenX, Y: o.GapBottom(), W: o.Width, H: playfieldH - o.GapBottom()}
	return upper, lower
}

// TrackParams controls obstacle generation.
type TrackParams struct {
	Distance   float64 // world distance between consecutive obstacles
	Width      float64
	MinGap     int
	MaxGap     int
	Margin     int // minimum distance between gap edges and playfield edges
	Lookahead  int // obstacles kept in the track
	PlayfieldH int
}

// TrackParamsFromConfig extracts track parameters from the configuration.
func TrackParamsFromConfig(cfg *config.Config) TrackParams {
	return TrackParams{
		Distance:   cfg.Obstacles.DistanceBetweenPipes,
		Width:      cfg.Obstacles.Width,
		MinGap:     cfg.Obstacles.MinGap,
		MaxGap:     cfg.Obstacles.MaxGap,
		Margin:     cfg.Obstacles.Margin,
		Lookahead:  cfg.Obstacles.Lookahead,
		PlayfieldH: cfg.Screen.Height,
	}
}

// Track is the ordered window of upcoming obstacles. The first obstacle is
// always the nearest one still on screen.
type Track struct {
	params    TrackParams
	rng       *rand.Rand
	obstacles []Obstacle
	nextID    components.ObstacleID
}

// NewTrack creates a track holding Lookahead obstacles spaced Distance apart,
// starting one Distance ahead of the world origin.
func NewTrack(params TrackParams, rng *rand.Rand, frame *camera.ScrollFrame) *Track {
	t := &Track{
		params: params,
		rng:    rng,
		nextID: components.NoObstacle + 1,
	}
	t.Reset(frame)
	return t
}

// Reset discards all obstacles and rebuilds the initial window.
// Obstacle IDs keep increasing so stale references never match a new obstacle.
func (t *Track) Reset(frame *camera.ScrollFrame) {
	t.obstacles = t.obstacles[:0]
	for i := 1; i <= t.params.Lookahead; i++ {
		t.obstacles = append(t.obstacles, t.spawn(t.params.Distance*float64(i), frame))
	}
}

// spawn generates an obstacle at the given world x.
func (t *Track) spawn(x float64, frame *camera.ScrollFrame) Obstacle {
	p := t.params
	gap := p.MinGap + t.rng.Intn(p.MaxGap-p.MinGap+1)
	topRange := p.PlayfieldH - 2*p.Margin - gap
	top := p.Margin + t.rng.Intn(topRange+1)

	o := Obstacle{
		ID:        t.nextID,
		SpawnX:    x,
		GapTop:    float64(top),
		GapHeight: float64(gap),
		Width:     p.Width,
	}
	t.nextID++
	o.UpdateScreenPosition(frame)
	return o
}

// Update refreshes every obstacle's screen position, then drops obstacles
// that scrolled off the left edge and appends replacements behind the last
// one. Returns the number of obstacles recycled.
func (t *Track) Update(frame *camera.ScrollFrame) int {
	for i := range t.obstacles {
		t.obstacles[i].UpdateScreenPosition(frame)
	}

	recycled := 0
	for len(t.obstacles) > 0 && t.obstacles[0].IsOut() {
		last := t.obstacles[len(t.obstacles)-1]
		t.obstacles = append(t.obstacles[1:], t.spawn(last.SpawnX+t.params.Distance, frame))
		recycled++
	}
	return recycled
}

// Nearest returns the left-most obstacle still on screen.
// An empty track is a broken tick-loop invariant and panics.
func (t *Track) Nearest() *Obstacle {
	if len(t.obstacles) == 0 {
		panic("systems: Nearest called on an empty obstacle track")
	}
	return &t.obstacles[0]
}

// Obstacles returns the current window, nearest first.
// The slice is only valid until the next Update or Reset.
func (t *Track) Obstacles() []Obstacle {
	return t.obstacles
}

// Len returns the number of obstacles in the track.
func (t *Track) Len() int {
	return len(t.obstacles)
}
