// Package components defines ECS components for the simulation.
package components

// Position is the top-left corner of an agent's bounding box in playfield
// coordinates. X stays fixed for the agent's lifetime; the world scrolls past it.
type Position struct {
	X, Y float64
}

// Motion holds vertical kinematics. Positive VelocityY moves the agent up.
// AccelY compounds every tick and is only reset by a jump.
type Motion struct {
	VelocityY float64
	AccelY    float64
}

// Color is an RGB render color.
type Color struct {
	R, G, B uint8
}

// Body holds the agent's square bounding box size and render color.
type Body struct {
	Size  float64
	Color Color
}

// ObstacleID identifies an obstacle within a generation's track.
// IDs are never reused while the track lives; NoObstacle is the zero value.
type ObstacleID uint64

// NoObstacle means no obstacle has been cleared yet.
const NoObstacle ObstacleID = 0

// Player bundles identity and scoring state.
type Player struct {
	ID          uint32     // Agent identity; keys the genome in the evolution engine
	Score       int        // Obstacles cleared
	LastCleared ObstacleID // Dedups scoring while the agent stays past an obstacle
	Alive       bool
	Primary     bool // Receives the manual force-jump signal
}
