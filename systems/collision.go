package systems

import "github.com/pthm-cable/flap/components"

// AgentRect returns the agent's bounding box.
func AgentRect(pos components.Position, body components.Body) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: body.Size, H: body.Size}
}

// HasCleared reports whether the agent's leading edge reached the
// obstacle's leading edge.
func HasCleared(pos components.Position, body components.Body, o *Obstacle) bool {
	return pos.X+body.Size >= o.ScreenX
}

// UpdateScore credits the agent the first time it clears the obstacle.
// Returns true when the score changed.
func UpdateScore(pos components.Position, body components.Body, player *components.Player, o *Obstacle) bool {
	if !player.Alive || player.LastCleared == o.ID {
		return false
	}
	if !HasCleared(pos, body, o) {
		return false
	}
	player.LastCleared = o.ID
	player.Score++
	return true
}

// IsDead reports whether the agent hit the ground or the obstacle's pipes.
// Only the nearest obstacle is tested.
func IsDead(pos components.Position, body components.Body, o *Obstacle, playfieldH float64) bool {
	if pos.Y+body.Size > playfieldH {
		return true
	}

	overlapsColumn := pos.X+body.Size > o.ScreenX && pos.X < o.ScreenX+o.Width
	if !overlapsColumn {
		return false
	}
	return pos.Y < o.GapTop || pos.Y+body.Size > o.GapBottom()
}
