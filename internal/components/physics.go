package components

// Physics carries the linear motion state a movement/physics system
// integrates against Transform each tick: velocity, acceleration,
// damping and collision bounds.
type Physics struct {
	Velocity     Vector2 `json:"velocity"`
	Acceleration Vector2 `json:"acceleration"`
	Damping      float64 `json:"damping"`
	Mass         float64 `json:"mass"`
	Bounds       Rect    `json:"bounds"`
	Static       bool    `json:"static"`
}

// NewPhysics returns a Physics component with unit mass and no damping.
func NewPhysics() Physics {
	return Physics{Mass: 1}
}
