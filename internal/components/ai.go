package components

import "github.com/barhaim/arkgo/internal/ecs"

// AIController drives one entity's behavior state machine. Target is an
// entity id rather than an Entity handle so the component stays plain
// data: a system resolves it against its own Registry and treats a
// stale id as "no target" like any other weak reference.
type AIController struct {
	State     AIState      `json:"state"`
	Behavior  AIBehavior   `json:"behavior"`
	Target    ecs.EntityID `json:"target"`
	SightRange float64     `json:"sight_range"`
	Home      Vector2      `json:"home"`
}

// NewAIController returns an idle, neutral AIController with no target.
func NewAIController() AIController {
	return AIController{Target: ecs.ArkInvalidID}
}
