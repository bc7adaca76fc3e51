package components

import "github.com/barhaim/arkgo/internal/ecs"

// Transform holds an entity's local position, rotation (radians) and
// scale. Parent/Children carry the entity hierarchy, storing entity ids
// rather than pointers so the component stays plain data safe to copy.
// Walking the hierarchy means re-resolving each id against a Registry,
// same as any other Entity handle.
type Transform struct {
	Position Vector2 `json:"position"`
	Rotation float64 `json:"rotation"`
	Scale    Vector2 `json:"scale"`

	Parent   ecs.EntityID   `json:"parent"`
	Children []ecs.EntityID `json:"children"`
}

// NewTransform returns a Transform at the origin with unit scale and no
// parent.
func NewTransform() Transform {
	return Transform{Scale: Vector2{X: 1, Y: 1}, Parent: ecs.ArkInvalidID}
}
