package systems

import (
	"math"

	"github.com/barhaim/arkgo/internal/components"
	"github.com/barhaim/arkgo/internal/ecs"
)

// AI drives each AIController's behavior state machine: an entity with no
// live target, or one out of SightRange, switches to idle and gets no
// steering (its Physics velocity is left as it was); an entity that spots
// its target within SightRange switches to chasing and steers its Physics
// velocity toward it. Patrol waypoints and attack resolution are gameplay concerns left
// to a host system, not this illustrative sample.
type AI struct {
	Base
	Speed float64 // units/sec applied while chasing; <= 0 uses 100
}

// NewAI returns an AI system with the default chase speed.
func NewAI() *AI {
	return &AI{Speed: 100}
}

func (a *AI) Update(r *ecs.Registry, dt float64) {
	speed := a.Speed
	if speed <= 0 {
		speed = 100
	}

	ecs.View2[components.Transform, components.AIController](r, func(e ecs.Entity, t *components.Transform, ai *components.AIController) {
		targetTransform, hasTarget := resolveTarget(r, ai.Target)
		if !hasTarget {
			ai.State = components.AIStateIdle
			return
		}

		dx := targetTransform.Position.X - t.Position.X
		dy := targetTransform.Position.Y - t.Position.Y
		dist := math.Hypot(dx, dy)

		if dist > ai.SightRange {
			ai.State = components.AIStateIdle
			return
		}

		ai.State = components.AIStateChase
		if dist == 0 {
			return
		}

		if phys, ok := ecs.TryGet[components.Physics](r, e); ok && !phys.Static {
			phys.Velocity.X = dx / dist * speed
			phys.Velocity.Y = dy / dist * speed
		}
	})
}

// resolveTarget looks up id's Transform in r, treating a stale or absent
// id as "no target" rather than an error. Targets are ordinary weak
// entity ids, same as any other cross-entity reference.
func resolveTarget(r *ecs.Registry, id ecs.EntityID) (components.Transform, bool) {
	if id == ecs.ArkInvalidID {
		return components.Transform{}, false
	}
	e := r.EntityFor(id)
	if !e.Valid() {
		return components.Transform{}, false
	}
	t, ok := ecs.TryGet[components.Transform](r, e)
	if !ok {
		return components.Transform{}, false
	}
	return *t, true
}
