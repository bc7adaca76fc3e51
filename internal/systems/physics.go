package systems

import (
	"github.com/barhaim/arkgo/internal/components"
	"github.com/barhaim/arkgo/internal/ecs"
)

// Physics applies a constant gravity vector to every non-static Physics
// body and clears expired status effects off Health. Broadphase collision
// detection is left to a host game, not the engine core.
type Physics struct {
	Base
	Gravity components.Vector2
}

// NewPhysics returns a Physics system with zero gravity.
func NewPhysics() *Physics {
	return &Physics{}
}

func (p *Physics) Update(r *ecs.Registry, dt float64) {
	ecs.View1[components.Physics](r, func(_ ecs.Entity, body *components.Physics) {
		if body.Static {
			return
		}
		// Acceleration is rebuilt from scratch each tick, starting at
		// gravity; systems running after this one stack their forces on
		// top before Movement integrates. Accumulating into last tick's
		// value would compound gravity quadratically.
		body.Acceleration.X = p.Gravity.X
		body.Acceleration.Y = p.Gravity.Y
		if body.Damping > 0 {
			damp := 1 - body.Damping*dt
			if damp < 0 {
				damp = 0
			}
			body.Velocity.X *= damp
			body.Velocity.Y *= damp
		}
	})

	ecs.View1[components.Health](r, func(_ ecs.Entity, h *components.Health) {
		tickHealth(h, dt)
	})
}

func tickHealth(h *components.Health, dt float64) {
	if h.RegenPerSec != 0 && h.Current < h.Max {
		h.Current += h.RegenPerSec * dt
		if h.Current > h.Max {
			h.Current = h.Max
		}
	}
	live := h.Effects[:0]
	for _, eff := range h.Effects {
		remaining := eff.Duration.Seconds() - dt
		if remaining <= 0 {
			continue
		}
		eff.Duration = components.DurationFromSeconds(remaining)
		live = append(live, eff)
	}
	h.Effects = live
}
