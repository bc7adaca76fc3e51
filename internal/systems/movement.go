package systems

import (
	"math"

	"github.com/barhaim/arkgo/internal/components"
	"github.com/barhaim/arkgo/internal/ecs"
)

// Movement integrates Physics into Transform each tick: acceleration
// into velocity, velocity into position, with an optional speed clamp.
type Movement struct {
	Base
	MaxSpeed float64 // <= 0 means unlimited
}

// NewMovement returns a Movement system with no speed limit.
func NewMovement() *Movement {
	return &Movement{MaxSpeed: -1}
}

func (m *Movement) Update(r *ecs.Registry, dt float64) {
	ecs.View2[components.Transform, components.Physics](r, func(_ ecs.Entity, t *components.Transform, p *components.Physics) {
		if p.Static {
			return
		}
		p.Velocity.X += p.Acceleration.X * dt
		p.Velocity.Y += p.Acceleration.Y * dt
		m.clampSpeed(&p.Velocity)
		t.Position.X += p.Velocity.X * dt
		t.Position.Y += p.Velocity.Y * dt
	})
}

func (m *Movement) clampSpeed(v *components.Vector2) {
	if m.MaxSpeed <= 0 {
		return
	}
	speed := v.X*v.X + v.Y*v.Y
	max := m.MaxSpeed * m.MaxSpeed
	if speed <= max || speed == 0 {
		return
	}
	scale := m.MaxSpeed / math.Sqrt(speed)
	v.X *= scale
	v.Y *= scale
}
