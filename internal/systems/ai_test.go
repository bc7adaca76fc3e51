package systems_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barhaim/arkgo/internal/components"
	"github.com/barhaim/arkgo/internal/ecs"
	"github.com/barhaim/arkgo/internal/systems"
)

func TestAI_IdleWithNoTarget(t *testing.T) {
	r := newRegistry()
	e := r.Create()
	ecs.Add(r, e, components.NewTransform())
	ai := ecs.Add(r, e, components.NewAIController())
	ai.State = components.AIStateChase

	systems.NewAI().Update(r, 0.016)
	assert.Equal(t, components.AIStateIdle, ecs.Get[components.AIController](r, e).State)
}

func TestAI_ChasesTargetInSightRange(t *testing.T) {
	r := newRegistry()

	target := r.Create()
	ecs.Add(r, target, components.Transform{Position: components.Vector2{X: 100, Y: 0}, Scale: components.Vector2{X: 1, Y: 1}})

	e := r.Create()
	ecs.Add(r, e, components.Transform{Scale: components.Vector2{X: 1, Y: 1}})
	ecs.Add(r, e, components.Physics{Mass: 1})
	ai := ecs.Add(r, e, components.NewAIController())
	ai.Target = target.ID()
	ai.SightRange = 200

	systems.NewAI().Update(r, 0.016)

	got := ecs.Get[components.AIController](r, e)
	assert.Equal(t, components.AIStateChase, got.State)

	phys := ecs.Get[components.Physics](r, e)
	require.Greater(t, phys.Velocity.X, 0.0, "AI should steer toward a target to its right")
	assert.InDelta(t, 0, phys.Velocity.Y, 1e-9)
}

func TestAI_TargetOutOfSightRangeStaysIdle(t *testing.T) {
	r := newRegistry()

	target := r.Create()
	ecs.Add(r, target, components.Transform{Position: components.Vector2{X: 1000, Y: 0}})

	e := r.Create()
	ecs.Add(r, e, components.NewTransform())
	ai := ecs.Add(r, e, components.NewAIController())
	ai.Target = target.ID()
	ai.SightRange = 50

	systems.NewAI().Update(r, 0.016)
	assert.Equal(t, components.AIStateIdle, ecs.Get[components.AIController](r, e).State)
}

func TestAI_StaleTargetIDDegradesToNoTarget(t *testing.T) {
	r := newRegistry()

	target := r.Create()
	ecs.Add(r, target, components.NewTransform())
	staleID := target.ID()

	// Create the chaser before destroying the target, so the chaser does not
	// take over the freed id itself.
	e := r.Create()
	r.Destroy(target)
	ecs.Add(r, e, components.NewTransform())
	ai := ecs.Add(r, e, components.NewAIController())
	ai.Target = staleID
	ai.SightRange = 1000

	assert.NotPanics(t, func() { systems.NewAI().Update(r, 0.016) })
	assert.Equal(t, components.AIStateIdle, ecs.Get[components.AIController](r, e).State)
}
