package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barhaim/arkgo/internal/ecs"
)

func TestView1(t *testing.T) {
	r := newRegistry()
	e1 := r.Create()
	ecs.Add(r, e1, Position{X: 1})
	e2 := r.Create()
	ecs.Add(r, e2, Velocity{X: 2})

	var seen []ecs.EntityID
	ecs.View1[Position](r, func(e ecs.Entity, p *Position) {
		seen = append(seen, e.ID())
	})

	assert.Equal(t, []ecs.EntityID{e1.ID()}, seen)
}

func TestView2(t *testing.T) {
	r := newRegistry()
	both := r.Create()
	ecs.Add(r, both, Position{X: 1})
	ecs.Add(r, both, Velocity{X: 2})

	onlyPos := r.Create()
	ecs.Add(r, onlyPos, Position{X: 3})

	var matched int
	ecs.View2[Position, Velocity](r, func(e ecs.Entity, p *Position, v *Velocity) {
		matched++
		assert.Equal(t, both.ID(), e.ID())
	})
	assert.Equal(t, 1, matched)
}

func TestView3(t *testing.T) {
	r := newRegistry()
	e := r.Create()
	ecs.Add(r, e, Position{})
	ecs.Add(r, e, Velocity{})

	type Tag struct{ Name string }
	ecs.Add(r, e, Tag{Name: "x"})

	var matched int
	ecs.View3[Position, Velocity, Tag](r, func(e ecs.Entity, p *Position, v *Velocity, tg *Tag) {
		matched++
	})
	assert.Equal(t, 1, matched)
}

func TestView2_ObservesComponentAddedAfterFirstPass(t *testing.T) {
	r := newRegistry()
	e1 := r.Create()
	ecs.Add(r, e1, Position{})
	e2 := r.Create()
	ecs.Add(r, e2, Position{})
	ecs.Add(r, e2, Velocity{})
	e3 := r.Create()
	ecs.Add(r, e3, Velocity{})

	collect := func() []ecs.EntityID {
		var ids []ecs.EntityID
		ecs.View2[Position, Velocity](r, func(e ecs.Entity, _ *Position, _ *Velocity) {
			ids = append(ids, e.ID())
		})
		return ids
	}

	assert.Equal(t, []ecs.EntityID{e2.ID()}, collect())

	ecs.Add(r, e1, Velocity{})
	assert.Equal(t, []ecs.EntityID{e1.ID(), e2.ID()}, collect(), "matches are yielded in ascending id order")
}

func TestView_BackToBackIterationsAreIdentical(t *testing.T) {
	r := newRegistry()
	for i := 0; i < 5; i++ {
		ecs.Add(r, r.Create(), Position{X: float64(i)})
	}

	collect := func() []ecs.EntityID {
		var ids []ecs.EntityID
		ecs.View1[Position](r, func(e ecs.Entity, _ *Position) { ids = append(ids, e.ID()) })
		return ids
	}

	first := collect()
	assert.Equal(t, first, collect())
}

func TestView_LiveProjection(t *testing.T) {
	r := newRegistry()
	e1 := r.Create()
	ecs.Add(r, e1, Position{})
	e2 := r.Create()
	ecs.Add(r, e2, Position{})

	count := 0
	ecs.View1[Position](r, func(ecs.Entity, *Position) { count++ })
	assert.Equal(t, 2, count)

	r.Destroy(e1)
	count = 0
	ecs.View1[Position](r, func(ecs.Entity, *Position) { count++ })
	assert.Equal(t, 1, count, "a destroyed entity must drop out of the next Each call")
}
