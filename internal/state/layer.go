// Package state implements the layered application state machine: a stack
// of layers dispatched from a movable "active begin" cursor, with deferred
// push/pop so the stack only changes shape between frames.
package state

import (
	"github.com/barhaim/arkgo/internal/ecs"
	"github.com/barhaim/arkgo/internal/ecs/message"
	"github.com/barhaim/arkgo/internal/ecs/meta"
	"github.com/barhaim/arkgo/internal/systems"
)

// Layer is one element of the state stack. A layer owns its own registry
// and system manager; the stack itself never touches entities directly,
// only routes frame events to whichever layers are currently active.
type Layer interface {
	Init() error
	HandleEvent(ev interface{})
	HandleMessage(m message.Message)
	Update(dt float64)
	PreRender()
	Render()
	PostRender()
}

// Base is embeddable by concrete layers: it owns a Registry and a system
// Manager and routes every Layer hook straight to the manager, so a layer
// only needs to register its systems in Init.
type Base struct {
	Registry *ecs.Registry
	Systems  *systems.Manager
}

// NewBase creates a Base with a fresh Registry sharing metaReg for
// component type ids, and an empty system Manager.
func NewBase(metaReg *meta.Registry) *Base {
	return &Base{
		Registry: ecs.NewRegistry(metaReg),
		Systems:  systems.NewManager(),
	}
}

func (b *Base) Init() error { return nil }

func (b *Base) HandleEvent(ev interface{}) { b.Systems.DispatchEvent(b.Registry, ev) }

func (b *Base) HandleMessage(m message.Message) { b.Systems.DispatchMessage(b.Registry, m) }

func (b *Base) Update(dt float64) { b.Systems.Update(b.Registry, dt) }

func (b *Base) PreRender() { b.Systems.PreRender(b.Registry) }

func (b *Base) Render() { b.Systems.Render(b.Registry) }

func (b *Base) PostRender() { b.Systems.PostRender(b.Registry) }
