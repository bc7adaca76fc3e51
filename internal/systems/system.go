// Package systems implements the ordered system registry: systems run
// in insertion order once per frame, with separate event, message,
// update and render passes.
package systems

import (
	"github.com/barhaim/arkgo/internal/ecs"
	"github.com/barhaim/arkgo/internal/ecs/message"
)

// System is the minimal contract every registered system satisfies:
// per-frame event, message and update hooks against one registry.
type System interface {
	Init(r *ecs.Registry) error
	HandleEvent(r *ecs.Registry, ev interface{})
	HandleMessage(r *ecs.Registry, m message.Message)
	Update(r *ecs.Registry, dt float64)
}

// Renderer is the optional capability a System may additionally implement.
// A system implementing Renderer is appended to the renderer pass list in
// addition to the active list.
type Renderer interface {
	PreRender(r *ecs.Registry)
	Render(r *ecs.Registry)
	PostRender(r *ecs.Registry)
}

// Base provides no-op implementations of every System hook so concrete
// systems only need to override what they use, matching the BaseSystem
// convenience embedding in core/systems/base_system.go.
type Base struct{}

func (Base) Init(*ecs.Registry) error                             { return nil }
func (Base) HandleEvent(*ecs.Registry, interface{})                {}
func (Base) HandleMessage(*ecs.Registry, message.Message)          {}
func (Base) Update(*ecs.Registry, float64)                         {}
