package systems

import (
	"sync"

	"github.com/barhaim/arkgo/internal/corelog"
	"github.com/barhaim/arkgo/internal/ecs"
	"github.com/barhaim/arkgo/internal/ecs/message"
)

// entry pairs a registered system with whatever label it was registered
// under, so setActive can find it again.
type entry struct {
	name   string
	system System
	active bool
}

// Manager holds an ordered list of owned systems plus the derived active
// and renderer lists. Registration order is part of the public contract:
// Update, event and message dispatch all walk systems in the order they
// were added.
type Manager struct {
	mu        sync.Mutex
	all       []*entry
	byName    map[string]*entry
	active    []*entry
	renderers []*entry
}

// NewManager creates an empty system manager.
func NewManager() *Manager {
	return &Manager{byName: make(map[string]*entry)}
}

// Register adds s under name, calling Init, enqueuing it active, and, if s
// also implements Renderer, appending it to the renderer pass list.
// Registering a name twice is a configuration error: it is logged and the
// second registration is ignored.
func (m *Manager) Register(name string, s System, r *ecs.Registry) error {
	m.mu.Lock()
	if _, exists := m.byName[name]; exists {
		m.mu.Unlock()
		corelog.Errorf(corelog.CategorySystem, "system %q already registered", name)
		return nil
	}
	e := &entry{name: name, system: s, active: true}
	m.byName[name] = e
	m.all = append(m.all, e)
	m.active = append(m.active, e)
	if _, ok := s.(Renderer); ok {
		m.renderers = append(m.renderers, e)
	}
	m.mu.Unlock()

	return s.Init(r)
}

// SetActive toggles name's presence in the active (and, if applicable,
// renderer) lists. Setting an already-matching state is a no-op.
func (m *Manager) SetActive(name string, flag bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.byName[name]
	if !ok {
		corelog.Warnf(corelog.CategorySystem, "setActive on unknown system %q", name)
		return
	}
	if e.active == flag {
		return
	}
	e.active = flag

	if flag {
		m.active = m.active[:0]
		for _, x := range m.all {
			if x.active {
				m.active = append(m.active, x)
			}
		}
	} else {
		m.active = removeEntry(m.active, e)
	}

	if _, isRenderer := e.system.(Renderer); isRenderer {
		if flag {
			m.renderers = m.renderers[:0]
			for _, x := range m.all {
				if _, ok := x.system.(Renderer); ok && x.active {
					m.renderers = append(m.renderers, x)
				}
			}
		} else {
			m.renderers = removeEntry(m.renderers, e)
		}
	}
}

func removeEntry(list []*entry, target *entry) []*entry {
	out := list[:0]
	for _, e := range list {
		if e != target {
			out = append(out, e)
		}
	}
	return out
}

// IsActive reports whether name is currently active.
func (m *Manager) IsActive(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byName[name]
	return ok && e.active
}

func (m *Manager) snapshotActive() []*entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entry, len(m.active))
	copy(out, m.active)
	return out
}

func (m *Manager) snapshotRenderers() []*entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entry, len(m.renderers))
	copy(out, m.renderers)
	return out
}

// DispatchEvent calls HandleEvent(ev) on every active system, in
// registration order.
func (m *Manager) DispatchEvent(r *ecs.Registry, ev interface{}) {
	for _, e := range m.snapshotActive() {
		e.system.HandleEvent(r, ev)
	}
}

// DispatchMessage calls HandleMessage(msg) on every active system, in
// registration order.
func (m *Manager) DispatchMessage(r *ecs.Registry, msg message.Message) {
	for _, e := range m.snapshotActive() {
		e.system.HandleMessage(r, msg)
	}
}

// Update calls Update(dt) on every active system, in registration order.
func (m *Manager) Update(r *ecs.Registry, dt float64) {
	for _, e := range m.snapshotActive() {
		e.system.Update(r, dt)
	}
}

// PreRender, Render and PostRender each walk the renderer list, in
// registration order, calling the matching Renderer hook.
func (m *Manager) PreRender(r *ecs.Registry) {
	for _, e := range m.snapshotRenderers() {
		e.system.(Renderer).PreRender(r)
	}
}

func (m *Manager) Render(r *ecs.Registry) {
	for _, e := range m.snapshotRenderers() {
		e.system.(Renderer).Render(r)
	}
}

func (m *Manager) PostRender(r *ecs.Registry) {
	for _, e := range m.snapshotRenderers() {
		e.system.(Renderer).PostRender(r)
	}
}
