package systems_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barhaim/arkgo/internal/ecs"
	"github.com/barhaim/arkgo/internal/ecs/meta"
	"github.com/barhaim/arkgo/internal/ecs/message"
	"github.com/barhaim/arkgo/internal/systems"
)

// recordingSystem tracks invocation order across a shared log slice, so
// tests can assert registration order is preserved through dispatch.
type recordingSystem struct {
	systems.Base
	name string
	log  *[]string
}

func (s *recordingSystem) Update(r *ecs.Registry, dt float64) { *s.log = append(*s.log, s.name) }

// renderingSystem additionally implements systems.Renderer.
type renderingSystem struct {
	recordingSystem
}

func (s *renderingSystem) PreRender(r *ecs.Registry)  { *s.log = append(*s.log, s.name+":pre") }
func (s *renderingSystem) Render(r *ecs.Registry)     { *s.log = append(*s.log, s.name+":render") }
func (s *renderingSystem) PostRender(r *ecs.Registry) { *s.log = append(*s.log, s.name+":post") }

func newRegistry() *ecs.Registry { return ecs.NewRegistry(meta.NewRegistry()) }

func TestManager_UpdateRunsInRegistrationOrder(t *testing.T) {
	m := systems.NewManager()
	r := newRegistry()
	var log []string

	require.NoError(t, m.Register("a", &recordingSystem{name: "a", log: &log}, r))
	require.NoError(t, m.Register("b", &recordingSystem{name: "b", log: &log}, r))

	m.Update(r, 0.016)
	assert.Equal(t, []string{"a", "b"}, log)
}

func TestManager_SetActiveRemovesFromDispatch(t *testing.T) {
	m := systems.NewManager()
	r := newRegistry()
	var log []string

	require.NoError(t, m.Register("a", &recordingSystem{name: "a", log: &log}, r))
	m.SetActive("a", false)

	m.Update(r, 0.016)
	assert.Empty(t, log)
	assert.False(t, m.IsActive("a"))

	m.SetActive("a", true)
	m.Update(r, 0.016)
	assert.Equal(t, []string{"a"}, log)
}

func TestManager_SetActiveNoopWhenAlreadyMatching(t *testing.T) {
	m := systems.NewManager()
	r := newRegistry()
	var log []string
	require.NoError(t, m.Register("a", &recordingSystem{name: "a", log: &log}, r))

	m.SetActive("a", true) // already active: no-op
	m.Update(r, 0.016)
	assert.Equal(t, []string{"a"}, log)
}

func TestManager_RendererPassesWalkRendererListOnly(t *testing.T) {
	m := systems.NewManager()
	r := newRegistry()
	var log []string

	plain := &recordingSystem{name: "plain", log: &log}
	renderer := &renderingSystem{recordingSystem{name: "renderer", log: &log}}

	require.NoError(t, m.Register("plain", plain, r))
	require.NoError(t, m.Register("renderer", renderer, r))

	m.PreRender(r)
	m.Render(r)
	m.PostRender(r)

	assert.Equal(t, []string{"renderer:pre", "renderer:render", "renderer:post"}, log)
}

func TestManager_DuplicateRegistrationIgnored(t *testing.T) {
	m := systems.NewManager()
	r := newRegistry()
	var log []string

	require.NoError(t, m.Register("a", &recordingSystem{name: "a", log: &log}, r))
	require.NoError(t, m.Register("a", &recordingSystem{name: "dup", log: &log}, r))

	m.Update(r, 0.016)
	assert.Equal(t, []string{"a"}, log, "second registration under the same name must not take effect")
}

func TestManager_DispatchEventAndMessage(t *testing.T) {
	m := systems.NewManager()
	r := newRegistry()

	var events, messages int
	s := &eventSystem{onEvent: func() { events++ }, onMessage: func() { messages++ }}
	require.NoError(t, m.Register("s", s, r))

	m.DispatchEvent(r, "click")
	m.DispatchMessage(r, message.Message{})

	assert.Equal(t, 1, events)
	assert.Equal(t, 1, messages)
}

type eventSystem struct {
	systems.Base
	onEvent   func()
	onMessage func()
}

func (s *eventSystem) HandleEvent(r *ecs.Registry, ev interface{})      { s.onEvent() }
func (s *eventSystem) HandleMessage(r *ecs.Registry, m message.Message) { s.onMessage() }
