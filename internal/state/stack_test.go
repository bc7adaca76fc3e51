package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barhaim/arkgo/internal/ecs/message"
	"github.com/barhaim/arkgo/internal/state"
)

// recordingLayer is a minimal state.Layer that records how many times each
// hook fires, for asserting which layers a dispatch pass reaches.
type recordingLayer struct {
	name    string
	updates int
	renders int
}

func (l *recordingLayer) Init() error                        { return nil }
func (l *recordingLayer) HandleEvent(ev interface{})          {}
func (l *recordingLayer) HandleMessage(m message.Message)     {}
func (l *recordingLayer) Update(dt float64)                   { l.updates++ }
func (l *recordingLayer) PreRender()                          {}
func (l *recordingLayer) Render()                             { l.renders++ }
func (l *recordingLayer) PostRender()                         {}

func TestStack_PushIsDeferredUntilApply(t *testing.T) {
	s := state.NewStack()
	l := &recordingLayer{name: "l1"}
	s.Push(l)

	s.Update(1)
	assert.Equal(t, 0, l.updates, "a pushed layer must not dispatch before ApplyPending")

	s.ApplyPending()
	s.Update(1)
	assert.Equal(t, 1, l.updates)
}

func TestStack_PushBlockingHidesLayersBeneath(t *testing.T) {
	s := state.NewStack()
	l1 := &recordingLayer{name: "l1"}
	l2 := &recordingLayer{name: "l2"}

	s.Push(l1)
	s.ApplyPending()
	s.Update(1)
	assert.Equal(t, 1, l1.updates)

	s.PushBlocking(l2)
	s.ApplyPending()

	s.Update(1)
	assert.Equal(t, 1, l1.updates, "l1 must not update while l2 blocks beneath it")
	assert.Equal(t, 1, l2.updates)

	s.Pop()
	s.ApplyPending()

	s.Update(1)
	assert.Equal(t, 2, l1.updates, "popping the blocking layer restores l1's dispatch")
}

func TestStack_OverlayDispatchesAndRendersAlongsideLayerBeneath(t *testing.T) {
	s := state.NewStack()
	l1 := &recordingLayer{name: "l1"}
	overlay := &recordingLayer{name: "overlay"}

	s.Push(l1)
	s.PushOverlay(overlay)
	s.ApplyPending()

	s.Update(1)
	assert.Equal(t, 1, l1.updates)
	assert.Equal(t, 1, overlay.updates)

	s.Render()
	assert.Equal(t, 1, l1.renders)
	assert.Equal(t, 1, overlay.renders)
}

func TestStack_PopOverlayLeavesNonOverlayLayersIntact(t *testing.T) {
	s := state.NewStack()
	l1 := &recordingLayer{name: "l1"}
	overlay := &recordingLayer{name: "overlay"}

	s.Push(l1)
	s.PushOverlay(overlay)
	s.ApplyPending()

	s.PopOverlay()
	s.ApplyPending()

	s.Update(1)
	assert.Equal(t, 1, l1.updates)
	assert.Equal(t, 0, overlay.updates, "a popped overlay must no longer be dispatched")
	assert.Equal(t, 1, s.Len())
}

func TestStack_ClearEmptiesTheStack(t *testing.T) {
	s := state.NewStack()
	s.Push(&recordingLayer{})
	s.PushOverlay(&recordingLayer{})
	s.ApplyPending()
	assert.Equal(t, 2, s.Len())

	s.Clear()
	s.ApplyPending()
	assert.Equal(t, 0, s.Len())
}
