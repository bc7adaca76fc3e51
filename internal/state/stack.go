package state

import (
	"sync"

	"github.com/barhaim/arkgo/internal/corelog"
	"github.com/barhaim/arkgo/internal/ecs/message"
)

// noBlock marks a stack entry that didn't disable any layer beneath it.
const noBlock = -1

type entry struct {
	layer     Layer
	blockedBy int
}

// Stack is a vector of layers with two cursors: activeBegin (the first
// layer dispatched this frame) and activeEnd (one past the last
// non-overlay layer; overlays always live past it). Push/Pop/Clear enqueue
// onto a pending list and only take effect on the next ApplyPending call,
// so the stack's shape never changes mid-dispatch.
type Stack struct {
	mu          sync.Mutex
	layers      []entry
	activeBegin int
	activeEnd   int
	pending     []func()
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

func (s *Stack) enqueue(f func()) {
	s.mu.Lock()
	s.pending = append(s.pending, f)
	s.mu.Unlock()
}

// Push appends layer above the current non-overlay top. The layer's Init
// runs when the pending change is applied by ApplyPending, not at the Push
// call; a layer whose Init fails is logged and not inserted.
func (s *Stack) Push(layer Layer) {
	s.enqueue(func() {
		if err := layer.Init(); err != nil {
			corelog.Errorf(corelog.CategoryScene, "layer init failed: %v", err)
			return
		}
		s.layers = append(s.layers, entry{})
		copy(s.layers[s.activeEnd+1:], s.layers[s.activeEnd:])
		s.layers[s.activeEnd] = entry{layer: layer, blockedBy: noBlock}
		s.activeEnd++
	})
}

// PushBlocking appends layer like Push, but records the current
// activeBegin on the new entry and moves activeBegin onto the new layer
// itself, so every layer beneath becomes invisible to dispatch until this
// one pops.
func (s *Stack) PushBlocking(layer Layer) {
	s.enqueue(func() {
		if err := layer.Init(); err != nil {
			corelog.Errorf(corelog.CategoryScene, "layer init failed: %v", err)
			return
		}
		prevBegin := s.activeBegin
		s.layers = append(s.layers, entry{})
		copy(s.layers[s.activeEnd+1:], s.layers[s.activeEnd:])
		s.layers[s.activeEnd] = entry{layer: layer, blockedBy: prevBegin}
		s.activeEnd++
		s.activeBegin = s.activeEnd - 1
	})
}

// PushOverlay appends layer at the very top, past every non-overlay layer.
// Overlays are dispatched events/update/render but never block layers
// beneath them and are never displaced by Push/PushBlocking insertions.
func (s *Stack) PushOverlay(layer Layer) {
	s.enqueue(func() {
		if err := layer.Init(); err != nil {
			corelog.Errorf(corelog.CategoryScene, "layer init failed: %v", err)
			return
		}
		s.layers = append(s.layers, entry{layer: layer, blockedBy: noBlock})
	})
}

// Pop removes the topmost non-overlay layer. If it had blocked layers
// beneath it, activeBegin is restored to what it was before that push.
func (s *Stack) Pop() {
	s.enqueue(func() {
		if s.activeEnd == 0 {
			return
		}
		top := s.layers[s.activeEnd-1]
		if top.blockedBy != noBlock {
			s.activeBegin = top.blockedBy
		}
		s.layers = append(s.layers[:s.activeEnd-1], s.layers[s.activeEnd:]...)
		s.activeEnd--
	})
}

// PopOverlay removes the topmost overlay, if any.
func (s *Stack) PopOverlay() {
	s.enqueue(func() {
		if s.activeEnd < len(s.layers) {
			s.layers = s.layers[:len(s.layers)-1]
		}
	})
}

// Clear empties the stack entirely.
func (s *Stack) Clear() {
	s.enqueue(func() {
		s.layers = nil
		s.activeBegin = 0
		s.activeEnd = 0
	})
}

// ApplyPending runs every enqueued change in order, then clears the queue.
// The engine loop calls this once per tick, between draining the message
// bus and calling Update.
func (s *Stack) ApplyPending() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, f := range pending {
		f()
	}
}

// Len returns the total number of layers, overlays included.
func (s *Stack) Len() int { return len(s.layers) }

func (s *Stack) active() []Layer {
	out := make([]Layer, 0, len(s.layers)-s.activeBegin)
	for i := s.activeBegin; i < len(s.layers); i++ {
		out = append(out, s.layers[i].layer)
	}
	return out
}

// DispatchEvent hands ev to every active layer, from activeBegin to the
// top (overlays included). No layer short-circuits the others: a layer
// that wants to "consume" an event does so via its own private state, not
// by interrupting propagation.
func (s *Stack) DispatchEvent(ev interface{}) {
	for _, l := range s.active() {
		l.HandleEvent(ev)
	}
}

// DispatchMessage hands one drained bus message to every active layer.
func (s *Stack) DispatchMessage(m message.Message) {
	for _, l := range s.active() {
		l.HandleMessage(m)
	}
}

// Update calls Update(dt) on every active layer.
func (s *Stack) Update(dt float64) {
	for _, l := range s.active() {
		l.Update(dt)
	}
}

// PreRender, Render and PostRender each walk the active layers in order;
// overlays render last since they always sit at the top of the active
// range.
func (s *Stack) PreRender() {
	for _, l := range s.active() {
		l.PreRender()
	}
}

func (s *Stack) Render() {
	for _, l := range s.active() {
		l.Render()
	}
}

func (s *Stack) PostRender() {
	for _, l := range s.active() {
		l.PostRender()
	}
}
