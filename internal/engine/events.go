package engine

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EventKind tags which variant of Event is populated, standing in for the
// host event union the core treats as opaque: close, resize, key,
// mouse-button and mouse-move.
type EventKind int

const (
	EventClose EventKind = iota
	EventResize
	EventKey
	EventMouseButton
	EventMouseMove
)

// Event is the tagged union ebiten's poll-free, immediate-mode input model
// is adapted into, so state layers and systems see the same discrete event
// stream a poll_event()-style host would produce.
type Event struct {
	Kind EventKind

	Width, Height int // EventResize

	Key     ebiten.Key // EventKey
	Pressed bool       // EventKey, EventMouseButton

	Button ebiten.MouseButton // EventMouseButton
	X, Y   int                // EventMouseButton, EventMouseMove
}

// HostEvents adapts ebiten's per-frame input snapshot into a discrete
// event stream by diffing against the previous frame: just-pressed and
// just-released keys and mouse buttons become key/mouse-button events,
// cursor motion becomes mouse-move, and each Layout call becomes a
// resize (sizes are not compared with the previous one). ebiten exposes no pollable window-close event of its own
// (closing the OS window simply stops RunGame), so Close is synthesized
// on demand via RequestClose, for host code (a quit system, a menu
// button) that wants to end the loop the same way any other close
// request would.
type HostEvents struct {
	pendingResize  *Event
	closeRequested bool

	haveCursor  bool
	prevCursorX int
	prevCursorY int
}

// NewHostEvents creates an adapter with no pending state.
func NewHostEvents() *HostEvents {
	return &HostEvents{}
}

// NoteLayout records a Layout callback's reported size, queuing a Resize
// event for the next Poll on every call, whether or not the size changed;
// if several calls happen before a Poll, only the latest size is kept.
func (h *HostEvents) NoteLayout(width, height int) {
	h.pendingResize = &Event{Kind: EventResize, Width: width, Height: height}
}

// RequestClose arranges for the next Poll to include a Close event.
func (h *HostEvents) RequestClose() { h.closeRequested = true }

// CloseRequested reports whether RequestClose has been called and not yet
// drained by Poll.
func (h *HostEvents) CloseRequested() bool { return h.closeRequested }

var pollButtons = [...]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

// Poll returns every event that occurred since the last call, in a fixed
// order: close, resize, key presses/releases, mouse-button
// presses/releases, then mouse-move.
func (h *HostEvents) Poll() []Event {
	var evs []Event

	if h.closeRequested {
		evs = append(evs, Event{Kind: EventClose})
		h.closeRequested = false
	}

	if h.pendingResize != nil {
		evs = append(evs, *h.pendingResize)
		h.pendingResize = nil
	}

	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		evs = append(evs, Event{Kind: EventKey, Key: k, Pressed: true})
	}
	for _, k := range inpututil.AppendJustReleasedKeys(nil) {
		evs = append(evs, Event{Kind: EventKey, Key: k, Pressed: false})
	}

	x, y := ebiten.CursorPosition()
	for _, b := range pollButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			evs = append(evs, Event{Kind: EventMouseButton, Button: b, Pressed: true, X: x, Y: y})
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			evs = append(evs, Event{Kind: EventMouseButton, Button: b, Pressed: false, X: x, Y: y})
		}
	}

	if !h.haveCursor || x != h.prevCursorX || y != h.prevCursorY {
		evs = append(evs, Event{Kind: EventMouseMove, X: x, Y: y})
		h.prevCursorX, h.prevCursorY = x, y
		h.haveCursor = true
	}

	return evs
}
