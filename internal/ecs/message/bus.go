// Package message implements a deferred, typed, double-buffered message
// bus: two buffers, "in" and "out"; Post appends to "in"; Drain hands
// every record in "out" to a callback, then swaps the buffers. This
// yields a one-frame end-to-end delivery latency: a consumer never
// observes, in the same Drain call, a message posted during that same
// call.
package message

import (
	"reflect"
	"sync"
)

// TypeID identifies a message's payload type, assigned on first Post of
// that type, scoped to one Bus.
type TypeID int

// Message is one posted record: a type id plus its payload. The garbage
// collector reclaims the payload once both buffers have released it, so
// there is no destructor thunk list to maintain alongside the buffers.
type Message struct {
	Type    TypeID
	Payload interface{}
}

// Bus is a single-threaded, double-buffered message queue. Concurrent
// Post from multiple goroutines is out of scope.
type Bus struct {
	mu       sync.Mutex
	typeIDs  map[reflect.Type]TypeID
	nextType TypeID

	in  []Message
	out []Message
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{typeIDs: make(map[reflect.Type]TypeID)}
}

func (b *Bus) typeIDFor(rt reflect.Type) TypeID {
	if id, ok := b.typeIDs[rt]; ok {
		return id
	}
	id := b.nextType
	b.nextType++
	b.typeIDs[rt] = id
	return id
}

// postValue appends a message built from an arbitrary payload's reflect
// type, used by the generic Post helper.
func (b *Bus) postValue(rt reflect.Type, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.in = append(b.in, Message{Type: b.typeIDFor(rt), Payload: payload})
}

// Post appends a typed record to the "in" buffer. It is visible starting
// with the Drain call after the one currently in flight.
func Post[T any](b *Bus, payload T) {
	b.postValue(reflect.TypeOf(payload), payload)
}

// TypeOf returns the TypeID that would be assigned to T, registering it if
// this is the first mention. Useful for consumers that want to filter by
// type before type-asserting Message.Payload.
func TypeOf[T any](b *Bus) TypeID {
	var zero T
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.typeIDFor(reflect.TypeOf(zero))
}

// Drain hands every message in the "out" buffer to f, in post order, then
// swaps buffers: what was "in" (including anything posted during this very
// call) becomes the new "out", ready for the next Drain; "out" is reset to
// serve as the new "in". It returns the number of messages delivered.
func (b *Bus) Drain(f func(Message)) int {
	b.mu.Lock()
	toProcess := b.out
	b.mu.Unlock()

	for _, m := range toProcess {
		f(m)
	}

	b.mu.Lock()
	b.out = b.in
	b.in = toProcess[:0]
	b.mu.Unlock()

	return len(toProcess)
}

// Pending returns the number of messages posted so far this frame (not yet
// visible to Drain).
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.in)
}
