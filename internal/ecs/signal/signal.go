// Package signal implements a typed multicast event: an ordered list of
// callbacks, a Connection token that detaches one callback, and a
// ScopedConnection convenience wrapper. Publish is reentrancy-safe:
// disconnection requested while a publish is in flight is deferred until
// the publish completes, so the callback list is never mutated
// mid-iteration.
package signal

import "sync"

// Connection is the opaque token returned by Connect. Calling Disconnect
// more than once is a no-op.
type Connection struct {
	id      uint64
	release func(uint64)
}

// Disconnect removes the associated callback from its Sink.
func (c *Connection) Disconnect() {
	if c.release == nil {
		return
	}
	c.release(c.id)
	c.release = nil
}

// ScopedConnection wraps a Connection for RAII-style use. Go has no
// destructors, so callers must explicitly Release it (typically via
// defer) at scope exit; there is no automatic release on garbage
// collection.
type ScopedConnection struct {
	conn Connection
}

// NewScopedConnection wraps conn for deferred release.
func NewScopedConnection(conn Connection) *ScopedConnection {
	return &ScopedConnection{conn: conn}
}

// Release disconnects the wrapped connection.
func (s *ScopedConnection) Release() {
	s.conn.Disconnect()
}

// Handler is a callback accepted by a Sink[T].
type Handler[T any] func(T)

// Sink is an ordered multicast point for callbacks taking one argument of
// type T. Registry signals bundle their (registry, entity, ...) payload
// into a small struct T, since Go generics have no variadic type
// parameters.
type Sink[T any] struct {
	mu       sync.Mutex
	order    []uint64
	handlers map[uint64]Handler[T]
	removed  map[uint64]bool
	nextID   uint64
	depth    int
}

// NewSink creates an empty Sink.
func NewSink[T any]() *Sink[T] {
	return &Sink[T]{handlers: make(map[uint64]Handler[T])}
}

// Connect registers f and returns a Connection that detaches it.
func (s *Sink[T]) Connect(f Handler[T]) Connection {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.handlers[id] = f
	s.order = append(s.order, id)
	s.mu.Unlock()

	return Connection{id: id, release: s.disconnect}
}

func (s *Sink[T]) disconnect(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.depth > 0 {
		if s.removed == nil {
			s.removed = make(map[uint64]bool)
		}
		s.removed[id] = true
		return
	}
	s.removeNow(id)
}

// removeNow assumes the caller holds mu and depth == 0.
func (s *Sink[T]) removeNow(id uint64) {
	delete(s.handlers, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Publish invokes every connected callback, in registration order, with
// arg. Callbacks connected during the publish are not observed by that same
// publish. A callback disconnected during the publish (including one
// disconnecting itself) is not invoked for the rest of it, and is removed
// from the list once the outermost publish returns.
func (s *Sink[T]) Publish(arg T) {
	s.mu.Lock()
	s.depth++
	snapshot := make([]uint64, len(s.order))
	copy(snapshot, s.order)
	s.mu.Unlock()

	for _, id := range snapshot {
		s.mu.Lock()
		if s.removed != nil && s.removed[id] {
			s.mu.Unlock()
			continue
		}
		f, ok := s.handlers[id]
		s.mu.Unlock()
		if ok {
			f(arg)
		}
	}

	s.mu.Lock()
	s.depth--
	if s.depth == 0 && s.removed != nil {
		for id := range s.removed {
			s.removeNow(id)
		}
		s.removed = nil
	}
	s.mu.Unlock()
}

// Len returns the number of currently connected callbacks (removals
// deferred by an in-flight publish are counted until that publish returns).
func (s *Sink[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}
