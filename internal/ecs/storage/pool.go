// Package storage implements a per-type component pool: a process-lifetime
// arena, one per component type, that hands out stable addresses for live
// components and never relocates a block still in use. Freed slots are
// returned to a free list and reused by later allocations of the same
// type. The deallocation contract is exactly one thing: memory goes back
// to the pool that allocated it. Free only ever pushes an index onto the
// free list, it never probes or erases a second time.
package storage

import "sync"

// Pool is a type-erased arena: every live slot holds whatever pointer the
// caller boxed (normally a *T for the pool's component type). A single
// free-list arena gives address stability without a separate dense/sparse
// index.
type Pool struct {
	mu    sync.Mutex
	slots []interface{}
	free  []int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Alloc reserves a slot and fills it with factory()'s result, returning the
// slot index and the stored value. A freed slot is reused before the arena
// grows, but the slot's index is never reassigned to a different live
// value while that value is still alive.
func (p *Pool) Alloc(factory func() interface{}) (int, interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := factory()
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		p.slots[idx] = v
		return idx, v
	}
	idx := len(p.slots)
	p.slots = append(p.slots, v)
	return idx, v
}

// Free returns a slot to the free list. It does not erase the slot a
// second time or probe any secondary list; the single free-list push is
// the entire deallocation contract.
func (p *Pool) Free(idx int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.slots[idx] = nil
	p.free = append(p.free, idx)
}

// Get returns the value stored at idx.
func (p *Pool) Get(idx int) interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slots[idx]
}

// Len returns the number of slots ever allocated (including freed ones
// still reserved in the arena).
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.slots)
}

// LiveCount returns the number of slots currently occupied.
func (p *Pool) LiveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.slots) - len(p.free)
}
