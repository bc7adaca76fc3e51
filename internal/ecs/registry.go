package ecs

import (
	"sync"

	"github.com/barhaim/arkgo/internal/corelog"
	"github.com/barhaim/arkgo/internal/ecs/meta"
	"github.com/barhaim/arkgo/internal/ecs/signal"
	"github.com/barhaim/arkgo/internal/ecs/storage"
)

// entityRecord is the per-entity bookkeeping row: its component mask and,
// for each set bit, the slot index into that type's pool. components[i] is
// meaningless whenever mask.Has(i) is false.
type entityRecord struct {
	mask       ComponentMask
	components [MaxComponentTypes]int
}

func freshRecord() entityRecord {
	rec := entityRecord{}
	for i := range rec.components {
		rec.components[i] = -1
	}
	return rec
}

// Registry owns every entity and component in one world: a recycled id
// space, one arena per component type, and the lifecycle signals other
// systems subscribe to. Concurrent mutation is out of scope; locking here
// is about safe iteration during single-threaded callback fan-out, not
// true parallel writers.
type Registry struct {
	mu sync.RWMutex

	meta *meta.Registry

	records  []entityRecord
	alive_   []bool
	freeList []EntityID

	pools [MaxComponentTypes]*storage.Pool

	sinks *sinkSet
}

// NewRegistry creates an empty world backed by metaReg for type metadata.
// Multiple registries may share one meta.Registry (component type ids are
// process-wide); each Registry still owns its own entities, pools and
// signals.
func NewRegistry(metaReg *meta.Registry) *Registry {
	return &Registry{
		meta:  metaReg,
		sinks: newSinkSet(),
	}
}

// Meta returns the metadata table backing this registry's component types.
func (r *Registry) Meta() *meta.Registry { return r.meta }

func (r *Registry) alive(id EntityID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || int(id) >= len(r.alive_) {
		return false
	}
	return r.alive_[id]
}

// Create allocates a new entity, reusing a recycled id when one is
// available (LIFO free-list reuse order), and fires on_create.
func (r *Registry) Create() Entity {
	r.mu.Lock()
	var id EntityID
	if n := len(r.freeList); n > 0 {
		id = r.freeList[n-1]
		r.freeList = r.freeList[:n-1]
		r.records[id] = freshRecord()
		r.alive_[id] = true
	} else {
		id = EntityID(len(r.records))
		r.records = append(r.records, freshRecord())
		r.alive_ = append(r.alive_, true)
	}
	r.mu.Unlock()

	e := Entity{id: id, reg: r}
	r.sinks.onCreate.Publish(e)
	return e
}

// EntityFor builds a handle for id against r without creating anything.
// The returned handle is only as good as id: if id is free or out of
// range, Valid() reports false and every accessor degrades to a miss,
// exactly as with any other weak reference that outlived its target.
// This is how a component field that stores a bare EntityID (an AI's
// Target, a Transform's Parent) turns back into something dereferenceable.
func (r *Registry) EntityFor(id EntityID) Entity {
	return Entity{id: id, reg: r}
}

// Count returns the number of currently live entities.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, a := range r.alive_ {
		if a {
			n++
		}
	}
	return n
}

// Destroy fires on_destroy, then removes every component the entity owns
// (firing the matching on_remove signals) before returning the id to the
// free list. Destroying an invalid entity is logged and otherwise
// ignored; stale handles degrade to no-ops rather than crashing.
func (r *Registry) Destroy(e Entity) {
	if e.reg != r || !e.Valid() {
		corelog.Warnf(corelog.CategoryEntityM, "destroy on invalid entity %d", e.id)
		return
	}

	r.sinks.onDestroy.Publish(e)

	rec := &r.records[e.id]
	for i := 0; i < MaxComponentTypes; i++ {
		if !rec.mask.Has(i) {
			continue
		}
		r.fireRemove(e, i)
		if r.pools[i] != nil {
			r.pools[i].Free(rec.components[i])
		}
		rec.components[i] = -1
	}
	rec.mask = 0

	r.mu.Lock()
	r.alive_[e.id] = false
	r.freeList = append(r.freeList, e.id)
	r.mu.Unlock()
}

func (r *Registry) fireAdd(e Entity, typeID int) {
	r.sinks.addSink(typeID).Publish(e)
	r.sinks.onAddGeneric.Publish(ComponentEvent{Entity: e, TypeID: typeID})
}

func (r *Registry) fireRemove(e Entity, typeID int) {
	r.sinks.removeSink(typeID).Publish(e)
	r.sinks.onRemoveGeneric.Publish(ComponentEvent{Entity: e, TypeID: typeID})
}

func (r *Registry) poolFor(typeID int) *storage.Pool {
	if r.pools[typeID] == nil {
		r.pools[typeID] = storage.NewPool()
	}
	return r.pools[typeID]
}

// OnCreate subscribes to entity creation.
func OnCreate(r *Registry, f func(Entity)) signal.Connection { return r.sinks.onCreate.Connect(f) }

// OnDestroy subscribes to entity destruction. Handlers observe the entity
// just before its components are torn down.
func OnDestroy(r *Registry, f func(Entity)) signal.Connection { return r.sinks.onDestroy.Connect(f) }

// OnAddAny subscribes to every component addition regardless of type.
func OnAddAny(r *Registry, f func(ComponentEvent)) signal.Connection {
	return r.sinks.onAddGeneric.Connect(f)
}

// OnRemoveAny subscribes to every component removal regardless of type.
func OnRemoveAny(r *Registry, f func(ComponentEvent)) signal.Connection {
	return r.sinks.onRemoveGeneric.Connect(f)
}

// OnAdd subscribes to additions of component type T. Typed handlers run
// before the untyped on_add_any handlers for the same event.
func OnAdd[T any](r *Registry, f func(Entity)) signal.Connection {
	id := meta.TypeID[T](r.meta)
	return r.sinks.addSink(id).Connect(f)
}

// OnRemove subscribes to removals of component type T, run before the
// untyped on_remove_any handlers.
func OnRemove[T any](r *Registry, f func(Entity)) signal.Connection {
	id := meta.TypeID[T](r.meta)
	return r.sinks.removeSink(id).Connect(f)
}

// OnClone subscribes to clone completion for component type T; f receives
// the new entity and the source it was copied from.
func OnClone[T any](r *Registry, f func(ClonePair)) signal.Connection {
	id := meta.TypeID[T](r.meta)
	return r.sinks.cloneSink(id).Connect(f)
}

// Add attaches a component of type T to e, initialized to value. Adding a
// type the entity already owns is idempotent: it returns the existing
// component untouched without re-invoking the constructor. Typed signals
// fire before the untyped on_add_any signal.
func Add[T any](r *Registry, e Entity, value T) *T {
	if !e.Valid() {
		corelog.Errorf(corelog.CategoryEntityM, "add %T on invalid entity %d", value, e.id)
		return nil
	}
	id := meta.TypeID[T](r.meta)
	rec := &r.records[e.id]
	if rec.mask.Has(id) {
		return existingPtr[T](r, rec, id)
	}

	pool := r.poolFor(id)
	v := value
	idx, ptr := pool.Alloc(func() interface{} { return &v })
	rec.components[id] = idx
	rec.mask = rec.mask.Set(id)

	r.fireAdd(e, id)
	return ptr.(*T)
}

func existingPtr[T any](r *Registry, rec *entityRecord, typeID int) *T {
	ptr := r.pools[typeID].Get(rec.components[typeID])
	return ptr.(*T)
}

// TryGet returns a pointer to e's component of type T and true, or
// (nil, false) if e is invalid or doesn't own that component. It never
// panics; the caller decides whether a miss matters.
func TryGet[T any](r *Registry, e Entity) (*T, bool) {
	if !e.Valid() {
		return nil, false
	}
	id := meta.TypeID[T](r.meta)
	rec := &r.records[e.id]
	if !rec.mask.Has(id) {
		return nil, false
	}
	return existingPtr[T](r, rec, id), true
}

// Get returns a pointer to e's component of type T. A missing component
// is a precondition violation and is fatal.
func Get[T any](r *Registry, e Entity) *T {
	ptr, ok := TryGet[T](r, e)
	if !ok {
		var zero T
		corelog.Fatal(corelog.CategoryEntityM, "entity %d has no component %T", e.id, zero)
	}
	return ptr
}

// Has reports whether e owns a component of type T.
func Has[T any](r *Registry, e Entity) bool {
	if !e.Valid() {
		return false
	}
	id := meta.TypeID[T](r.meta)
	return r.records[e.id].mask.Has(id)
}

// Remove detaches e's component of type T, firing the typed then untyped
// on_remove signals first. Removing a type the entity doesn't own is a
// no-op.
func Remove[T any](r *Registry, e Entity) {
	if !e.Valid() {
		return
	}
	id := meta.TypeID[T](r.meta)
	rec := &r.records[e.id]
	if !rec.mask.Has(id) {
		return
	}
	r.fireRemove(e, id)
	r.pools[id].Free(rec.components[id])
	rec.components[id] = -1
	rec.mask = rec.mask.Clear(id)
}

// HasMask reports whether e's component mask contains every bit set in
// mask.
func (r *Registry) HasMask(e Entity, mask ComponentMask) bool {
	if !e.Valid() {
		return false
	}
	return r.records[e.id].mask.Contains(mask)
}

// Mask returns e's current component mask, or 0 for an invalid entity.
func (r *Registry) Mask(e Entity) ComponentMask {
	if !e.Valid() {
		return 0
	}
	return r.records[e.id].mask
}

// AddUntyped attaches component type typeID to e using the metadata
// registry's ctor thunk, or by copying from source if source is a valid
// entity (source must itself own typeID). Used by clone and by
// serialization, where only a runtime type id is available. Fatal if
// typeID has no registered ctor/copy thunk as required.
func (r *Registry) AddUntyped(e Entity, typeID int, source Entity) interface{} {
	if !e.Valid() {
		corelog.Errorf(corelog.CategoryEntityM, "add-untyped type %d on invalid entity %d", typeID, e.id)
		return nil
	}
	info := r.meta.ByID(typeID)
	if info == nil {
		corelog.Fatal(corelog.CategoryEntityM, "add-untyped: unknown type id %d", typeID)
	}

	rec := &r.records[e.id]
	if rec.mask.Has(typeID) {
		return r.pools[typeID].Get(rec.components[typeID])
	}

	var boxed interface{}
	if source.Valid() && source.reg == r && r.records[source.id].mask.Has(typeID) {
		if info.Copy == nil {
			corelog.Fatal(corelog.CategoryEntityM, "type %s has no copy thunk", info.Name)
		}
		srcPtr := r.pools[typeID].Get(r.records[source.id].components[typeID])
		boxed = boxValue(info.Copy(derefToValue(srcPtr)))
	} else {
		if info.Ctor == nil {
			corelog.Fatal(corelog.CategoryEntityM, "type %s has no default ctor", info.Name)
		}
		boxed = boxValue(info.Ctor())
	}

	pool := r.poolFor(typeID)
	idx, _ := pool.Alloc(func() interface{} { return boxed })
	rec.components[typeID] = idx
	rec.mask = rec.mask.Set(typeID)
	r.fireAdd(e, typeID)
	return boxed
}

// GetUntyped returns e's component of type typeID and true, or (nil,
// false) on miss.
func (r *Registry) GetUntyped(e Entity, typeID int) (interface{}, bool) {
	if !e.Valid() {
		return nil, false
	}
	rec := &r.records[e.id]
	if !rec.mask.Has(typeID) {
		return nil, false
	}
	return r.pools[typeID].Get(rec.components[typeID]), true
}

// RemoveUntyped detaches component type typeID from e if present.
func (r *Registry) RemoveUntyped(e Entity, typeID int) {
	if !e.Valid() {
		return
	}
	rec := &r.records[e.id]
	if !rec.mask.Has(typeID) {
		return
	}
	r.fireRemove(e, typeID)
	r.pools[typeID].Free(rec.components[typeID])
	rec.components[typeID] = -1
	rec.mask = rec.mask.Clear(typeID)
}

// Clone copies every component e owns onto a freshly created entity via
// each type's copy thunk, then fires on_clone<T> for each copied type,
// in that order (copy pass fully complete before any clone signal), so a
// clone handler always sees a fully formed destination entity.
func (r *Registry) Clone(e Entity) Entity {
	if !e.Valid() {
		corelog.Errorf(corelog.CategoryEntityM, "clone of invalid entity %d", e.id)
		return Entity{id: ArkInvalidID, reg: r}
	}

	dst := r.Create()
	src := &r.records[e.id]
	var cloned []int

	for i := 0; i < MaxComponentTypes; i++ {
		if !src.mask.Has(i) {
			continue
		}
		r.AddUntyped(dst, i, e)
		cloned = append(cloned, i)
	}

	for _, i := range cloned {
		r.sinks.cloneSink(i).Publish(ClonePair{New: dst, Old: e})
	}

	return dst
}

// EachComponent calls f once per component e owns, in ascending type id
// order, with the type's metadata and a pointer to the stored value.
func (r *Registry) EachComponent(e Entity, f func(info *meta.Info, value interface{})) {
	if !e.Valid() {
		return
	}
	rec := &r.records[e.id]
	for i := 0; i < MaxComponentTypes; i++ {
		if !rec.mask.Has(i) {
			continue
		}
		f(r.meta.ByID(i), r.pools[i].Get(rec.components[i]))
	}
}

// EachEntity calls f once for every live entity, in ascending id order.
func (r *Registry) EachEntity(f func(Entity)) {
	for id, a := range r.alive_ {
		if a {
			f(Entity{id: EntityID(id), reg: r})
		}
	}
}
