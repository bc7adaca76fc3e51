// Package meta implements the process-wide type metadata table: a single
// registry, keyed by component type id, populated once per type on first
// mention, carrying optional ctor/copy thunks and a set of named,
// type-erased services (serialize, inspector, ...).
package meta

import (
	"reflect"
	"sync"

	"github.com/barhaim/arkgo/internal/corelog"
)

// MaxTypes mirrors ecs.MaxComponentTypes; duplicated here instead of
// imported to keep this package free of a dependency on the ecs package
// (meta is a leaf: registry.go depends on meta, not the reverse).
const MaxTypes = 32

// Reserved service names. A service is an opaque function value attached
// to one type's Info; the caller and registrant agree on the signature
// convention keyed by the name, and the caller type-asserts before
// invoking. The serde package documents and consumes the serialize and
// deserialize conventions; the remaining names are reserved for hosts
// that plug in an inspector, ownership boxing, or a scripting bridge.
const (
	ServiceSerialize   = "serialize"
	ServiceDeserialize = "deserialize"
	ServiceInspector   = "inspector"
	ServiceUniquePtr   = "unique_ptr"
	ServiceLuaTable    = "lua_table_from_pointer"
	ServiceExportLua   = "export_to_lua"
)

// Info is the per-type metadata record. Ctor/Copy are nil when the
// language-level type admits no such operation; callers must check before
// invoking.
type Info struct {
	ID       int
	Name     string
	RType    reflect.Type
	Size     uintptr
	Ctor     func() interface{}
	Copy     func(interface{}) interface{}

	mu       sync.RWMutex
	services map[string]interface{}
}

// Service looks up a named service, returning (nil, false) on miss. A
// miss is never an error; callers decide whether it's fatal.
func (i *Info) Service(name string) (interface{}, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	fn, ok := i.services[name]
	return fn, ok
}

// SetService registers or replaces the binding for (type, name).
func (i *Info) SetService(name string, fn interface{}) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.services == nil {
		i.services = make(map[string]interface{})
	}
	i.services[name] = fn
}

// Registry is the process-wide type table. Writes only ever happen during
// first-use registration; once a type has an id, its Info is read-only
// (services aside, which are explicitly mutable), matching an
// append-only-after-initialization policy.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*Info
	byID   []*Info
	byName map[string]*Info
}

// NewRegistry creates an empty metadata table.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[reflect.Type]*Info), byName: make(map[string]*Info)}
}

// lookup returns the Info for rt if already registered.
func (r *Registry) lookup(rt reflect.Type) (*Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.byType[rt]
	return info, ok
}

// register assigns the next id to rt idempotently; repeated calls for the
// same type return the existing Info unchanged. Exceeding MaxTypes is a
// fatal misconfiguration.
func (r *Registry) register(rt reflect.Type, ctor func() interface{}, copy func(interface{}) interface{}) *Info {
	if info, ok := r.lookup(rt); ok {
		return info
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under the write lock in case of a concurrent racer.
	if info, ok := r.byType[rt]; ok {
		return info
	}

	if len(r.byID) >= MaxTypes {
		corelog.Fatal(corelog.CategoryEntityM, "component type cap exceeded: %s (max %d)", rt, MaxTypes)
	}

	info := &Info{
		ID:    len(r.byID),
		Name:  rt.Name(),
		RType: rt,
		Size:  rt.Size(),
		Ctor:  ctor,
		Copy:  copy,
	}
	r.byType[rt] = info
	r.byID = append(r.byID, info)
	r.byName[info.Name] = info
	return info
}

// ByID returns the Info for an already-assigned type id, or nil if out of
// range.
func (r *Registry) ByID(id int) *Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || id >= len(r.byID) {
		return nil
	}
	return r.byID[id]
}

// ByName returns the Info registered under a type's bare name (e.g.
// "Transform"), or false if no such type has been registered yet. Used by
// serde to resolve a JSON component key back to a type id.
func (r *Registry) ByName(name string) (*Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.byName[name]
	return info, ok
}

// Count returns the number of registered types.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// TypeID returns the stable type id for T, registering it on first use
// with a default constructor and a value-copy copier. Go structs are
// copied by assignment, so Copy is always non-nil for types registered
// this way; only hand-built Info entries can leave it nil.
func TypeID[T any](r *Registry) int {
	info := RegisterType[T](r)
	return info.ID
}

// RegisterType registers T (idempotently) and returns its Info. Ctor
// default-constructs a zero value of T; Copy performs a shallow Go value
// copy, filling the "copy ctor" slot for plain-data components.
func RegisterType[T any](r *Registry) *Info {
	rt := typeOf[T]()
	return r.register(rt, func() interface{} {
		var zero T
		return zero
	}, func(src interface{}) interface{} {
		v := src.(T)
		return v
	})
}

// Lookup returns the Info for T if it has already been registered, without
// registering it.
func Lookup[T any](r *Registry) (*Info, bool) {
	return r.lookup(typeOf[T]())
}
