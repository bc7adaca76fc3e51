package ecs

import "github.com/barhaim/arkgo/internal/ecs/meta"

// View iterates every live entity whose mask contains a fixed set of
// component types, re-scanning the registry on every call rather than
// caching membership. It is a live projection: a component added or removed
// mid-iteration by the callback is observed on the next Each call, not
// retroactively on the current one.
type View struct {
	r    *Registry
	mask ComponentMask
}

// ViewMask returns a View over every entity whose mask contains mask.
func (r *Registry) ViewMask(mask ComponentMask) *View {
	return &View{r: r, mask: mask}
}

// Each calls f once per matching entity, in ascending id order.
func (v *View) Each(f func(Entity)) {
	for id, a := range v.r.alive_ {
		if !a {
			continue
		}
		if v.r.records[id].mask.Contains(v.mask) {
			f(Entity{id: EntityID(id), reg: v.r})
		}
	}
}

// Count returns the number of entities currently matching the view.
func (v *View) Count() int {
	n := 0
	v.Each(func(Entity) { n++ })
	return n
}

func maskFor(r *Registry, ids ...int) ComponentMask {
	var m ComponentMask
	for _, id := range ids {
		m = m.Set(id)
	}
	return m
}

// View1 calls f once per live entity owning a component of type A, in
// ascending id order, with a pointer to that component.
func View1[A any](r *Registry, f func(Entity, *A)) {
	idA := meta.TypeID[A](r.meta)
	mask := maskFor(r, idA)
	for id, alive := range r.alive_ {
		if !alive || !r.records[id].mask.Contains(mask) {
			continue
		}
		e := Entity{id: EntityID(id), reg: r}
		a, _ := TryGet[A](r, e)
		f(e, a)
	}
}

// View2 calls f once per live entity owning components of both type A and
// type B.
func View2[A, B any](r *Registry, f func(Entity, *A, *B)) {
	idA := meta.TypeID[A](r.meta)
	idB := meta.TypeID[B](r.meta)
	mask := maskFor(r, idA, idB)
	for id, alive := range r.alive_ {
		if !alive || !r.records[id].mask.Contains(mask) {
			continue
		}
		e := Entity{id: EntityID(id), reg: r}
		a, _ := TryGet[A](r, e)
		b, _ := TryGet[B](r, e)
		f(e, a, b)
	}
}

// View3 calls f once per live entity owning components of types A, B and
// C.
func View3[A, B, C any](r *Registry, f func(Entity, *A, *B, *C)) {
	idA := meta.TypeID[A](r.meta)
	idB := meta.TypeID[B](r.meta)
	idC := meta.TypeID[C](r.meta)
	mask := maskFor(r, idA, idB, idC)
	for id, alive := range r.alive_ {
		if !alive || !r.records[id].mask.Contains(mask) {
			continue
		}
		e := Entity{id: EntityID(id), reg: r}
		a, _ := TryGet[A](r, e)
		b, _ := TryGet[B](r, e)
		c, _ := TryGet[C](r, e)
		f(e, a, b, c)
	}
}
