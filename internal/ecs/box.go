package ecs

import "reflect"

// boxValue copies v (a plain component value of some type T) onto the heap
// and returns a *T, type-erased as interface{}. It exists because the
// untyped add/clone paths only ever see a meta.Info, never a static T;
// reflect is the only way to mint "a pointer to a fresh copy of whatever
// this is" without one.
func boxValue(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	return ptr.Interface()
}

// derefToValue turns a *T (boxed as interface{}) back into the plain T
// value it points to, again without static knowledge of T.
func derefToValue(ptr interface{}) interface{} {
	return reflect.ValueOf(ptr).Elem().Interface()
}
