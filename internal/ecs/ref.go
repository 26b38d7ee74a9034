package ecs

import (
	"fmt"
	"reflect"
)

// Ref points at a component on another entity. Unlike a bare pointer it
// notices when that entity has been destroyed.
type Ref[T Component] struct {
	m *Manager
	h Handle
}

// NewRef returns a Ref to e's T. e must have a T.
func NewRef[T Component](e *Entity) Ref[T] {
	GetComponent[T](e)
	return Ref[T]{m: e.manager, h: e.handle}
}

// Handle returns the handle of the referenced entity.
func (r Ref[T]) Handle() Handle { return r.h }

// TryGet returns the component, or false once the entity is destroyed or
// the component removed.
func (r Ref[T]) TryGet() (T, bool) {
	var zero T
	if r.m == nil {
		return zero, false
	}
	e, ok := r.m.Resolve(r.h)
	if !ok || !e.active || !HasComponent[T](e) {
		return zero, false
	}
	return GetComponent[T](e), true
}

// Get is TryGet that panics on a dead reference.
func (r Ref[T]) Get() T {
	c, ok := r.TryGet()
	if !ok {
		panic(fmt.Sprintf("ecs: dead reference to %s on entity %s", reflect.TypeFor[T](), r.h))
	}
	return c
}
