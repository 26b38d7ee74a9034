package ecs

import (
	"fmt"
	"reflect"
)

// Tag is a small integer key identifying a component type.
type Tag uint8

// MaxComponents is the number of distinct component types a Registry can hold.
// Entity flag sets and dense component arrays are sized by it.
const MaxComponents = 32

// Registry hands out one Tag per component type, in first-use order.
type Registry struct {
	tags  map[reflect.Type]Tag
	types []reflect.Type
	// checked records types whose hooks were validated on first attach.
	checked [MaxComponents]bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tags:  make(map[reflect.Type]Tag, MaxComponents),
		types: make([]reflect.Type, 0, MaxComponents),
	}
}

// TagOf returns the tag for t, allocating the next free one on first use.
// It panics when the registry is full.
func (r *Registry) TagOf(t reflect.Type) Tag {
	if tag, ok := r.tags[t]; ok {
		return tag
	}
	if len(r.types) >= MaxComponents {
		panic(fmt.Sprintf("ecs: cannot register component %s: maximum number of component types (%d) reached", t, MaxComponents))
	}
	tag := Tag(len(r.types))
	r.tags[t] = tag
	r.types = append(r.types, t)
	return tag
}

// TypeOf returns the type registered under tag, or nil.
func (r *Registry) TypeOf(tag Tag) reflect.Type {
	if int(tag) >= len(r.types) {
		return nil
	}
	return r.types[tag]
}

// Len reports how many component types have been registered.
func (r *Registry) Len() int { return len(r.types) }

// TagFor returns the tag for component type T in r.
func TagFor[T Component](r *Registry) Tag {
	return r.TagOf(reflect.TypeFor[T]())
}
