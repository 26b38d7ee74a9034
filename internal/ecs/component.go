package ecs

import (
	"fmt"
	"reflect"
)

// Component is implemented by every value attached to an entity.
// Types satisfy it by embedding Base (behavior) or Data (plain data),
// always through a pointer: *Position, not Position.
type Component interface {
	base() *Base
}

// Optional hooks. A component implements only the ones it needs; a missing
// hook is a no-op.
type (
	// Initializer runs once, right after the component is attached and
	// linked to its entity. Look up sibling components here.
	Initializer interface{ Initialize() }
	// Updater runs once per tick while the component is active.
	Updater interface{ Update() }
	// Drawer2D runs once per 2D render pass while the component is active.
	Drawer2D interface{ Draw2D() }
	// Drawer3D runs once per 3D render pass while the component is active.
	Drawer3D interface{ Draw3D() }
	// Finalizer runs once when the component leaves storage, either purged
	// after RemoveComponent or dropped with its entity on Refresh.
	Finalizer interface{ Finalize() }
)

// Base carries the state every component shares with its owner.
type Base struct {
	owner   *Entity
	removed bool
}

func (b *Base) base() *Base { return b }

// Entity returns the owning entity. It is set before Initialize runs and
// stays valid for the component's lifetime.
func (b *Base) Entity() *Entity { return b.owner }

// IsActive reports whether the component is still attached.
func (b *Base) IsActive() bool { return !b.removed }

// deactivate is only reachable from this package; Entity.RemoveComponent
// is the single caller.
func (b *Base) deactivate() { b.removed = true }

// Data is embedded by components that hold state but no per-frame logic.
// Attaching a Data component that implements Updater, Drawer2D or Drawer3D
// panics.
type Data struct {
	Base
}

func (*Data) data() {}

type dataComponent interface {
	Component
	data()
}

// slot is one attached component with its hooks resolved.
type slot struct {
	c   Component
	b   *Base
	upd Updater
	d2  Drawer2D
	d3  Drawer3D
}

func newSlot(c Component) slot {
	s := slot{c: c, b: c.base()}
	s.upd, _ = c.(Updater)
	s.d2, _ = c.(Drawer2D)
	s.d3, _ = c.(Drawer3D)
	return s
}

// checkData panics if a Data component carries per-frame hooks.
func checkData(c Component) {
	if _, ok := c.(dataComponent); !ok {
		return
	}
	_, upd := c.(Updater)
	_, d2 := c.(Drawer2D)
	_, d3 := c.(Drawer3D)
	if upd || d2 || d3 {
		panic(fmt.Sprintf("ecs: data component %s must not implement Update, Draw2D or Draw3D", reflect.TypeOf(c)))
	}
}
