package ecs

import (
	"fmt"
	"reflect"
	"slices"
)

// Entity is a bag of at most one component per type plus a set of groups.
// Entities are created by a Manager and stay owned by it.
type Entity struct {
	manager *Manager
	handle  Handle
	name    string
	active  bool

	// components is kept in attachment order; that order is update and
	// draw order.
	components []slot
	byTag      [MaxComponents]Component
	has        flags
	groups     flags
}

func newEntity(m *Manager, name string) *Entity {
	return &Entity{
		manager: m,
		name:    name,
		active:  true,
		has:     newFlags(MaxComponents, "component tag"),
		groups:  newFlags(MaxGroups, "group"),
	}
}

// Manager returns the manager that owns e.
func (e *Entity) Manager() *Manager { return e.manager }

// Handle returns a generation-checked reference to e.
func (e *Entity) Handle() Handle { return e.handle }

// Name returns the debug name given at creation, if any.
func (e *Entity) Name() string { return e.name }

// IsActive reports whether e has not been destroyed.
func (e *Entity) IsActive() bool { return e.active }

// Destroy marks e for removal. The manager drops it on the next Refresh.
func (e *Entity) Destroy() { e.active = false }

// Len returns the number of attached, active components.
func (e *Entity) Len() int { return e.has.count() }

func (e *Entity) String() string {
	if e.name == "" {
		return fmt.Sprintf("#%d.%d", e.handle.index, e.handle.gen)
	}
	return fmt.Sprintf("%q#%d.%d", e.name, e.handle.index, e.handle.gen)
}

// HasGroup reports whether e is a member of g.
func (e *Entity) HasGroup(g Group) bool {
	checkGroup(g)
	return e.groups.test(uint(g))
}

// AddGroup makes e a member of g and appends it to the manager's index for g.
// Adding a group twice appends twice; callers avoid that.
func (e *Entity) AddGroup(g Group) {
	checkGroup(g)
	e.groups.set(uint(g))
	e.manager.addToGroup(e, g)
}

// RemoveGroup clears the membership flag. The index entry goes on Refresh.
func (e *Entity) RemoveGroup(g Group) {
	checkGroup(g)
	e.groups.clear(uint(g))
}

// Initialize re-runs Initialize on every active component.
func (e *Entity) Initialize() {
	n := len(e.components)
	for i := 0; i < n && i < len(e.components); i++ {
		s := e.components[i]
		if s.b.removed {
			continue
		}
		if in, ok := s.c.(Initializer); ok {
			in.Initialize()
		}
	}
}

// Update drops removed components, then updates the rest in attachment
// order. Components removed during the pass are skipped; components added
// during the pass run from the next tick.
func (e *Entity) Update() {
	e.purge()
	n := len(e.components)
	for i := 0; i < n; i++ {
		s := e.components[i]
		if s.upd == nil || s.b.removed {
			continue
		}
		s.upd.Update()
	}
}

// Draw2D draws every active component. It never changes membership.
func (e *Entity) Draw2D() {
	n := len(e.components)
	for i := 0; i < n; i++ {
		s := e.components[i]
		if s.d2 == nil || s.b.removed {
			continue
		}
		s.d2.Draw2D()
	}
}

// Draw3D is Draw2D for the 3D pass.
func (e *Entity) Draw3D() {
	n := len(e.components)
	for i := 0; i < n; i++ {
		s := e.components[i]
		if s.d3 == nil || s.b.removed {
			continue
		}
		s.d3.Draw3D()
	}
}

// purge compacts storage, then finalizes what it dropped, so a Finalize
// hook may attach components to e.
func (e *Entity) purge() {
	var removed []Component
	e.components = slices.DeleteFunc(e.components, func(s slot) bool {
		if s.b.removed {
			removed = append(removed, s.c)
		}
		return s.b.removed
	})
	for _, c := range removed {
		finalize(c)
	}
}

// release deactivates and finalizes every component; called when the
// manager drops e.
func (e *Entity) release() {
	comps := e.components
	e.components = nil
	e.byTag = [MaxComponents]Component{}
	e.has.bits.ClearAll()
	for _, s := range comps {
		s.b.deactivate()
	}
	for _, s := range comps {
		finalize(s.c)
	}
}

func finalize(c Component) {
	if f, ok := c.(Finalizer); ok {
		f.Finalize()
	}
}

// HasComponent reports whether e has an active component of type T.
func HasComponent[T Component](e *Entity) bool {
	return e.has.test(uint(TagFor[T](e.manager.registry)))
}

// AddComponent attaches c to e, runs its Initialize hook and returns it.
// If e already has a T, c is discarded, the violation is logged and the
// existing component is returned.
func AddComponent[T Component](e *Entity, c T) T {
	tag := TagFor[T](e.manager.registry)
	if e.has.test(uint(tag)) {
		e.manager.logf("AddComponent[%s] on entity %s failed: already attached", reflect.TypeFor[T](), e)
		return e.byTag[tag].(T)
	}
	if v := reflect.ValueOf(c); !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		panic(fmt.Sprintf("ecs: AddComponent[%s] with nil component", reflect.TypeFor[T]()))
	}
	e.manager.checkType(tag, c)

	b := c.base()
	if b.owner != nil {
		panic(fmt.Sprintf("ecs: component %s is already owned by entity %s", reflect.TypeFor[T](), b.owner))
	}
	b.owner = e
	e.components = append(e.components, newSlot(c))
	e.byTag[tag] = c
	e.has.set(uint(tag))

	if in, ok := any(c).(Initializer); ok {
		in.Initialize()
	}
	return c
}

// GetComponent returns e's component of type T. Asking for a component the
// entity does not have is a wiring bug and panics.
func GetComponent[T Component](e *Entity) T {
	tag := TagFor[T](e.manager.registry)
	if !e.has.test(uint(tag)) {
		panic(fmt.Sprintf("ecs: entity %s has no component %s", e, reflect.TypeFor[T]()))
	}
	return e.byTag[tag].(T)
}

// RemoveComponent deactivates e's T, if any. HasComponent reports false at
// once; storage is compacted on e's next Update.
func RemoveComponent[T Component](e *Entity) {
	tag := TagFor[T](e.manager.registry)
	if !e.has.test(uint(tag)) {
		return
	}
	e.byTag[tag].base().deactivate()
	e.byTag[tag] = nil
	e.has.clear(uint(tag))
}
