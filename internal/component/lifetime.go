package component

import "gametemple/internal/ecs"

// KillEntity destroys its entity after a number of ticks.
type KillEntity struct {
	ecs.Base
	left int
}

// NewKillEntity returns a KillEntity that fires after ticks updates.
func NewKillEntity(ticks int) *KillEntity { return &KillEntity{left: ticks} }

// SetLimit restarts the countdown at ticks.
func (k *KillEntity) SetLimit(ticks int) { k.left = ticks }

// Left returns the remaining ticks.
func (k *KillEntity) Left() int { return k.left }

// Kill destroys the entity now.
func (k *KillEntity) Kill() { k.Entity().Destroy() }

func (k *KillEntity) Update() {
	k.left--
	if k.left <= 0 {
		k.Kill()
	}
}

// EventFunc calls a function with its entity on every Update. The type
// parameter only distinguishes instances, so an entity can carry several:
//
//	type onHit struct{}
//	ecs.AddComponent(e, component.NewEventFunc[onHit](fn))
type EventFunc[K any] struct {
	ecs.Base
	fn func(*ecs.Entity)
}

// OnUpdate is the EventFunc most entities need.
type OnUpdate = EventFunc[struct{}]

// NewEventFunc wraps fn. A nil fn makes the component a no-op.
func NewEventFunc[K any](fn func(*ecs.Entity)) *EventFunc[K] {
	return &EventFunc[K]{fn: fn}
}

// NewOnUpdate wraps fn as the entity's OnUpdate.
func NewOnUpdate(fn func(*ecs.Entity)) *OnUpdate { return NewEventFunc[struct{}](fn) }

// Set replaces the function.
func (f *EventFunc[K]) Set(fn func(*ecs.Entity)) { f.fn = fn }

func (f *EventFunc[K]) Update() {
	if f.fn != nil {
		f.fn(f.Entity())
	}
}
