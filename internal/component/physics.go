package component

import (
	"math"

	"gametemple/internal/ecs"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxStep bounds the distance Physics moves along one axis per tick.
const MaxStep = 256

// HitFunc reports whether a overlaps b at their current positions.
type HitFunc func(a, b *ecs.Entity) bool

// Physics applies gravity to Velocity and moves Position by it, one unit
// step at a time, stopping on an axis when a step would hit a solid.
type Physics struct {
	ecs.Base
	pos    *Position
	vel    *Velocity
	grav   *Gravity
	hit    HitFunc
	solids []ecs.Handle
}

func (p *Physics) Initialize() {
	e := p.Entity()
	if !ecs.HasComponent[*Position](e) {
		ecs.AddComponent(e, NewPosition(0, 0))
	}
	if !ecs.HasComponent[*Velocity](e) {
		ecs.AddComponent(e, NewVelocity(0, 0))
	}
	if !ecs.HasComponent[*Gravity](e) {
		ecs.AddComponent(e, NewGravity(DefaultGravity))
	}
	p.pos = ecs.GetComponent[*Position](e)
	p.vel = ecs.GetComponent[*Velocity](e)
	p.grav = ecs.GetComponent[*Gravity](e)
}

// SetVelocity replaces the velocity.
func (p *Physics) SetVelocity(x, y float32) *Physics {
	p.vel.Val = mgl32.Vec2{x, y}
	return p
}

// Velocity returns the current velocity.
func (p *Physics) Velocity() mgl32.Vec2 { return p.vel.Val }

// SetGravity replaces the per-tick acceleration.
func (p *Physics) SetGravity(g float32) *Physics {
	p.grav.Val = g
	return p
}

// SetHitFunc sets the overlap test used against solids. Without one the
// entity passes through everything.
func (p *Physics) SetHitFunc(f HitFunc) *Physics {
	p.hit = f
	return p
}

// AddSolid makes the entity stop against e. Destroyed solids are dropped
// on the next Update.
func (p *Physics) AddSolid(e *ecs.Entity) *Physics {
	p.solids = append(p.solids, e.Handle())
	return p
}

func (p *Physics) Update() {
	p.vel.Val[1] += p.grav.Val
	if p.vel.Val[0] != 0 {
		if !p.step(0, p.vel.Val[0]) {
			p.vel.Val[0] = 0
		}
	}
	if p.vel.Val[1] != 0 {
		if !p.step(1, p.vel.Val[1]) {
			p.vel.Val[1] = 0
		}
	}
}

// step moves along axis by d in unit increments and reports whether the
// full distance was covered. d is clamped to MaxStep; a NaN or infinite d
// moves nothing and reports false.
func (p *Physics) step(axis int, d float32) bool {
	if math.IsNaN(float64(d)) || math.IsInf(float64(d), 0) {
		return false
	}
	d = mgl32.Clamp(d, -MaxStep, MaxStep)
	for d != 0 {
		inc := d
		if abs(inc) > 1 {
			inc = float32(math.Copysign(1, float64(d)))
		}
		p.pos.Val[axis] += inc
		if p.blocked() {
			p.pos.Val[axis] -= inc
			return false
		}
		d -= inc
	}
	return true
}

func (p *Physics) blocked() bool {
	if p.hit == nil || len(p.solids) == 0 {
		return false
	}
	self := p.Entity()
	m := self.Manager()
	live := p.solids[:0]
	hit := false
	for _, h := range p.solids {
		other, ok := m.Resolve(h)
		if !ok {
			continue
		}
		live = append(live, h)
		if hit || other == self || !other.IsActive() {
			continue
		}
		hit = p.hit(self, other)
	}
	p.solids = live
	return hit
}

// BoxHit returns a HitFunc treating each entity as a w by h box anchored
// at its Position. Entities without a Position never hit.
func BoxHit(w, h float32) HitFunc {
	return func(a, b *ecs.Entity) bool {
		pa, pb, ok := positions(a, b)
		return ok && abs(pa.X()-pb.X()) < w && abs(pa.Y()-pb.Y()) < h
	}
}

// CircleHit returns a HitFunc treating a as a circle of radius ra and b
// as one of radius rb, both centred on their Position. Circles that only
// touch do not hit.
func CircleHit(ra, rb float32) HitFunc {
	return func(a, b *ecs.Entity) bool {
		pa, pb, ok := positions(a, b)
		return ok && pa.Sub(pb).Len() < ra+rb
	}
}

func positions(a, b *ecs.Entity) (pa, pb mgl32.Vec2, ok bool) {
	if !ecs.HasComponent[*Position](a) || !ecs.HasComponent[*Position](b) {
		return pa, pb, false
	}
	return ecs.GetComponent[*Position](a).Val, ecs.GetComponent[*Position](b).Val, true
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
