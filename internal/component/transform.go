package component

import (
	"gametemple/internal/ecs"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform groups Position, Rotation and Scale, adding whichever of them
// the entity is missing.
type Transform struct {
	ecs.Base
	pos   *Position
	rot   *Rotation
	scale *Scale
}

func (t *Transform) Initialize() {
	e := t.Entity()
	if !ecs.HasComponent[*Position](e) {
		ecs.AddComponent(e, NewPosition(0, 0))
	}
	if !ecs.HasComponent[*Rotation](e) {
		ecs.AddComponent(e, &Rotation{})
	}
	if !ecs.HasComponent[*Scale](e) {
		ecs.AddComponent(e, NewScale(1))
	}
	t.pos = ecs.GetComponent[*Position](e)
	t.rot = ecs.GetComponent[*Rotation](e)
	t.scale = ecs.GetComponent[*Scale](e)
}

// SetPosition moves the entity to (x, y) and returns t for chaining.
func (t *Transform) SetPosition(x, y float32) *Transform {
	t.pos.Val = mgl32.Vec2{x, y}
	return t
}

// SetRotation sets the rotation in radians.
func (t *Transform) SetRotation(r float32) *Transform {
	t.rot.Val = r
	return t
}

// SetScale sets the scale along each axis.
func (t *Transform) SetScale(x, y float32) *Transform {
	t.scale.Val = mgl32.Vec2{x, y}
	return t
}

// Position returns the current position.
func (t *Transform) Position() mgl32.Vec2 { return t.pos.Val }
