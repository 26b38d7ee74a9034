package component

import (
	"gametemple/internal/ecs"

	"github.com/go-gl/mathgl/mgl32"
)

type child struct {
	ref    ecs.Ref[*Transform]
	offset mgl32.Vec2
	scale  mgl32.Vec2
	rot    float32
}

// Canvas keeps child entities placed relative to its own Transform.
// Children follow the parent on every Update; destroyed children are
// dropped.
type Canvas struct {
	ecs.Base
	tr       *Transform
	children []child
}

func (c *Canvas) Initialize() {
	e := c.Entity()
	if !ecs.HasComponent[*Transform](e) {
		ecs.AddComponent(e, &Transform{})
	}
	c.tr = ecs.GetComponent[*Transform](e)
}

// AddChild attaches e, whose current position becomes its offset from the
// parent. e gets a Transform if it has none.
func (c *Canvas) AddChild(e *ecs.Entity) int {
	if !ecs.HasComponent[*Transform](e) {
		ecs.AddComponent(e, &Transform{})
	}
	c.children = append(c.children, child{
		ref:    ecs.NewRef[*Transform](e),
		offset: ecs.GetComponent[*Position](e).Val,
	})
	return len(c.children) - 1
}

// Len returns the number of children still attached.
func (c *Canvas) Len() int { return len(c.children) }

// OffsetChildPosition sets child i's offset from the parent.
func (c *Canvas) OffsetChildPosition(i int, x, y float32) {
	c.children[i].offset = mgl32.Vec2{x, y}
}

// OffsetChildScale sets the scale added to the parent's for child i.
func (c *Canvas) OffsetChildScale(i int, x, y float32) {
	c.children[i].scale = mgl32.Vec2{x, y}
}

// OffsetChildRotation sets the rotation added to the parent's for child i.
func (c *Canvas) OffsetChildRotation(i int, r float32) {
	c.children[i].rot = r
}

func (c *Canvas) Update() {
	pos, scale, rot := c.tr.pos.Val, c.tr.scale.Val, c.tr.rot.Val
	live := c.children[:0]
	for _, ch := range c.children {
		t, ok := ch.ref.TryGet()
		if !ok || !t.Entity().IsActive() {
			continue
		}
		t.pos.Val = pos.Add(ch.offset)
		t.scale.Val = scale.Add(ch.scale)
		t.rot.Val = rot + ch.rot
		live = append(live, ch)
	}
	c.children = live
}
