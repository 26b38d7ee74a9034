// Package component holds the components games are assembled from.
// Data components only carry state; behavior components read and write
// them through their entity.
package component

import (
	"gametemple/internal/ecs"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// Position is the world position, in world units.
type Position struct {
	ecs.Data
	Val mgl32.Vec2
}

// NewPosition returns a Position at (x, y).
func NewPosition(x, y float32) *Position { return &Position{Val: mgl32.Vec2{x, y}} }

// Rotation in radians.
type Rotation struct {
	ecs.Data
	Val float32
}

// Scale along x and y.
type Scale struct {
	ecs.Data
	Val mgl32.Vec2
}

// NewScale returns a uniform Scale.
func NewScale(s float32) *Scale { return &Scale{Val: mgl32.Vec2{s, s}} }

// Velocity in world units per tick.
type Velocity struct {
	ecs.Data
	Val mgl32.Vec2
}

// NewVelocity returns a Velocity of (x, y).
func NewVelocity(x, y float32) *Velocity { return &Velocity{Val: mgl32.Vec2{x, y}} }

// Dir is a facing.
type Dir uint8

const (
	DirRight Dir = iota
	DirLeft
	DirUp
	DirDown
)

// Direction is the way an entity faces. The zero value faces right.
type Direction struct {
	ecs.Data
	Val Dir
}

// DefaultGravity is the per-tick downward acceleration used when none is given.
const DefaultGravity float32 = 0.05

// Gravity is a per-tick acceleration along +y.
type Gravity struct {
	ecs.Data
	Val float32
}

// NewGravity returns a Gravity of g.
func NewGravity(g float32) *Gravity { return &Gravity{Val: g} }

// Color sets the foreground and background drawing colors.
type Color struct {
	ecs.Data
	Fg, Bg tcell.Color
}

// NewColor returns a Color with the given foreground on the default background.
func NewColor(fg tcell.Color) *Color { return &Color{Fg: fg, Bg: tcell.ColorDefault} }

// Style returns the tcell style for c.
func (c *Color) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(c.Fg).Background(c.Bg)
}
