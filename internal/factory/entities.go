// Package factory assembles the entity archetypes the game uses.
package factory

import (
	"gametemple/internal/component"
	"gametemple/internal/ecs"
	"gametemple/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Draw layers, back to front. LayerMax is the layer count, passed to
// DrawByGroup; no entity joins it.
const (
	LayerBackground ecs.Group = iota
	Layer1
	Layer2
	LayerUI
	LayerMax
)

// CreatePlain creates an entity with a Transform at (x, y) on layer.
func CreatePlain(m *ecs.Manager, x, y float32, layer ecs.Group) *ecs.Entity {
	e := m.Create()
	ecs.AddComponent(e, &component.Transform{}).SetPosition(x, y)
	e.AddGroup(layer)
	return e
}

// CreateSprite creates a plain entity drawn with the first frame of sheet.
func CreateSprite(m *ecs.Manager, r *render.Renderer, sheet string, x, y float32, fg tcell.Color, layer ecs.Group) *ecs.Entity {
	e := CreatePlain(m, x, y, layer)
	ecs.AddComponent(e, component.NewColor(fg))
	ecs.AddComponent(e, component.NewSprite(r, sheet))
	return e
}

// CreateAnimated is CreateSprite cycling through the sheet every ticks.
func CreateAnimated(m *ecs.Manager, r *render.Renderer, sheet string, x, y float32, fg tcell.Color, layer ecs.Group, ticks int) *ecs.Entity {
	e := CreateSprite(m, r, sheet, x, y, fg, layer)
	ecs.AddComponent(e, component.NewAnimator(ticks))
	return e
}

// CreateLabel creates a screen-space text entity at cell (x, y) on LayerUI.
func CreateLabel(m *ecs.Manager, r *render.Renderer, text string, x, y int, fg tcell.Color) *ecs.Entity {
	e := CreatePlain(m, float32(x), float32(y), LayerUI)
	ecs.AddComponent(e, component.NewColor(fg))
	l := ecs.AddComponent(e, component.NewLabel(r, text))
	l.Screen = true
	return e
}

// CreateFalling creates a sprite that falls under gravity and is destroyed
// after life ticks.
func CreateFalling(m *ecs.Manager, r *render.Renderer, sheet string, x, y float32, fg tcell.Color, life int) *ecs.Entity {
	e := CreateSprite(m, r, sheet, x, y, fg, Layer1)
	ecs.AddComponent(e, &component.Physics{})
	ecs.AddComponent(e, component.NewKillEntity(life))
	return e
}
