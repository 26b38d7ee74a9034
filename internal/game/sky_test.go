package game

import (
	"testing"

	"gametemple/internal/component"
	"gametemple/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

func newSky(t *testing.T) (*Game, *Sky, tcell.SimulationScreen) {
	t.Helper()
	screen := newScreen(t, 40, 12)
	sky := NewSky()
	g := New(screen, testConfig(), sky)
	return g, sky, screen
}

func TestSkyPlayerRestsOnFloor(t *testing.T) {
	g, sky, _ := newSky(t)
	for i := 0; i < 10; i++ {
		g.Tick()
	}
	pos := ecs.GetComponent[*component.Position](sky.player).Val
	if pos.Y() > float32(sky.floorY-1)+0.01 || pos.Y() < float32(sky.floorY-2) {
		t.Fatalf("player y = %v; want resting above floor row %d", pos.Y(), sky.floorY)
	}
	if !sky.player.IsActive() {
		t.Fatal("player destroyed")
	}
	if !ecs.HasComponent[*component.OnUpdate](sky.player) {
		t.Fatal("player has no OnUpdate steering it")
	}
}

func TestSkyWalkAndFace(t *testing.T) {
	g, sky, _ := newSky(t)
	g.Tick()
	x0 := ecs.GetComponent[*component.Position](sky.player).Val.X()

	for i := 0; i < 4; i++ {
		g.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
		g.Tick()
	}
	if x := ecs.GetComponent[*component.Position](sky.player).Val.X(); x >= x0 {
		t.Fatalf("x = %v after walking left from %v", x, x0)
	}
	if d := ecs.GetComponent[*component.Direction](sky.player).Val; d != component.DirLeft {
		t.Fatalf("direction = %v; want DirLeft", d)
	}
}

func TestSkyDropSpawnsCrate(t *testing.T) {
	g, sky, _ := newSky(t)
	g.Tick()
	before := g.Manager().Len()

	g.HandleEvent(key('z'))
	g.Tick()
	if g.Stats().Spawned != 1 {
		t.Fatalf("Spawned = %d; want 1", g.Stats().Spawned)
	}
	if g.Manager().Len() != before+1 {
		t.Fatalf("Len = %d; want %d", g.Manager().Len(), before+1)
	}
	if len(sky.blocks) != 1 {
		t.Fatalf("blocks = %d; want 1", len(sky.blocks))
	}

	for i := 0; i < blockLife+1; i++ {
		g.Tick()
	}
	if _, ok := g.Manager().Resolve(sky.blocks[0]); ok {
		t.Fatal("crate outlived its lifetime")
	}
	if g.Manager().Len() != before {
		t.Fatalf("Len = %d after the crate expired; want %d", g.Manager().Len(), before)
	}
}

func TestSkyNameTagFollowsPlayer(t *testing.T) {
	g, sky, screen := newSky(t)
	for i := 0; i < 3; i++ {
		g.Tick()
	}
	pos := ecs.GetComponent[*component.Position](sky.player).Val
	sx, sy, _ := g.Renderer().Camera().WorldToScreen(pos.X(), pos.Y()-1)
	if c, _, _, _ := screen.GetContent(sx, sy); c != 't' {
		t.Fatalf("cell(%d,%d) = %q; want the name tag above the player", sx, sy, c)
	}
}

func TestSkyQuit(t *testing.T) {
	g, _, _ := newSky(t)
	g.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	g.Tick()
	if !g.Done() {
		t.Fatal("Escape did not quit")
	}
}
