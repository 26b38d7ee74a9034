package component

import (
	"math"
	"testing"
	"time"

	"gametemple/internal/ecs"
	"gametemple/internal/render"
	"gametemple/internal/sound"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
)

func newManager() *ecs.Manager {
	return ecs.NewManager(ecs.NewRegistry())
}

func newRenderer(t *testing.T, w, h int) (*render.Renderer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	sheets := render.NewSheets()
	sheets.Load("block", "#")
	sheets.Load("spin", "|", "/", "-", "\\")
	return render.NewRenderer(screen, sheets), screen
}

func cell(s tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestTransformAddsMissingData(t *testing.T) {
	m := newManager()
	e := m.Create()
	ecs.AddComponent(e, NewScale(3))
	tr := ecs.AddComponent(e, &Transform{})

	if !ecs.HasComponent[*Position](e) || !ecs.HasComponent[*Rotation](e) {
		t.Fatal("Transform did not add Position and Rotation")
	}
	if got := ecs.GetComponent[*Scale](e).Val; got != (mgl32.Vec2{3, 3}) {
		t.Errorf("Scale = %v; want the existing 3,3 kept", got)
	}
	tr.SetPosition(4, 5).SetRotation(1)
	if got := ecs.GetComponent[*Position](e).Val; got != (mgl32.Vec2{4, 5}) {
		t.Errorf("Position = %v; want 4,5", got)
	}
	if got := ecs.GetComponent[*Rotation](e).Val; got != 1 {
		t.Errorf("Rotation = %v; want 1", got)
	}
}

func TestPhysicsFalls(t *testing.T) {
	m := newManager()
	e := m.Create()
	p := ecs.AddComponent(e, &Physics{})
	p.SetGravity(0.5)

	m.Update()
	m.Update()
	if got := p.Velocity(); got != (mgl32.Vec2{0, 1}) {
		t.Fatalf("Velocity = %v; want 0,1", got)
	}
	if got := ecs.GetComponent[*Position](e).Val; got != (mgl32.Vec2{0, 1.5}) {
		t.Fatalf("Position = %v; want 0,1.5", got)
	}
}

func TestPhysicsStopsOnSolid(t *testing.T) {
	m := newManager()
	floor := m.Create()
	ecs.AddComponent(floor, NewPosition(0, 5))

	e := m.Create()
	ecs.AddComponent(e, NewPosition(0, 0))
	p := ecs.AddComponent(e, &Physics{})
	p.SetGravity(0).SetVelocity(0, 10).SetHitFunc(BoxHit(1, 1)).AddSolid(floor)

	m.Update()
	if got := ecs.GetComponent[*Position](e).Val; got != (mgl32.Vec2{0, 4}) {
		t.Fatalf("Position = %v; want 0,4 resting on the floor", got)
	}
	if got := p.Velocity(); got.Y() != 0 {
		t.Fatalf("Velocity.y = %v; want 0 after the hit", got.Y())
	}

	floor.Destroy()
	m.Refresh()
	p.SetVelocity(0, 3)
	m.Update()
	if got := ecs.GetComponent[*Position](e).Val; got != (mgl32.Vec2{0, 7}) {
		t.Fatalf("Position = %v; want 0,7 after the floor is gone", got)
	}
}

func TestPhysicsBlocksPerAxis(t *testing.T) {
	m := newManager()
	wall := m.Create()
	ecs.AddComponent(wall, NewPosition(2, 0))

	e := m.Create()
	p := ecs.AddComponent(e, &Physics{})
	p.SetGravity(0).SetVelocity(3, 0).SetHitFunc(BoxHit(1, 1)).AddSolid(wall)
	m.Update()

	if got := ecs.GetComponent[*Position](e).Val; got != (mgl32.Vec2{1, 0}) {
		t.Fatalf("Position = %v; want 1,0 against the wall", got)
	}
	if got := p.Velocity(); got.X() != 0 {
		t.Fatalf("Velocity.x = %v; want 0", got.X())
	}
}

func TestPhysicsIgnoresNonFiniteVelocity(t *testing.T) {
	for _, v := range []float32{float32(math.NaN()), float32(math.Inf(1)), float32(math.Inf(-1))} {
		m := newManager()
		e := m.Create()
		p := ecs.AddComponent(e, &Physics{})
		p.SetGravity(0).SetVelocity(v, v)

		m.Update()
		if got := ecs.GetComponent[*Position](e).Val; got != (mgl32.Vec2{0, 0}) {
			t.Errorf("velocity %v: Position = %v; want 0,0", v, got)
		}
		if got := p.Velocity(); got != (mgl32.Vec2{0, 0}) {
			t.Errorf("velocity %v: Velocity = %v; want zeroed", v, got)
		}
	}
}

func TestPhysicsClampsHugeVelocity(t *testing.T) {
	m := newManager()
	e := m.Create()
	p := ecs.AddComponent(e, &Physics{})
	p.SetGravity(0).SetVelocity(1e30, -1e30)

	m.Update()
	if got := ecs.GetComponent[*Position](e).Val; got != (mgl32.Vec2{MaxStep, -MaxStep}) {
		t.Fatalf("Position = %v; want %v,%v", got, MaxStep, -MaxStep)
	}
}

func TestCircleHit(t *testing.T) {
	m := newManager()
	a := m.Create()
	ecs.AddComponent(a, NewPosition(0, 0))
	b := m.Create()
	bare := m.Create()

	hit := CircleHit(1, 2)
	cases := []struct {
		x, y float32
		want bool
	}{
		{0, 0, true},
		{2, 2, true},  // distance 2.83
		{3, 0, false}, // touching
		{0, -2.9, true},
		{3, 3, false},
	}
	ecs.AddComponent(b, NewPosition(0, 0))
	for _, c := range cases {
		ecs.GetComponent[*Position](b).Val = mgl32.Vec2{c.x, c.y}
		if got := hit(a, b); got != c.want {
			t.Errorf("CircleHit at %v,%v = %v; want %v", c.x, c.y, got, c.want)
		}
	}
	if hit(a, bare) {
		t.Error("CircleHit reported a hit against an entity without Position")
	}
}

func TestPhysicsStopsOnCircle(t *testing.T) {
	m := newManager()
	rock := m.Create()
	ecs.AddComponent(rock, NewPosition(0, 6))

	e := m.Create()
	p := ecs.AddComponent(e, &Physics{})
	p.SetGravity(0).SetVelocity(0, 10).SetHitFunc(CircleHit(1, 1)).AddSolid(rock)
	m.Update()

	if got := ecs.GetComponent[*Position](e).Val; got != (mgl32.Vec2{0, 4}) {
		t.Fatalf("Position = %v; want 0,4 touching the rock", got)
	}
}

func TestCanvasMovesChildren(t *testing.T) {
	m := newManager()
	parent := m.Create()
	c := ecs.AddComponent(parent, &Canvas{})
	ecs.GetComponent[*Transform](parent).SetPosition(10, 10)

	kid := m.Create()
	ecs.AddComponent(kid, NewPosition(1, 2))
	i := c.AddChild(kid)
	c.OffsetChildRotation(i, 0.5)

	m.Update()
	if got := ecs.GetComponent[*Position](kid).Val; got != (mgl32.Vec2{11, 12}) {
		t.Fatalf("child Position = %v; want 11,12", got)
	}
	if got := ecs.GetComponent[*Rotation](kid).Val; got != 0.5 {
		t.Fatalf("child Rotation = %v; want 0.5", got)
	}

	kid.Destroy()
	m.Refresh()
	m.Update()
	if c.Len() != 0 {
		t.Fatalf("Len = %d; want destroyed child dropped", c.Len())
	}
}

func TestKillEntity(t *testing.T) {
	m := newManager()
	e := m.Create()
	ecs.AddComponent(e, NewKillEntity(3))

	for i := 0; i < 2; i++ {
		m.Update()
		m.Refresh()
	}
	if m.Len() != 1 {
		t.Fatal("entity died early")
	}
	m.Update()
	m.Refresh()
	if m.Len() != 0 {
		t.Fatalf("Len = %d after the limit; want 0", m.Len())
	}
}

type onLand struct{}

func TestEventFuncs(t *testing.T) {
	m := newManager()
	e := m.Create()
	var a, b int
	ecs.AddComponent(e, NewOnUpdate(func(*ecs.Entity) { a++ }))
	ecs.AddComponent(e, NewEventFunc[onLand](func(got *ecs.Entity) {
		if got != e {
			t.Error("EventFunc called with the wrong entity")
		}
		b++
	}))
	m.Update()
	m.Update()
	if a != 2 || b != 2 {
		t.Fatalf("calls = %d,%d; want 2,2", a, b)
	}
	if !ecs.HasComponent[*OnUpdate](e) {
		t.Fatal("OnUpdate is not the struct{} instance")
	}
}

func TestSpriteDraws(t *testing.T) {
	r, screen := newRenderer(t, 20, 5)
	m := newManager()
	e := m.Create()
	ecs.AddComponent(e, NewPosition(2, 1))
	ecs.AddComponent(e, NewColor(tcell.ColorRed))
	s := ecs.AddComponent(e, NewSprite(r, "block"))

	r.Begin()
	m.Draw2D()
	if got := cell(screen, 4, 1); got != '#' {
		t.Fatalf("cell(4,1) = %q; want '#'", got)
	}
	_, _, style, _ := screen.GetContent(4, 1)
	if style != NewColor(tcell.ColorRed).Style() {
		t.Errorf("style = %v; want red on default", style)
	}

	s.Hide()
	r.Begin()
	m.Draw2D()
	if got := cell(screen, 4, 1); got == '#' {
		t.Fatal("hidden sprite was drawn")
	}
}

func TestSpriteAssertions(t *testing.T) {
	r, _ := newRenderer(t, 10, 10)
	mustPanic(t, "unknown sheet", func() { NewSprite(r, "nope") })

	m := newManager()
	s := ecs.AddComponent(m.Create(), NewSprite(r, "spin"))
	mustPanic(t, "frame out of range", func() { s.SetIndex(4) })
	s.SetIndex(3)
	if s.Glyph() != "\\" {
		t.Fatalf("Glyph = %q; want backslash", s.Glyph())
	}
}

func TestAnimatorWraps(t *testing.T) {
	r, _ := newRenderer(t, 10, 10)
	m := newManager()
	e := m.Create()
	s := ecs.AddComponent(e, NewSprite(r, "spin"))
	ecs.AddComponent(e, NewAnimator(2))

	var got []int
	for i := 0; i < 10; i++ {
		m.Update()
		got = append(got, s.Index())
	}
	want := []int{0, 1, 1, 2, 2, 3, 3, 0, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frames = %v; want %v", got, want)
		}
	}
}

func TestLabel(t *testing.T) {
	r, screen := newRenderer(t, 20, 5)
	m := newManager()
	e := m.Create()
	ecs.AddComponent(e, NewPosition(1, 3))
	l := ecs.AddComponent(e, NewLabel(r, "hi"))
	l.Screen = true

	r.Begin()
	m.Draw2D()
	if cell(screen, 1, 3) != 'h' || cell(screen, 2, 3) != 'i' {
		t.Fatal("screen label not drawn at its cell")
	}

	l.Screen = false
	r.Begin()
	m.Draw2D()
	if cell(screen, 2, 3) != 'h' {
		t.Fatal("world label not drawn through the camera")
	}
}

func TestSoundEmitter(t *testing.T) {
	sm := sound.NewManager()
	sm.Register("hum", sound.Sweep(80, 200, time.Second))
	sm.Register("beep", sound.Tone(440, time.Millisecond))
	mustPanic(t, "unknown sound", func() { NewSoundEmitter(sm, "nope", false) })

	m := newManager()
	e := m.Create()
	ecs.AddComponent(e, NewSoundEmitter(sm, "hum", true).PlayOnAttach())
	if !sm.Playing("hum") {
		t.Fatal("PlayOnAttach did not start the loop")
	}
	ecs.AddComponent(m.Create(), NewSoundEmitter(sm, "beep", false)).Trigger()
	if got := sm.Active(); got != 2 {
		t.Fatalf("Active = %d; want 2", got)
	}

	e.Destroy()
	m.Refresh()
	if sm.Playing("hum") {
		t.Fatal("loop still playing after its entity was dropped")
	}
}

func TestSoundEmitterStopsOnRemove(t *testing.T) {
	sm := sound.NewManager()
	sm.Register("hum", sound.Sweep(80, 200, time.Second))
	m := newManager()
	e := m.Create()
	ecs.AddComponent(e, NewSoundEmitter(sm, "hum", true).PlayOnAttach())

	ecs.RemoveComponent[*SoundEmitter](e)
	if !sm.Playing("hum") {
		t.Fatal("stopped before the entity compacted its storage")
	}
	m.Update()
	if sm.Playing("hum") {
		t.Fatal("loop still playing after the emitter was purged")
	}
}

func mustPanic(t *testing.T, what string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: no panic", what)
		}
	}()
	f()
}
