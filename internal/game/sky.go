package game

import (
	"fmt"
	"math/rand"
	"time"

	"gametemple/internal/component"
	"gametemple/internal/ecs"
	"gametemple/internal/factory"
	"gametemple/internal/sound"

	"github.com/gdamore/tcell/v2"
)

const (
	walkSpeed float32 = 0.5
	jumpSpeed float32 = -0.9
	blockLife         = 90 // ticks
)

// landed tags the one-shot EventFunc that plays a block's landing sound.
type landed struct{}

// Sky is the demo scene: a floor under a starry sky where the player walks,
// jumps and drops crates that fall, land and expire.
type Sky struct {
	rng    *rand.Rand
	width  int // world units
	floorY int
	floor  []*ecs.Entity
	blocks []ecs.Handle
	player *ecs.Entity
	body   *component.Physics
	hud    *component.Label
}

// NewSky returns an unbuilt Sky scene.
func NewSky() *Sky { return &Sky{} }

func (s *Sky) Build(g *Game) {
	cfg := g.Config()
	s.rng = rand.New(rand.NewSource(cfg.Seed))

	r := g.Renderer()
	sheets := r.Sheets()
	sheets.Load("star", "·", "✦", "✧", "✦")
	sheets.Load("ground", "🟫")
	sheets.Load("player", "🧍", "🏃")
	sheets.Load("crate", "📦")

	sm := g.Sound()
	sm.Register("wind", sound.Sweep(60, 140, 4*time.Second))
	sm.Register("drop", sound.Tone(660, 80*time.Millisecond))
	sm.Register("land", sound.Crackle(60*time.Millisecond, cfg.Seed))

	m := g.Manager()
	w, h := r.Size()
	s.width = max(w/r.Camera().ColumnsPerUnit, 8)
	s.floorY = max(h-2, 4)

	for i := 0; i < s.width*s.floorY/12; i++ {
		x, y := float32(s.rng.Intn(s.width)), float32(s.rng.Intn(s.floorY-1))
		factory.CreateAnimated(m, r, "star", x, y, tcell.ColorGray, factory.LayerBackground, 8+s.rng.Intn(16))
	}

	wind := m.CreateNamed("wind")
	ecs.AddComponent(wind, component.NewSoundEmitter(sm, "wind", true).PlayOnAttach())

	for x := 0; x < s.width; x++ {
		s.floor = append(s.floor, factory.CreateSprite(m, r, "ground", float32(x), float32(s.floorY), tcell.ColorMaroon, factory.Layer1))
	}

	p := factory.CreateSprite(m, r, "player", float32(s.width/2), float32(s.floorY-1), tcell.ColorYellow, factory.Layer2)
	ecs.AddComponent(p, &component.Direction{})
	s.body = ecs.AddComponent(p, &component.Physics{}).SetHitFunc(component.BoxHit(1, 1))
	for _, f := range s.floor {
		s.body.AddSolid(f)
	}
	ecs.AddComponent(p, component.NewOnUpdate(func(e *ecs.Entity) { s.steer(g, e) }))

	tag := factory.CreatePlain(m, 0, -1, factory.LayerUI)
	ecs.AddComponent(tag, component.NewColor(tcell.ColorWhite))
	ecs.AddComponent(tag, component.NewLabel(r, cfg.PlayerName))
	ecs.AddComponent(p, &component.Canvas{}).AddChild(tag)
	s.player = p

	s.hud = ecs.GetComponent[*component.Label](factory.CreateLabel(m, r, "", 0, 0, tcell.ColorGreen))
	factory.CreateLabel(m, r, "←/→ move  space jump  z drop  q quit", 0, s.floorY+1, tcell.ColorGray)
}

func (s *Sky) Update(g *Game) {
	if g.Pressed(ActionQuit) {
		g.Quit()
		return
	}
	if g.Pressed(ActionDrop) {
		s.drop(g)
	}
	s.hud.Text = fmt.Sprintf("tick %d  entities %d  dropped %d", g.Ticks(), g.Manager().Len(), g.Stats().Spawned)
}

// steer runs as the player's EventFunc, after its Physics step.
func (s *Sky) steer(g *Game, e *ecs.Entity) {
	dir := ecs.GetComponent[*component.Direction](e)
	sprite := ecs.GetComponent[*component.Sprite](e)
	pos := ecs.GetComponent[*component.Position](e)

	v := s.body.Velocity()
	v[0] = 0
	for _, a := range []Action{ActionMoveLeft, ActionMoveRight} {
		if g.Held(a) {
			v[0] += actionToDelta(a) * walkSpeed
		}
	}
	switch {
	case v[0] < 0:
		dir.Val = component.DirLeft
	case v[0] > 0:
		dir.Val = component.DirRight
	}
	// Physics zeroes vertical velocity when the floor stops it.
	if g.Pressed(ActionJump) && v[1] == 0 {
		v[1] = jumpSpeed
	}
	s.body.SetVelocity(v[0], v[1])

	if v[0] != 0 {
		sprite.SetIndex(1)
	} else {
		sprite.SetIndex(0)
	}
	pos.Val[0] = min(max(pos.Val[0], 0), float32(s.width-1))
}

// drop spawns a crate at the top of the sky, one unit ahead of the player.
func (s *Sky) drop(g *Game) {
	m := g.Manager()
	pos := ecs.GetComponent[*component.Position](s.player).Val
	x := pos.X() + 1
	if ecs.GetComponent[*component.Direction](s.player).Val == component.DirLeft {
		x = pos.X() - 1
	}
	x = min(max(float32(int(x)), 0), float32(s.width-1))

	c := factory.CreateFalling(m, g.Renderer(), "crate", x, 0, tcell.ColorOrange, blockLife)
	body := ecs.GetComponent[*component.Physics](c).SetHitFunc(component.BoxHit(1, 1))
	for _, f := range s.floor {
		body.AddSolid(f)
	}
	live := s.blocks[:0]
	for _, h := range s.blocks {
		if b, ok := m.Resolve(h); ok && b.IsActive() {
			body.AddSolid(b)
			live = append(live, h)
		}
	}
	s.blocks = append(live, c.Handle())
	s.body.AddSolid(c)

	ecs.AddComponent(c, component.NewSoundEmitter(g.Sound(), "drop", false)).Trigger()
	ecs.AddComponent(c, component.NewEventFunc[landed](func(e *ecs.Entity) {
		if ecs.GetComponent[*component.Velocity](e).Val.Y() != 0 {
			return
		}
		g.Sound().Play("land", false)
		ecs.RemoveComponent[*component.EventFunc[landed]](e)
	}))
	g.countSpawn()
}
