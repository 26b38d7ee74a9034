// Package game drives one scene on one tcell screen: it polls input,
// ticks the entity manager at a fixed rate and draws by layer.
package game

import (
	"context"
	"log"
	"time"

	"gametemple/internal/ecs"
	"gametemple/internal/factory"
	"gametemple/internal/input"
	"gametemple/internal/render"
	"gametemple/internal/sound"

	"github.com/gdamore/tcell/v2"
)

// Config holds the knobs the commands expose as flags.
type Config struct {
	TickRate   time.Duration // time between ticks
	Volume     float64       // master volume in [0, 1]
	Mute       bool          // never open the audio device
	KeyGrace   int           // ticks before an unrepeated key counts as released
	PlayerName string
	Seed       int64
	SaveLog    bool // append a SessionLog on exit
}

// DefaultConfig returns the settings used when no flag overrides them.
func DefaultConfig() Config {
	return Config{
		TickRate:   time.Second / 30,
		Volume:     0.8,
		KeyGrace:   input.DefaultGrace,
		PlayerName: "player",
		Seed:       time.Now().UnixNano(),
	}
}

// Scene builds the entities of one screen and runs its per-tick logic.
type Scene interface {
	// Build is called once, before the first tick.
	Build(g *Game)
	// Update runs every tick after input and before the entity update.
	Update(g *Game)
}

// Game is the top-level orchestrator of one session.
type Game struct {
	cfg      Config
	screen   tcell.Screen
	manager  *ecs.Manager
	renderer *render.Renderer
	sound    *sound.Manager
	keys     *input.Keyboard
	scene    Scene
	quit     bool
	stats    SessionLog
}

// New creates a Game on an initialized screen and builds scene.
// The audio device stays closed until the caller runs Sound().Start().
func New(screen tcell.Screen, cfg Config, scene Scene) *Game {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultConfig().TickRate
	}
	g := &Game{
		cfg:      cfg,
		screen:   screen,
		manager:  ecs.NewManager(ecs.NewRegistry()),
		renderer: render.NewRenderer(screen, render.NewSheets()),
		sound:    sound.NewManager(),
		keys:     input.NewKeyboard(cfg.KeyGrace),
		scene:    scene,
		stats:    SessionLog{Player: cfg.PlayerName, Started: time.Now()},
	}
	g.sound.SetVolume(cfg.Volume)
	scene.Build(g)
	return g
}

// Config returns the settings the game was created with.
func (g *Game) Config() Config { return g.cfg }

// Manager returns the entity manager the scene builds into.
func (g *Game) Manager() *ecs.Manager { return g.manager }

// Renderer returns the renderer drawable components draw through.
func (g *Game) Renderer() *render.Renderer { return g.renderer }

// Sound returns the sound manager; it is silent until Start succeeds.
func (g *Game) Sound() *sound.Manager { return g.sound }

// Keys returns the keyboard state, advanced once per Tick.
func (g *Game) Keys() *input.Keyboard { return g.keys }

// Ticks returns the number of completed ticks.
func (g *Game) Ticks() uint64 { return g.stats.Ticks }

// Stats returns the statistics gathered so far.
func (g *Game) Stats() SessionLog { return g.stats }

// Quit makes Run return after the current tick.
func (g *Game) Quit() { g.quit = true }

// Done reports whether Quit was called.
func (g *Game) Done() bool { return g.quit }

func (g *Game) countSpawn() { g.stats.Spawned++ }

// Tick advances the simulation by one step and draws the frame.
func (g *Game) Tick() {
	g.manager.Refresh()
	g.keys.Tick()
	g.scene.Update(g)
	g.manager.Update()

	g.renderer.Begin()
	g.manager.DrawByGroup(factory.LayerMax)
	g.renderer.End()
	g.sound.Discard(g.cfg.TickRate)

	g.stats.Ticks++
	g.stats.PeakEntities = max(g.stats.PeakEntities, g.manager.Len())
}

// HandleEvent feeds one screen event to the game.
func (g *Game) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.keys.Feed(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// Run ticks at the configured rate until ctx ends or the scene quits.
// The screen stays owned by the caller.
func (g *Game) Run(ctx context.Context) {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	go g.poll(events, done)
	defer func() {
		close(done)
		// Wake the poller if it is blocked in PollEvent.
		_ = g.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	ticker := time.NewTicker(g.cfg.TickRate)
	defer ticker.Stop()

	for !g.quit {
		select {
		case <-ctx.Done():
			g.finish()
			return
		case ev := <-events:
			g.HandleEvent(ev)
		case <-ticker.C:
			g.Tick()
		}
	}
	g.finish()
}

func (g *Game) poll(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case <-done:
			return
		default:
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (g *Game) finish() {
	g.stats.Duration = time.Since(g.stats.Started)
	g.manager.RemoveAll()
	log.Printf("session %q ended after %d ticks, %d spawned, peak %d entities",
		g.stats.Player, g.stats.Ticks, g.stats.Spawned, g.stats.PeakEntities)
	if g.cfg.SaveLog {
		saveSessionLog(g.stats)
	}
}
