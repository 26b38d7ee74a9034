package component

import (
	"fmt"

	"gametemple/internal/ecs"
	"gametemple/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Sprite draws one frame of a glyph sheet at the entity's Position, in
// the entity's Color when it has one.
type Sprite struct {
	ecs.Base
	r      *render.Renderer
	sheet  string
	index  int
	hidden bool
	pos    *Position
	color  *Color
}

// NewSprite returns a Sprite drawing sheet. It panics if the sheet is not
// loaded.
func NewSprite(r *render.Renderer, sheet string) *Sprite {
	if !r.Sheets().Has(sheet) {
		panic(fmt.Sprintf("component: sprite sheet %q is not loaded", sheet))
	}
	return &Sprite{r: r, sheet: sheet}
}

func (s *Sprite) Initialize() {
	e := s.Entity()
	if !ecs.HasComponent[*Position](e) {
		ecs.AddComponent(e, NewPosition(0, 0))
	}
	s.pos = ecs.GetComponent[*Position](e)
	if ecs.HasComponent[*Color](e) {
		s.color = ecs.GetComponent[*Color](e)
	}
}

// SetIndex selects the frame to draw.
func (s *Sprite) SetIndex(i int) *Sprite {
	if n := s.Frames(); i < 0 || i >= n {
		panic(fmt.Sprintf("component: sprite %q frame %d out of range (%d frames)", s.sheet, i, n))
	}
	s.index = i
	return s
}

// Index returns the current frame.
func (s *Sprite) Index() int { return s.index }

// Frames returns the number of frames in the sheet.
func (s *Sprite) Frames() int { return s.r.Sheets().Len(s.sheet) }

// Glyph returns the current frame's glyph.
func (s *Sprite) Glyph() string { return s.r.Sheets().Frame(s.sheet, s.index) }

func (s *Sprite) Show()         { s.hidden = false }
func (s *Sprite) Hide()         { s.hidden = true }
func (s *Sprite) Visible() bool { return !s.hidden }

func (s *Sprite) Draw2D() {
	if s.hidden {
		return
	}
	s.r.DrawGlyph(s.pos.Val.X(), s.pos.Val.Y(), s.Glyph(), styleOf(s.color))
}

// Animator advances its entity's Sprite one frame every Every ticks,
// wrapping at the end of the sheet.
type Animator struct {
	ecs.Base
	every  int
	count  int
	paused bool
	sprite *Sprite
}

// NewAnimator returns an Animator stepping every n ticks. n below 1 means 1.
func NewAnimator(n int) *Animator {
	return &Animator{every: max(n, 1)}
}

func (a *Animator) Initialize() {
	a.sprite = ecs.GetComponent[*Sprite](a.Entity())
}

func (a *Animator) Pause()  { a.paused = true }
func (a *Animator) Resume() { a.paused = false }

func (a *Animator) Update() {
	if a.paused {
		return
	}
	a.count++
	if a.count < a.every {
		return
	}
	a.count = 0
	a.sprite.index = (a.sprite.index + 1) % a.sprite.Frames()
}

// Label draws text at the entity's Position. Screen labels ignore the
// camera and treat Position as a cell.
type Label struct {
	ecs.Base
	r      *render.Renderer
	Text   string
	Screen bool
	pos    *Position
	color  *Color
}

// NewLabel returns a world-space Label.
func NewLabel(r *render.Renderer, text string) *Label {
	return &Label{r: r, Text: text}
}

func (l *Label) Initialize() {
	e := l.Entity()
	if !ecs.HasComponent[*Position](e) {
		ecs.AddComponent(e, NewPosition(0, 0))
	}
	l.pos = ecs.GetComponent[*Position](e)
	if ecs.HasComponent[*Color](e) {
		l.color = ecs.GetComponent[*Color](e)
	}
}

func (l *Label) Draw2D() {
	x, y := l.pos.Val.X(), l.pos.Val.Y()
	if l.Screen {
		l.r.PutText(int(x), int(y), l.Text, styleOf(l.color))
		return
	}
	l.r.DrawText(x, y, l.Text, styleOf(l.color))
}

func styleOf(c *Color) tcell.Style {
	if c == nil || !c.IsActive() {
		return tcell.StyleDefault
	}
	return c.Style()
}
