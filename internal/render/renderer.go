package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Renderer draws glyphs and text onto a tcell screen. Components hold a
// *Renderer and call it from their Draw2D hooks.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	sheets *Sheets
}

// NewRenderer creates a Renderer for the given screen and glyph cache.
func NewRenderer(screen tcell.Screen, sheets *Sheets) *Renderer {
	w, h := screen.Size()
	if sheets == nil {
		sheets = NewSheets()
	}
	return &Renderer{
		screen: screen,
		camera: NewCamera(w, h),
		sheets: sheets,
	}
}

// Screen returns the underlying tcell screen.
func (r *Renderer) Screen() tcell.Screen { return r.screen }

// Camera returns the camera used for world-space drawing.
func (r *Renderer) Camera() *Camera { return r.camera }

// Sheets returns the glyph cache.
func (r *Renderer) Sheets() *Sheets { return r.sheets }

// Size returns the screen size in cells.
func (r *Renderer) Size() (int, int) { return r.screen.Size() }

// Begin clears the screen and syncs the camera viewport with the screen size.
func (r *Renderer) Begin() {
	w, h := r.screen.Size()
	r.camera.Resize(w, h)
	r.screen.Clear()
}

// End presents the frame.
func (r *Renderer) End() { r.screen.Show() }

// DrawGlyph draws glyph at world position (wx, wy). It reports whether the
// glyph landed inside the viewport.
func (r *Renderer) DrawGlyph(wx, wy float32, glyph string, style tcell.Style) bool {
	sx, sy, visible := r.camera.WorldToScreen(wx, wy)
	if !visible {
		return false
	}
	r.PutGlyph(sx, sy, glyph, style)
	return true
}

// DrawText writes text starting at world position (wx, wy).
func (r *Renderer) DrawText(wx, wy float32, text string, style tcell.Style) {
	sx, sy, _ := r.camera.WorldToScreen(wx, wy)
	r.PutText(sx, sy, text, style)
}

// PutText writes text at screen cell (x, y), advancing by each rune's width.
// It returns the number of columns used.
func (r *Renderer) PutText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		w := runewidth.RuneWidth(ch)
		if w < 1 {
			w = 1
		}
		col += w
	}
	return col - x
}

// PutGlyph draws a single glyph (ASCII or multi-rune emoji) at screen
// position (x, y) and returns its width in columns.
func (r *Renderer) PutGlyph(x, y int, glyph string, style tcell.Style) int {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return 0
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	w := runewidth.StringWidth(glyph)
	if w == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
	if w < 1 {
		w = 1
	}
	return w
}

// GlyphWidth returns the display width of glyph in columns.
func GlyphWidth(glyph string) int { return runewidth.StringWidth(glyph) }
