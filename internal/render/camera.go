package render

import "math"

// Camera translates between world coordinates and screen cells.
// One world unit is ColumnsPerUnit terminal columns wide and one row tall,
// so a two-column emoji occupies exactly one unit at the default of 2.
type Camera struct {
	OffsetX        float32
	OffsetY        float32
	ViewWidth      int // in terminal columns
	ViewHeight     int // in terminal rows
	ColumnsPerUnit int
}

// NewCamera creates a camera with its top-left corner at the world origin.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH, ColumnsPerUnit: 2}
}

// Center repositions the camera so that world position (cx, cy) is in the middle.
func (c *Camera) Center(cx, cy float32) {
	c.OffsetX = cx - float32(c.ViewWidth/c.cols())/2
	c.OffsetY = cy - float32(c.ViewHeight)/2
}

// Resize updates the viewport size, keeping the offset.
func (c *Camera) Resize(viewW, viewH int) {
	c.ViewWidth, c.ViewHeight = viewW, viewH
}

// WorldToScreen converts world (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy int, visible bool) {
	sx = int(math.Floor(float64(wx-c.OffsetX))) * c.cols()
	sy = int(math.Floor(float64(wy - c.OffsetY)))
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) (float32, float32) {
	return float32(sx/c.cols()) + c.OffsetX, float32(sy) + c.OffsetY
}

func (c *Camera) cols() int {
	if c.ColumnsPerUnit <= 0 {
		return 1
	}
	return c.ColumnsPerUnit
}
