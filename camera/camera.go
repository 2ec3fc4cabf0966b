// Package camera provides the viewport into the world grid when the terminal
// is smaller than the world.
package camera

// Camera controls which cells of the world are on screen. All coordinates
// are in cells; the world is bounded, so the view is clamped to its edges.
type Camera struct {
	// Position is the camera center in world cells
	X, Y int

	// Viewport dimensions in cells
	ViewportW, ViewportH int

	// World dimensions in cells
	WorldW, WorldH int
}

// New creates a camera centered on the world.
func New(viewportW, viewportH, worldW, worldH int) *Camera {
	c := &Camera{
		ViewportW: max(1, viewportW),
		ViewportH: max(1, viewportH),
		WorldW:    worldW,
		WorldH:    worldH,
	}
	c.Reset()
	return c
}

// Origin returns the world cell shown in the top-left corner of the viewport.
// Along an axis where the whole world fits, the origin is 0.
func (c *Camera) Origin() (x, y int) {
	return origin(c.X, c.ViewportW, c.WorldW), origin(c.Y, c.ViewportH, c.WorldH)
}

// origin clamps the view start so it never shows cells beyond the world.
func origin(center, view, world int) int {
	if view >= world {
		return 0
	}
	return clamp(center-view/2, 0, world-view)
}

// WorldToScreen converts a world cell to a viewport cell and reports whether
// it is visible.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	ox, oy := c.Origin()
	sx, sy = wx-ox, wy-oy
	visible = sx >= 0 && sx < c.ViewportW && sy >= 0 && sy < c.ViewportH
	return sx, sy, visible
}

// ScreenToWorld converts a viewport cell to a world cell.
func (c *Camera) ScreenToWorld(sx, sy int) (wx, wy int) {
	ox, oy := c.Origin()
	return sx + ox, sy + oy
}

// Follow centers the camera on a world cell.
func (c *Camera) Follow(wx, wy int) {
	c.X = clamp(wx, 0, max(0, c.WorldW-1))
	c.Y = clamp(wy, 0, max(0, c.WorldH-1))
}

// Resize updates the viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH int) {
	c.ViewportW = max(1, viewportW)
	c.ViewportH = max(1, viewportH)
}

// Reset returns the camera to the world center.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
}

// VisibleWorldBounds returns the visible world cells as a half-open
// rectangle [minX, maxX) x [minY, maxY).
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY int) {
	minX, minY = c.Origin()
	maxX = min(minX+c.ViewportW, c.WorldW)
	maxY = min(minY+c.ViewportH, c.WorldH)
	return
}

// clamp restricts a value to a range.
func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
