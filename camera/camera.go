// Package camera provides the 2D viewport onto the simulation world.
package camera

// Camera maps between world and screen coordinates. The world is
// bounded, so pan and zoom keep the visible area inside it.
type Camera struct {
	X, Y float32 // center, world coordinates
	Zoom float32 // 1.0 = 1:1, 2.0 = 2x magnification

	ViewportW, ViewportH float32
	WorldW, WorldH       float32

	MinZoom, MaxZoom float32
}

// New creates a camera centered on the world at 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	return &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   fitZoom(viewportW, viewportH, worldW, worldH),
		MaxZoom:   4.0,
	}
}

// fitZoom is the smallest zoom at which the visible area still fits
// inside the world on both axes.
func fitZoom(viewportW, viewportH, worldW, worldH float32) float32 {
	z := viewportW / worldW
	if zy := viewportH / worldH; zy > z {
		z = zy
	}
	return z
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	return c.ViewportW/2 + (wx-c.X)*c.Zoom, c.ViewportH/2 + (wy-c.Y)*c.Zoom
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	return c.X + (sx-c.ViewportW/2)/c.Zoom, c.Y + (sy-c.ViewportH/2)/c.Zoom
}

// IsVisible reports whether a circle at (wx, wy) could appear on
// screen. Conservative, used for render culling.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Pan moves the camera by a screen-pixel delta. The view stops at the
// world edges.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to the min/max range. Zooming
// out can push the view past a world edge, so the center is re-clamped.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset recenters the camera at 1:1 zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1.0
	c.clampCenter()
}

// clampCenter keeps the visible area inside the world. MinZoom
// guarantees the visible extent never exceeds the world, so the clamp
// range is always valid.
func (c *Camera) clampCenter() {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	c.X = clamp(c.X, halfW, c.WorldW-halfW)
	c.Y = clamp(c.Y, halfH, c.WorldH-halfH)
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
