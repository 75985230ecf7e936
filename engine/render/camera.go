package render

import "math"

// Camera is the viewport into the top-down world. X and Y are the world
// position shown at the centre of the screen.
type Camera struct {
	X, Y       float64
	Zoom       float64 // 1.0 = one world pixel per screen pixel
	MinZoom    float64
	MaxZoom    float64
	ScreenW    int
	ScreenH    int
	Speed      float64 // pan speed (screen pixels per second)
	EdgeScroll bool
	EdgeSize   int // edge scroll trigger zone in pixels

	// Map size in world pixels; zero disables clamping
	MapWidth  int
	MapHeight int
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:       1.0,
		MinZoom:    0.25,
		MaxZoom:    2.0,
		ScreenW:    screenW,
		ScreenH:    screenH,
		Speed:      900,
		EdgeScroll: true,
		EdgeSize:   8,
	}
}

// SetMapBounds sets the map size for camera clamping
func (c *Camera) SetMapBounds(w, h int) {
	c.MapWidth = w
	c.MapHeight = h
	c.clamp()
}

// Pan moves the camera by a screen-pixel delta
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clamp()
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
	c.clamp()
}

// ZoomAt zooms keeping the world point under (screenX, screenY) in place
func (c *Camera) ZoomAt(delta float64, screenX, screenY int) {
	wx, wy := c.ScreenToWorld(screenX, screenY)
	c.SetZoom(c.Zoom + delta)
	wx2, wy2 := c.ScreenToWorld(screenX, screenY)
	c.X += wx - wx2
	c.Y += wy - wy2
	c.clamp()
}

// CenterOn centers the camera on a world position
func (c *Camera) CenterOn(wx, wy float64) {
	c.X, c.Y = wx, wy
	c.clamp()
}

// WorldToScreen converts a world position to screen pixels
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return (wx-c.X)*c.Zoom + float64(c.ScreenW)/2, (wy-c.Y)*c.Zoom + float64(c.ScreenH)/2
}

// ScreenToWorld converts a screen pixel to world coordinates
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	return (float64(sx)-float64(c.ScreenW)/2)/c.Zoom + c.X, (float64(sy)-float64(c.ScreenH)/2)/c.Zoom + c.Y
}

// VisibleRect returns the world rectangle on screen
func (c *Camera) VisibleRect() (x0, y0, x1, y1 float64) {
	hw, hh := c.halfView()
	return c.X - hw, c.Y - hh, c.X + hw, c.Y + hh
}

// Listener is where positional audio is heard from
func (c *Camera) Listener() (float64, float64) { return c.X, c.Y }

func (c *Camera) halfView() (float64, float64) {
	return float64(c.ScreenW) / 2 / c.Zoom, float64(c.ScreenH) / 2 / c.Zoom
}

// clamp keeps the view inside the map, centring maps smaller than the view
func (c *Camera) clamp() {
	if c.MapWidth <= 0 || c.MapHeight <= 0 {
		return
	}
	hw, hh := c.halfView()
	c.X = clampAxis(c.X, hw, float64(c.MapWidth))
	c.Y = clampAxis(c.Y, hh, float64(c.MapHeight))
}

func clampAxis(v, half, size float64) float64 {
	if 2*half >= size {
		return size / 2
	}
	return math.Max(half, math.Min(size-half, v))
}
