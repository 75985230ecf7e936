package render

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestScreenWorldConversion(t *testing.T) {
	c := NewCamera(1280, 720)
	c.CenterOn(500, 400)
	c.Zoom = 2

	sx, sy := c.WorldToScreen(520, 390)
	if !near(sx, 680) || !near(sy, 340) {
		t.Fatalf("expected (680,340), got (%g,%g)", sx, sy)
	}
	wx, wy := c.ScreenToWorld(680, 340)
	if !near(wx, 520) || !near(wy, 390) {
		t.Fatalf("expected (520,390), got (%g,%g)", wx, wy)
	}
}

func TestClampToMap(t *testing.T) {
	c := NewCamera(1280, 720)
	c.SetMapBounds(3200, 2400)

	c.CenterOn(0, 0)
	if c.X != 640 || c.Y != 360 {
		t.Fatalf("expected clamp to (640,360), got (%g,%g)", c.X, c.Y)
	}
	c.Pan(1e6, 1e6)
	if c.X != 2560 || c.Y != 2040 {
		t.Fatalf("expected clamp to (2560,2040), got (%g,%g)", c.X, c.Y)
	}

	c.SetMapBounds(800, 600)
	if c.X != 400 || c.Y != 300 {
		t.Fatalf("expected a small map to be centred, got (%g,%g)", c.X, c.Y)
	}
}

func TestZoomAtKeepsPointUnderCursor(t *testing.T) {
	c := NewCamera(1280, 720)
	c.SetMapBounds(10000, 10000)
	c.CenterOn(5000, 5000)

	before1, before2 := c.ScreenToWorld(100, 100)
	c.ZoomAt(1, 100, 100)
	if c.Zoom != 2 {
		t.Fatalf("expected zoom 2, got %g", c.Zoom)
	}
	after1, after2 := c.ScreenToWorld(100, 100)
	if !near(before1, after1) || !near(before2, after2) {
		t.Fatalf("expected (%g,%g) to stay put, got (%g,%g)", before1, before2, after1, after2)
	}

	c.SetZoom(10)
	if c.Zoom != c.MaxZoom {
		t.Fatalf("expected zoom clamped to %g, got %g", c.MaxZoom, c.Zoom)
	}
}
