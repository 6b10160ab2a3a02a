package render

import (
	"math"

	"github.com/golang/geo/r2"
)

// Camera is a top-down viewport: world +X is screen right and world +Y is screen down
type Camera struct {
	Center  r2.Point // world position at the middle of the screen
	Zoom    float64  // screen pixels per world unit
	MinZoom float64
	MaxZoom float64
	ScreenW int
	ScreenH int
	Speed   float64 // pan speed (pixels per second)
}

// NewCamera creates a camera centred on the middle of a world of the given size
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Center:  r2.Point{X: float64(screenW) / 2, Y: float64(screenH) / 2},
		Zoom:    1.0,
		MinZoom: 0.25,
		MaxZoom: 4.0,
		ScreenW: screenW,
		ScreenH: screenH,
		Speed:   500,
	}
}

// Pan moves the camera by pixel delta
func (c *Camera) Pan(dx, dy float64) {
	c.Center.X += dx / c.Zoom
	c.Center.Y += dy / c.Zoom
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt zooms keeping the world point under the given screen point fixed
func (c *Camera) ZoomAt(delta float64, screenX, screenY int) {
	before := c.ScreenToWorld(screenX, screenY)
	c.SetZoom(c.Zoom + delta)
	after := c.ScreenToWorld(screenX, screenY)
	c.Center = c.Center.Add(before.Sub(after))
}

// WorldToScreen converts a world position to screen pixels
func (c *Camera) WorldToScreen(p r2.Point) (float32, float32) {
	sx := (p.X-c.Center.X)*c.Zoom + float64(c.ScreenW)/2
	sy := (p.Y-c.Center.Y)*c.Zoom + float64(c.ScreenH)/2
	return float32(sx), float32(sy)
}

// ScreenToWorld converts a screen pixel to a world position
func (c *Camera) ScreenToWorld(sx, sy int) r2.Point {
	return r2.Point{
		X: (float64(sx)-float64(c.ScreenW)/2)/c.Zoom + c.Center.X,
		Y: (float64(sy)-float64(c.ScreenH)/2)/c.Zoom + c.Center.Y,
	}
}

// Visible returns the world rectangle on screen
func (c *Camera) Visible() r2.Rect {
	return r2.RectFromPoints(c.ScreenToWorld(0, 0), c.ScreenToWorld(c.ScreenW, c.ScreenH))
}
