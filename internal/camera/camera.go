// Package camera is the orthographic camera the scene is viewed through. It holds only the
// numbers; the scene turns it into an rl.Camera3D for drawing.
package camera

import (
	"impulse-scene/internal/physics"
)

// DefaultFrustumSize is the visible world height at zoom 1.
const DefaultFrustumSize = float32(20)

// Ortho is an orthographic camera whose horizontal extent follows the viewport's aspect ratio.
type Ortho struct {
	Position physics.Vec3
	Target   physics.Vec3
	Up       physics.Vec3

	// FrustumSize is the world height shown at Zoom 1.
	FrustumSize float32
	// Zoom > 1 magnifies. Zero is treated as 1.
	Zoom float32

	left, right, top, bottom float32
	width, height            float32
}

// New returns a camera at (0, 0, z) looking at the origin with +Y up, sized for a width×height
// viewport.
func New(frustumSize, z float32, width, height int) *Ortho {
	if frustumSize <= 0 {
		frustumSize = DefaultFrustumSize
	}
	c := &Ortho{
		Position:    physics.Vec3{Z: z},
		Up:          physics.Vec3{Y: 1},
		FrustumSize: frustumSize,
		Zoom:        1,
	}
	c.Resize(width, height)
	return c
}

// Resize recomputes the projection bounds for a new viewport size. Non-positive sizes are
// ignored so a minimized window keeps the last good projection.
func (c *Ortho) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = float32(width), float32(height)
	aspect := c.width / c.height
	c.left = -c.FrustumSize * aspect / 2
	c.right = c.FrustumSize * aspect / 2
	c.top = c.FrustumSize / 2
	c.bottom = -c.FrustumSize / 2
}

// Viewport returns the size last passed to Resize.
func (c *Ortho) Viewport() physics.Viewport {
	return physics.Viewport{Width: c.width, Height: c.height}
}

func (c *Ortho) zoom() float32 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// Frustum returns the visible extent around the camera axis, with zoom applied.
func (c *Ortho) Frustum() physics.Frustum {
	z := c.zoom()
	return physics.Frustum{
		Left:   c.left / z,
		Right:  c.right / z,
		Top:    c.top / z,
		Bottom: c.bottom / z,
	}
}

// Height returns the visible world height with zoom applied.
func (c *Ortho) Height() float32 {
	f := c.Frustum()
	return f.Top - f.Bottom
}

// basis returns the camera's forward, right and up unit vectors. A degenerate setup falls back
// to looking down -Z with +Y up.
func (c *Ortho) basis() (forward, right, up physics.Vec3) {
	forward, ok := c.Target.Sub(c.Position).Normalize()
	if !ok {
		forward = physics.Vec3{Z: -1}
	}
	right, ok = forward.Cross(c.Up).Normalize()
	if !ok {
		right = physics.Vec3{X: 1}
	}
	up = right.Cross(forward)
	return forward, right, up
}

// Ray casts through a point in normalized device coordinates. In an orthographic projection every
// ray shares the camera's forward direction; only the origin moves across the near plane.
func (c *Ortho) Ray(ndcX, ndcY float32) physics.Ray {
	forward, right, up := c.basis()
	f := c.Frustum()
	x := f.Left + (ndcX+1)/2*(f.Right-f.Left)
	y := f.Bottom + (ndcY+1)/2*(f.Top-f.Bottom)
	origin := c.Position.Add(right.Scale(x)).Add(up.Scale(y))
	return physics.Ray{Origin: origin, Dir: forward}
}

// ScreenToWorld projects a pixel onto the plane z = planeZ.
func (c *Ortho) ScreenToWorld(x, y, planeZ float32) physics.Vec3 {
	ndcX, ndcY := physics.ScreenToNDC(x, y, c.Viewport())
	return c.Ray(ndcX, ndcY).IntersectZ(planeZ)
}
