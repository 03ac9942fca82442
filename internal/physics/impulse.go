package physics

// Viewport is the size of the render surface in pixels.
type Viewport struct {
	Width, Height float32
}

// Projector casts a world-space ray through a point given in normalized device coordinates
// (both axes in [-1, 1], +Y up).
type Projector interface {
	Ray(ndcX, ndcY float32) Ray
}

// ScreenToNDC maps pixel coordinates (origin top-left, +Y down) to normalized device
// coordinates. Points outside the viewport map outside [-1, 1] and are not rejected.
func ScreenToNDC(x, y float32, vp Viewport) (float32, float32) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return 0, 0
	}
	return x/vp.Width*2 - 1, -(y/vp.Height)*2 + 1
}

// upward is used when the object sits exactly on the click point and there is nothing to push
// away from.
var upward = Vec3{Y: 1}

// ImpulseDirection returns the unit direction from click to obj, perturbed on X and Y by
// independent uniform offsets in [-jitter, jitter] and renormalized. rng may be nil for no
// jitter.
func ImpulseDirection(obj, click Vec3, jitter float32, rng Rand) Vec3 {
	dir, ok := obj.Sub(click).Normalize()
	if !ok {
		dir = upward
	}
	if rng != nil && jitter > 0 {
		dir.X += (rng.Float32() - 0.5) * 2 * jitter
		dir.Y += (rng.Float32() - 0.5) * 2 * jitter
	}
	if d, ok := dir.Normalize(); ok {
		return d
	}
	return upward
}

// Click handles a pointer press at pixel (x, y). The click is projected onto the target's z plane,
// the jittered direction away from it becomes the impulse's X velocity, and Y is set to the
// configured launch speed. It reports false and changes nothing while there is no target.
func (c *Controller) Click(x, y float32, vp Viewport, proj Projector) bool {
	if c.target == nil || proj == nil {
		return false
	}
	obj := c.target.Position()
	ndcX, ndcY := ScreenToNDC(x, y, vp)
	click := proj.Ray(ndcX, ndcY).IntersectZ(obj.Z)
	dir := ImpulseDirection(obj, click, c.opts.Jitter, c.opts.Rand)
	c.activate(Vec3{X: dir.X, Y: c.opts.LaunchY})
	return true
}
