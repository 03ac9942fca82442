package physics

// Frustum is the left/right/top/bottom extent of an orthographic projection in world units.
type Frustum struct {
	Left, Right, Top, Bottom float32
}

// Boundaries is the rectangle an object's centre is clamped to.
type Boundaries struct {
	Left, Right, Top, Bottom float32
}

// ComputeBoundaries insets every edge of f by halfExtent+buffer so the whole object, plus a
// margin, stays inside the visible area. When the inset would cross an axis over, that axis
// collapses onto its centre line.
func ComputeBoundaries(f Frustum, halfExtent, buffer float32) Boundaries {
	inset := halfExtent + buffer
	b := Boundaries{
		Left:   f.Left + inset,
		Right:  f.Right - inset,
		Top:    f.Top - inset,
		Bottom: f.Bottom + inset,
	}
	if b.Left > b.Right {
		mid := (f.Left + f.Right) / 2
		b.Left, b.Right = mid, mid
	}
	if b.Bottom > b.Top {
		mid := (f.Top + f.Bottom) / 2
		b.Bottom, b.Top = mid, mid
	}
	return b
}

// Valid reports whether the rectangle has positive width and height.
func (b Boundaries) Valid() bool {
	return b.Left < b.Right && b.Bottom < b.Top
}

// Contains reports whether p lies inside the rectangle, edges included.
func (b Boundaries) Contains(p Vec3) bool {
	return p.X >= b.Left && p.X <= b.Right && p.Y >= b.Bottom && p.Y <= b.Top
}

// clamp pulls p back inside b and zeroes each velocity component whose axis was clamped.
// Axes are independent, so a corner hit zeroes both.
func (b Boundaries) clamp(p, v Vec3) (Vec3, Vec3) {
	if p.X < b.Left {
		p.X = b.Left
		v.X = 0
	} else if p.X > b.Right {
		p.X = b.Right
		v.X = 0
	}
	if p.Y < b.Bottom {
		p.Y = b.Bottom
		v.Y = 0
	} else if p.Y > b.Top {
		p.Y = b.Top
		v.Y = 0
	}
	return p, v
}
