package physics

import "github.com/chewxy/math32"

// Vec3 is a float32 3-vector. Only X and Y take part in motion; Z is carried through untouched.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + u.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z}
}

// Sub returns v - u.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{v.X - u.X, v.Y - u.Y, v.Z - u.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and u.
func (v Vec3) Dot(u Vec3) float32 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		v.Y*u.Z - v.Z*u.Y,
		v.Z*u.X - v.X*u.Z,
		v.X*u.Y - v.Y*u.X,
	}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length and true, or the zero vector and false when v has no
// usable length.
func (v Vec3) Normalize() (Vec3, bool) {
	l := v.Len()
	if l < minLength || math32.IsNaN(l) || math32.IsInf(l, 0) {
		return Vec3{}, false
	}
	return v.Scale(1 / l), true
}

// minLength is the shortest vector Normalize will scale.
const minLength = 1e-6

// Ray is a half-line in world space. Dir is expected to be unit length.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// IntersectZ returns where r crosses the plane z = planeZ. A ray parallel to the plane has no
// crossing, so its origin is returned instead.
func (r Ray) IntersectZ(planeZ float32) Vec3 {
	if math32.Abs(r.Dir.Z) < minLength {
		return r.Origin
	}
	t := (planeZ - r.Origin.Z) / r.Dir.Z
	return r.At(t)
}
