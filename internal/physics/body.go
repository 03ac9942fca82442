package physics

// Target is the object the controller moves. The renderer owns the position; the controller only
// reads it and writes it back once per tick.
type Target interface {
	Position() Vec3
	SetPosition(Vec3)
}

// Body is a bare Target with no renderer behind it. Scenes that do not draw anything (tests,
// headless runs) move a Body directly.
type Body struct {
	Pos Vec3
}

// NewBody returns a body at position.
func NewBody(position Vec3) *Body {
	return &Body{Pos: position}
}

// Position returns the body's current position.
func (b *Body) Position() Vec3 {
	return b.Pos
}

// SetPosition moves the body.
func (b *Body) SetPosition(p Vec3) {
	b.Pos = p
}
