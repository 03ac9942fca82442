// Package tint animates the object's colour. A click picks a new random colour and the current
// one eases towards it instead of snapping.
package tint

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultDuration is how long a colour change takes, in seconds.
const DefaultDuration = float32(0.35)

// Rand is the uniform [0,1) source used by Random. *math/rand.Rand satisfies it.
type Rand interface {
	Float32() float32
}

// Tint is an RGB colour with components in [0, 255] that can ease towards a target.
type Tint struct {
	rgb    [3]float32
	tweens [3]*gween.Tween
	Done   bool
}

// New returns a settled tint.
func New(r, g, b uint8) *Tint {
	return &Tint{rgb: [3]float32{float32(r), float32(g), float32(b)}, Done: true}
}

// To starts easing from the current colour to (r, g, b) over duration seconds. A non-positive
// duration sets the colour at once.
func (t *Tint) To(r, g, b uint8, duration float32) {
	to := [3]float32{float32(r), float32(g), float32(b)}
	if duration <= 0 {
		t.rgb = to
		t.tweens = [3]*gween.Tween{}
		t.Done = true
		return
	}
	for i := range t.tweens {
		t.tweens[i] = gween.New(t.rgb[i], to[i], duration, ease.OutQuad)
	}
	t.Done = false
}

// Random eases to a uniformly random colour and returns it.
func (t *Tint) Random(rng Rand, duration float32) (r, g, b uint8) {
	r = uint8(rng.Float32() * 256)
	g = uint8(rng.Float32() * 256)
	b = uint8(rng.Float32() * 256)
	t.To(r, g, b, duration)
	return r, g, b
}

// Update advances the easing by dt seconds.
func (t *Tint) Update(dt float32) {
	if t.Done {
		return
	}
	done := true
	for i, tw := range t.tweens {
		if tw == nil {
			continue
		}
		v, finished := tw.Update(dt)
		t.rgb[i] = v
		if !finished {
			done = false
		}
	}
	t.Done = done
}

// RGB returns the current colour, rounded to the nearest component value.
func (t *Tint) RGB() (r, g, b uint8) {
	return toByte(t.rgb[0]), toByte(t.rgb[1]), toByte(t.rgb[2])
}

func toByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
