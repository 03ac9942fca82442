package primitives

// Light is the single directional light plus ambient term used by the lit shaders.
type Light struct {
	// Direction points from the scene towards the light. It need not be normalized.
	Direction [3]float32
	Color     [3]float32
	Ambient   [4]float32
	Intensity float32
}

// DefaultLight is a soft warm-white key light from above-right with a dim cool ambient, close to
// an ambient light plus one directional light at (1, 1, 1).
var DefaultLight = Light{
	Direction: [3]float32{1, 1, 1},
	Color:     [3]float32{1.0, 0.98, 0.95},
	Ambient:   [4]float32{0.2, 0.22, 0.26, 1.0},
	Intensity: 0.75,
}
