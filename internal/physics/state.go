package physics

// MotionState is the controller's current phase. Exactly one holds at a time.
type MotionState uint8

const (
	Idle MotionState = iota
	ImpulseActive
	Falling
)

func (s MotionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case ImpulseActive:
		return "impulse"
	case Falling:
		return "falling"
	default:
		return "unknown"
	}
}
