package physics

import (
	"time"

	"impulse-scene/internal/schedule"
)

// Defaults: a unit cube, a 1.5 unit margin, one second of impulse and a
// 0.1 unit per tick fall.
const (
	DefaultHalfExtent      = float32(0.5)
	DefaultBuffer          = float32(1.5)
	DefaultFallStep        = float32(0.1)
	DefaultImpulseDuration = time.Second
	DefaultJitter          = float32(0.25)
	DefaultLaunchY         = float32(1)
	DefaultNudgeSpeed      = float32(0.1)
)

// landingEpsilon absorbs float32 drift from repeated FallStep subtraction so a fall that should
// land exactly on the floor does not need one extra tick.
const landingEpsilon = float32(1e-4)

// Clock reports the current time. Controller reads it once per Tick and once per Click.
type Clock interface {
	Now() time.Time
}

// WallClock is the Clock backed by time.Now.
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

// Rand is the uniform [0,1) source used for jitter and nudges. *math/rand.Rand satisfies it.
type Rand interface {
	Float32() float32
}

// Options configures a Controller. Zero fields take the package defaults; a negative Buffer or
// Jitter means an explicit zero.
type Options struct {
	HalfExtent      float32
	Buffer          float32
	FallStep        float32
	ImpulseDuration time.Duration
	Jitter          float32
	LaunchY         float32
	NudgeSpeed      float32

	Clock Clock
	Rand  Rand

	// OnStateChange, if set, is called after every state transition.
	OnStateChange func(from, to MotionState)
}

func (o *Options) setDefaults() {
	if o.HalfExtent <= 0 {
		o.HalfExtent = DefaultHalfExtent
	}
	if o.Buffer < 0 {
		o.Buffer = 0
	} else if o.Buffer == 0 {
		o.Buffer = DefaultBuffer
	}
	if o.FallStep <= 0 {
		o.FallStep = DefaultFallStep
	}
	if o.ImpulseDuration <= 0 {
		o.ImpulseDuration = DefaultImpulseDuration
	}
	if o.Jitter < 0 {
		o.Jitter = 0
	} else if o.Jitter == 0 {
		o.Jitter = DefaultJitter
	}
	if o.LaunchY == 0 {
		o.LaunchY = DefaultLaunchY
	}
	if o.NudgeSpeed <= 0 {
		o.NudgeSpeed = DefaultNudgeSpeed
	}
	if o.Clock == nil {
		o.Clock = WallClock{}
	}
}

// Controller moves one Target inside a boundary rectangle. It is driven from a single frame loop:
// Tick once per frame, Click on pointer input, Resize after the camera projection changes.
//
// A nil target is allowed; motion calls become no-ops until SetTarget supplies one.
type Controller struct {
	opts     Options
	target   Target
	velocity Vec3
	state    MotionState
	bounds   Boundaries

	sched   schedule.Scheduler
	pending schedule.Token
}

// New returns an Idle controller with zero velocity. Call Resize before the first Tick so the
// boundaries reflect the camera.
func New(target Target, opts Options) *Controller {
	opts.setDefaults()
	return &Controller{opts: opts, target: target}
}

// SetTarget replaces the moved object, e.g. once a model finishes loading. Velocity and state are
// kept.
func (c *Controller) SetTarget(t Target) {
	c.target = t
}

// Target returns the current target, or nil.
func (c *Controller) Target() Target {
	return c.target
}

// State returns the current motion state.
func (c *Controller) State() MotionState {
	return c.state
}

// Velocity returns the current velocity.
func (c *Controller) Velocity() Vec3 {
	return c.velocity
}

// Boundaries returns the clamping rectangle from the last Resize.
func (c *Controller) Boundaries() Boundaries {
	return c.bounds
}

// Resize recomputes the boundaries from the camera's current projection. The caller must update
// the camera before calling it.
func (c *Controller) Resize(f Frustum) Boundaries {
	c.bounds = ComputeBoundaries(f, c.opts.HalfExtent, c.opts.Buffer)
	return c.bounds
}

// Tick fires any due timers and then advances the target by one frame.
func (c *Controller) Tick() {
	c.sched.Advance(c.opts.Clock.Now())
	if c.target == nil {
		return
	}
	pos := c.target.Position()
	switch c.state {
	case Idle, ImpulseActive:
		pos = pos.Add(c.velocity)
		pos, c.velocity = c.bounds.clamp(pos, c.velocity)
	case Falling:
		pos.Y -= c.opts.FallStep
		landed := pos.Y <= c.bounds.Bottom+landingEpsilon
		pos, c.velocity = c.bounds.clamp(pos, c.velocity)
		if landed {
			pos.Y = c.bounds.Bottom
			c.velocity = Vec3{}
			c.setState(Idle)
		}
	}
	c.target.SetPosition(pos)
}

// Nudge sets a small random residual velocity in [-NudgeSpeed, NudgeSpeed] on X and Y.
func (c *Controller) Nudge(rng Rand) Vec3 {
	if c.target == nil || rng == nil {
		return c.velocity
	}
	c.velocity = Vec3{
		X: (rng.Float32() - 0.5) * 2 * c.opts.NudgeSpeed,
		Y: (rng.Float32() - 0.5) * 2 * c.opts.NudgeSpeed,
	}
	return c.velocity
}

// PlaceAtBottom drops the target straight onto the floor without changing state or velocity.
func (c *Controller) PlaceAtBottom() {
	if c.target == nil {
		return
	}
	p := c.target.Position()
	p.Y = c.bounds.Bottom
	c.target.SetPosition(p)
}

// activate starts an impulse with velocity v. Any transition armed by an earlier impulse is
// cancelled first so it cannot cut this one short.
func (c *Controller) activate(v Vec3) {
	c.velocity = v
	if c.pending != 0 {
		c.sched.Cancel(c.pending)
	}
	c.pending = c.sched.After(c.opts.Clock.Now(), c.opts.ImpulseDuration, c.startFalling)
	c.setState(ImpulseActive)
}

func (c *Controller) startFalling() {
	c.pending = 0
	c.velocity = Vec3{}
	c.setState(Falling)
}

func (c *Controller) setState(s MotionState) {
	from := c.state
	c.state = s
	if from != s && c.opts.OnStateChange != nil {
		c.opts.OnStateChange(from, s)
	}
}
