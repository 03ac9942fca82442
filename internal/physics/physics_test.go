package physics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// fixedRand returns the same value forever.
type fixedRand float32

func (r fixedRand) Float32() float32 { return float32(r) }

// straightOn is an orthographic camera at z=10 looking down -Z, showing x in [-10,10] and
// y in [-5,5].
type straightOn struct{}

func (straightOn) Ray(ndcX, ndcY float32) Ray {
	return Ray{Origin: Vec3{X: ndcX * 10, Y: ndcY * 5, Z: 10}, Dir: Vec3{Z: -1}}
}

var (
	testFrustum = Frustum{Left: -10, Right: 10, Top: 5, Bottom: -5}
	testView    = Viewport{Width: 800, Height: 600}
)

func newTestController(t *testing.T, pos Vec3) (*Controller, *Body, *manualClock) {
	t.Helper()
	clock := newClock()
	body := NewBody(pos)
	c := New(body, Options{Clock: clock})
	c.Resize(testFrustum)
	return c, body, clock
}

func TestComputeBoundariesInsetsEveryEdge(t *testing.T) {
	b := ComputeBoundaries(testFrustum, 0.5, 1.5)
	assert.Equal(t, Boundaries{Left: -8, Right: 8, Top: 3, Bottom: -3}, b)
	assert.True(t, b.Valid())
}

func TestComputeBoundariesCollapsesWhenTooSmall(t *testing.T) {
	b := ComputeBoundaries(Frustum{Left: -1, Right: 3, Top: 1, Bottom: -1}, 0.5, 1.5)
	assert.Equal(t, float32(1), b.Left)
	assert.Equal(t, float32(1), b.Right)
	assert.Equal(t, float32(0), b.Top)
	assert.Equal(t, float32(0), b.Bottom)
	assert.False(t, b.Valid())
	assert.True(t, b.Contains(Vec3{X: 1}))
}

func TestResizeUsesCurrentFrustum(t *testing.T) {
	c, _, _ := newTestController(t, Vec3{})
	assert.Equal(t, float32(-8), c.Boundaries().Left)

	wide := Frustum{Left: -20, Right: 20, Top: 5, Bottom: -5}
	b := c.Resize(wide)
	assert.Equal(t, float32(-18), b.Left)
	assert.Equal(t, b, c.Boundaries())
}

func TestImpulseTickStaysInsideBoundaries(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c, body, _ := newTestController(t, Vec3{})
	b := c.Boundaries()

	for i := 0; i < 2000; i++ {
		body.Pos = Vec3{
			X: b.Left + rng.Float32()*(b.Right-b.Left),
			Y: b.Bottom + rng.Float32()*(b.Top-b.Bottom),
		}
		c.activate(Vec3{X: (rng.Float32() - 0.5) * 40, Y: (rng.Float32() - 0.5) * 40})
		c.Tick()
		require.True(t, b.Contains(body.Pos), "position %+v escaped %+v", body.Pos, b)
	}
}

func TestBoundaryHitZeroesThatAxis(t *testing.T) {
	tests := []struct {
		name    string
		vel     Vec3
		wantPos Vec3
		wantVel Vec3
	}{
		{"left", Vec3{X: -20, Y: 0.5}, Vec3{X: -8, Y: 0.5}, Vec3{X: 0, Y: 0.5}},
		{"right", Vec3{X: 20, Y: -0.5}, Vec3{X: 8, Y: -0.5}, Vec3{X: 0, Y: -0.5}},
		{"top", Vec3{X: 0.25, Y: 20}, Vec3{X: 0.25, Y: 3}, Vec3{X: 0.25, Y: 0}},
		{"bottom", Vec3{X: -0.25, Y: -20}, Vec3{X: -0.25, Y: -3}, Vec3{X: -0.25, Y: 0}},
		{"corner", Vec3{X: 20, Y: 20}, Vec3{X: 8, Y: 3}, Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, body, _ := newTestController(t, Vec3{})
			c.activate(tt.vel)
			c.Tick()
			assert.Equal(t, tt.wantPos, body.Pos)
			assert.Equal(t, tt.wantVel, c.Velocity())
		})
	}
}

func TestImpulseAppliesVelocityOncePerTick(t *testing.T) {
	c, body, _ := newTestController(t, Vec3{})
	c.activate(Vec3{X: 0.5, Y: 0.25})
	c.Tick()
	assert.InDelta(t, 0.5, body.Pos.X, 1e-6)
	assert.InDelta(t, 0.25, body.Pos.Y, 1e-6)
}

func TestFallingLandsAfterThirtyTicks(t *testing.T) {
	c, body, _ := newTestController(t, Vec3{})
	c.startFalling()

	for i := 0; i < 29; i++ {
		c.Tick()
	}
	assert.Equal(t, Falling, c.State())
	assert.InDelta(t, -2.9, body.Pos.Y, 1e-4)

	c.Tick()
	assert.Equal(t, float32(-3), body.Pos.Y)
	assert.Equal(t, Idle, c.State())
}

func TestFallingDropsByFixedStep(t *testing.T) {
	c, body, _ := newTestController(t, Vec3{X: 1, Y: 2})
	c.startFalling()
	prev := body.Pos.Y
	for c.State() == Falling {
		c.Tick()
		if c.State() == Falling {
			assert.InDelta(t, prev-DefaultFallStep, body.Pos.Y, 1e-5)
		}
		prev = body.Pos.Y
	}
	assert.Equal(t, float32(1), body.Pos.X)
	assert.Equal(t, c.Boundaries().Bottom, body.Pos.Y)
}

func TestFallingTerminatesFromAnyHeight(t *testing.T) {
	for _, y := range []float32{3, 2.95, 0.01, -2.999, -3, -50, 50} {
		c, body, _ := newTestController(t, Vec3{Y: y})
		c.startFalling()
		b := c.Boundaries()
		limit := int((b.Top-b.Bottom)/DefaultFallStep) + 2
		ticks := 0
		for c.State() == Falling && ticks <= limit {
			c.Tick()
			ticks++
		}
		assert.Equal(t, Idle, c.State(), "start y=%v", y)
		assert.Equal(t, b.Bottom, body.Pos.Y, "start y=%v", y)
	}
}

func TestClickAtCenterPushesAwayFromClick(t *testing.T) {
	c, body, _ := newTestController(t, Vec3{X: 2, Y: 1})

	ok := c.Click(400, 300, testView, straightOn{})
	require.True(t, ok)
	assert.Equal(t, ImpulseActive, c.State())

	// no Rand configured, so no jitter: direction is (2,1)/|(2,1)|
	v := c.Velocity()
	assert.InDelta(t, 0.894427, v.X, 1e-5)
	assert.Equal(t, DefaultLaunchY, v.Y)
	assert.Zero(t, v.Z)
	assert.Equal(t, Vec3{X: 2, Y: 1}, body.Pos)
}

func TestImpulseDirectionIsUnitLength(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		obj := Vec3{X: rng.Float32()*16 - 8, Y: rng.Float32()*6 - 3}
		click := Vec3{X: rng.Float32()*20 - 10, Y: rng.Float32()*10 - 5}
		d := ImpulseDirection(obj, click, DefaultJitter, rng)
		assert.InDelta(t, 1, d.Len(), 1e-5)
	}
}

func TestImpulseDirectionJitterIsBounded(t *testing.T) {
	obj, click := Vec3{X: 3}, Vec3{}

	d := ImpulseDirection(obj, click, 0.25, fixedRand(0.5))
	assert.Equal(t, Vec3{X: 1}, d)

	// the largest positive offset pushes (1,0) to (1.25,0.25) before renormalizing
	d = ImpulseDirection(obj, click, 0.25, fixedRand(1))
	want, _ := Vec3{X: 1.25, Y: 0.25}.Normalize()
	assert.InDelta(t, want.X, d.X, 1e-6)
	assert.InDelta(t, want.Y, d.Y, 1e-6)
}

func TestImpulseDirectionOnTopOfClickLaunchesUp(t *testing.T) {
	d := ImpulseDirection(Vec3{X: 1, Y: 1}, Vec3{X: 1, Y: 1}, 0.25, nil)
	assert.Equal(t, Vec3{Y: 1}, d)
}

func TestImpulseTurnsIntoFallingAfterDuration(t *testing.T) {
	c, _, clock := newTestController(t, Vec3{})
	require.True(t, c.Click(0, 0, testView, straightOn{}))

	clock.advance(999 * time.Millisecond)
	c.Tick()
	assert.Equal(t, ImpulseActive, c.State())

	clock.advance(time.Millisecond)
	c.Tick()
	assert.Equal(t, Falling, c.State())
	assert.Equal(t, Vec3{}, c.Velocity())
}

func TestSecondClickCancelsPendingFall(t *testing.T) {
	c, _, clock := newTestController(t, Vec3{})
	require.True(t, c.Click(0, 0, testView, straightOn{}))

	clock.advance(500 * time.Millisecond)
	c.Tick()
	require.True(t, c.Click(800, 600, testView, straightOn{}))

	clock.advance(500 * time.Millisecond)
	c.Tick()
	assert.Equal(t, ImpulseActive, c.State(), "first click's timer must not fire")

	clock.advance(500 * time.Millisecond)
	c.Tick()
	assert.Equal(t, Falling, c.State())
}

func TestMissingTargetIsANoOp(t *testing.T) {
	clock := newClock()
	c := New(nil, Options{Clock: clock})
	c.Resize(testFrustum)

	assert.False(t, c.Click(400, 300, testView, straightOn{}))
	c.Tick()
	c.PlaceAtBottom()
	assert.Equal(t, Vec3{}, c.Nudge(fixedRand(1)))
	assert.Equal(t, Idle, c.State())

	body := NewBody(Vec3{})
	c.SetTarget(body)
	assert.True(t, c.Click(400, 300, testView, straightOn{}))
	assert.Equal(t, ImpulseActive, c.State())
}

func TestStateChangeHook(t *testing.T) {
	clock := newClock()
	var seen []string
	c := New(NewBody(Vec3{Y: -2.95}), Options{
		Clock: clock,
		OnStateChange: func(from, to MotionState) {
			seen = append(seen, from.String()+">"+to.String())
		},
	})
	c.Resize(testFrustum)

	c.Click(400, 0, testView, straightOn{})
	clock.advance(time.Second)
	for i := 0; i < 200 && (c.State() != Idle || len(seen) < 3); i++ {
		c.Tick()
	}
	assert.Equal(t, []string{"idle>impulse", "impulse>falling", "falling>idle"}, seen)
}

func TestNudgeDriftsWhileIdle(t *testing.T) {
	c, body, _ := newTestController(t, Vec3{})
	v := c.Nudge(fixedRand(1))
	assert.InDelta(t, 0.1, v.X, 1e-6)
	assert.InDelta(t, 0.1, v.Y, 1e-6)

	c.Tick()
	assert.Equal(t, Idle, c.State())
	assert.InDelta(t, 0.1, body.Pos.X, 1e-6)
	assert.InDelta(t, 0.1, body.Pos.Y, 1e-6)

	for i := 0; i < 200; i++ {
		c.Tick()
	}
	assert.Equal(t, Vec3{X: 8, Y: 3}, body.Pos)
	assert.Equal(t, Vec3{}, c.Velocity())
}

func TestPlaceAtBottom(t *testing.T) {
	c, body, _ := newTestController(t, Vec3{X: 4, Y: 2, Z: 0.1})
	c.PlaceAtBottom()
	assert.Equal(t, Vec3{X: 4, Y: -3, Z: 0.1}, body.Pos)
}

func TestScreenToNDC(t *testing.T) {
	x, y := ScreenToNDC(0, 0, testView)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)

	x, y = ScreenToNDC(400, 300, testView)
	assert.Zero(t, x)
	assert.Zero(t, y)

	x, y = ScreenToNDC(800, 600, testView)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(-1), y)

	// outside the canvas is passed through
	x, _ = ScreenToNDC(1200, 300, testView)
	assert.Equal(t, float32(2), x)
}

func TestRayIntersectZ(t *testing.T) {
	r := Ray{Origin: Vec3{X: 1, Y: 2, Z: 10}, Dir: Vec3{Z: -1}}
	p := r.IntersectZ(0.1)
	assert.Equal(t, float32(1), p.X)
	assert.Equal(t, float32(2), p.Y)
	assert.InDelta(t, 0.1, p.Z, 1e-5)

	flat := Ray{Origin: Vec3{X: 1}, Dir: Vec3{X: 1}}
	assert.Equal(t, flat.Origin, flat.IntersectZ(5))
}

func TestMotionStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "impulse", ImpulseActive.String())
	assert.Equal(t, "falling", Falling.String())
	assert.Equal(t, "unknown", MotionState(9).String())
}
