package locomotion

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type stubInput struct {
	axis    float64
	pressed bool
}

func (s *stubInput) Axis(name string) float64 {
	if name != "Horizontal" {
		return 0
	}
	return s.axis
}

func (s *stubInput) PressedThisFrame(name string) bool {
	return name == "Jump" && s.pressed
}

type stubGround struct {
	grounded bool
	hit      bool
	normal   mgl64.Vec3
	pos      mgl64.Vec3

	rays       int
	lastOrigin mgl64.Vec3
	lastDist   float64
}

func (s *stubGround) Grounded() bool { return s.grounded }

func (s *stubGround) SurfaceNormal(origin mgl64.Vec3, maxDistance float64, layer uint) (mgl64.Vec3, bool) {
	s.rays++
	s.lastOrigin = origin
	s.lastDist = maxDistance
	return s.normal, s.hit
}

func (s *stubGround) Position() mgl64.Vec3 { return s.pos }

func flatGround() *stubGround {
	return &stubGround{grounded: true, hit: true, normal: Up}
}

type stubMover struct {
	dx, dy float64
	calls  int
}

func (m *stubMover) Move(dx, dy float64) {
	m.dx, m.dy = dx, dy
	m.calls++
}

type recorder struct {
	events []Event
	played []string
	facing []float64
}

func (r *recorder) Publish(evt Event) { r.events = append(r.events, evt) }

func (r *recorder) PlayForState(name string, layer int) {
	if layer != 0 {
		panic("unexpected layer")
	}
	r.played = append(r.played, name)
}

func (r *recorder) SetFacing(h float64) { r.facing = append(r.facing, h) }

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.events = nil
	r.played = nil
	r.facing = nil
}

func newTestController(t *testing.T) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c, err := NewController(DefaultConfig(), rec, rec)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c, rec
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

const dt = 1.0 / 60.0

func TestGravityAccumulatesWhileAirborne(t *testing.T) {
	c, _ := newTestController(t)
	air := &stubGround{}
	cfg := c.Config()
	step := cfg.Gravity * cfg.GravityScale * dt

	prev := c.Velocity().Y
	for i := 0; i < 30; i++ {
		c.Update(Frame{Time: float64(i) * dt, Delta: dt}, &stubInput{}, air, &stubMover{})
		got := c.Velocity().Y
		if !approx(got, prev+step) {
			t.Fatalf("frame %d: expected vy %v, got %v", i, prev+step, got)
		}
		if got >= prev {
			t.Fatalf("frame %d: vertical velocity did not decrease", i)
		}
		prev = got
	}
	if air.rays != 0 {
		t.Fatalf("slope ray cast %d times while airborne", air.rays)
	}
}

func TestLandFiresOncePerLanding(t *testing.T) {
	c, rec := newTestController(t)
	ground := flatGround()
	sequence := []bool{false, false, true, true, true, false, true, true}
	wantLands := []int{0, 0, 1, 1, 1, 1, 2, 2}

	for i, grounded := range sequence {
		ground.grounded = grounded
		c.Update(Frame{Time: float64(i) * dt, Delta: dt}, &stubInput{}, ground, &stubMover{})
		if got := rec.count(EventLanded); got != wantLands[i] {
			t.Fatalf("frame %d: expected %d landings, got %d", i, wantLands[i], got)
		}
	}
}

func TestFirstGroundedFrameCountsAsLanding(t *testing.T) {
	c, rec := newTestController(t)
	c.Update(Frame{Delta: dt}, &stubInput{}, flatGround(), &stubMover{})
	if rec.count(EventLanded) != 1 {
		t.Fatalf("expected spawn landing, got %v", rec.events)
	}
}

func TestHorizontalInputMapping(t *testing.T) {
	cases := []struct {
		name  string
		axis  float64
		wantX float64
		state MovementState
	}{
		{"none", 0, 0, Idle},
		{"walk_right", 0.3, 8, Walk},
		{"threshold_is_walk", 0.6, 8, Walk},
		{"run_right", 0.61, 15, Run},
		{"walk_left", -0.2, -8, Walk},
		{"run_left", -1, -15, Run},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestController(t)
			c.Update(Frame{Delta: dt}, &stubInput{axis: tc.axis}, flatGround(), &stubMover{})
			if got := c.Velocity().X; got != tc.wantX {
				t.Fatalf("expected vx %v, got %v", tc.wantX, got)
			}
			if c.State() != tc.state {
				t.Fatalf("expected %v, got %v", tc.state, c.State())
			}
			if tc.wantX != 0 && (len(rec.facing) != 1 || rec.facing[0] != tc.wantX) {
				t.Fatalf("expected facing %v, got %v", tc.wantX, rec.facing)
			}
			if tc.wantX == 0 && len(rec.facing) != 0 {
				t.Fatalf("facing updated with zero velocity: %v", rec.facing)
			}
		})
	}
}

func TestIdleToWalkScenario(t *testing.T) {
	c, rec := newTestController(t)
	ground := flatGround()
	in := &stubInput{}

	c.Update(Frame{Time: 0, Delta: dt}, in, ground, &stubMover{})
	if c.State() != Idle {
		t.Fatalf("expected idle, got %v", c.State())
	}
	rec.reset()

	in.axis = 0.3
	c.Update(Frame{Time: dt, Delta: dt}, in, ground, &stubMover{})
	if c.State() != Walk {
		t.Fatalf("expected walk, got %v", c.State())
	}
	if rec.count(EventStateChanged) != 1 || rec.events[0].State != Walk {
		t.Fatalf("expected one StateChanged(walk), got %v", rec.events)
	}
	if len(rec.played) != 1 || rec.played[0] != "walk" {
		t.Fatalf("expected PlayForState(walk) once, got %v", rec.played)
	}
	if c.PreviousState() != Idle {
		t.Fatalf("expected previous idle, got %v", c.PreviousState())
	}
}

func TestClassificationIsIdempotent(t *testing.T) {
	c, rec := newTestController(t)
	ground := flatGround()
	in := &stubInput{axis: 1}

	for i := 0; i < 5; i++ {
		c.Update(Frame{Time: float64(i) * dt, Delta: dt}, in, ground, &stubMover{})
	}
	if rec.count(EventStateChanged) != 1 {
		t.Fatalf("expected a single StateChanged, got %d", rec.count(EventStateChanged))
	}
	if len(rec.played) != 1 {
		t.Fatalf("expected a single play request, got %v", rec.played)
	}
	if len(rec.facing) != 5 {
		t.Fatalf("expected facing every moving frame, got %d", len(rec.facing))
	}
	before := c.State()
	if c.Classify() != before || c.Classify() != before {
		t.Fatalf("Classify changed result without new input")
	}
}

func TestJumpScenario(t *testing.T) {
	c, rec := newTestController(t)
	ground := flatGround()
	in := &stubInput{}

	c.Update(Frame{Time: 0, Delta: dt}, in, ground, &stubMover{})
	rec.reset()

	in.pressed = true
	c.Update(Frame{Time: dt, Delta: dt}, in, ground, &stubMover{})
	if got := c.Velocity().Y; got != c.Config().JumpStrength {
		t.Fatalf("expected vy %v, got %v", c.Config().JumpStrength, got)
	}
	if rec.count(EventJumped) != 1 {
		t.Fatalf("expected one Jumped, got %v", rec.events)
	}

	in.pressed = false
	ground.grounded = false
	c.Update(Frame{Time: 2 * dt, Delta: dt}, in, ground, &stubMover{})
	if c.State() != Jump {
		t.Fatalf("expected jump state, got %v", c.State())
	}
	if len(rec.played) != 1 || rec.played[0] != "jump" {
		t.Fatalf("expected PlayForState(jump), got %v", rec.played)
	}
}

func TestJumpIgnoredWhileAirborneOrSliding(t *testing.T) {
	cases := []struct {
		name   string
		ground *stubGround
	}{
		{"airborne", &stubGround{}},
		{"sliding", &stubGround{grounded: true, hit: true, normal: SlopeNormal(50)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestController(t)
			c.Update(Frame{Delta: dt}, &stubInput{pressed: true}, tc.ground, &stubMover{})
			if rec.count(EventJumped) != 0 {
				t.Fatalf("jump fired: %v", rec.events)
			}
			if c.Velocity().Y == c.Config().JumpStrength {
				t.Fatalf("jump impulse applied")
			}
		})
	}
}

func TestSteepSlopeSlides(t *testing.T) {
	c, rec := newTestController(t)
	normal := SlopeNormal(50)
	ground := &stubGround{grounded: true, hit: true, normal: normal}

	c.Update(Frame{Delta: dt}, &stubInput{axis: 1}, ground, &stubMover{})

	if !c.Sliding() {
		t.Fatalf("expected sliding on 50 degree slope")
	}
	want := ProjectOnPlane(mgl64.Vec3{0, -c.Config().SlideSpeed, 0}, normal)
	v := c.Velocity()
	if !approx(v.X, want.X()) || !approx(v.Y, want.Y()) {
		t.Fatalf("expected slide velocity %v, got %+v", want, v)
	}
	if c.State() != Slide {
		t.Fatalf("expected slide state, got %v", c.State())
	}
	if len(rec.played) != 1 || rec.played[0] != "slide" {
		t.Fatalf("expected PlayForState(slide), got %v", rec.played)
	}
}

func TestSlideIgnoresInput(t *testing.T) {
	for _, axis := range []float64{-1, -0.3, 0, 0.3, 1} {
		c, _ := newTestController(t)
		ground := &stubGround{grounded: true, hit: true, normal: SlopeNormal(-60)}
		c.Update(Frame{Delta: dt}, &stubInput{axis: axis}, ground, &stubMover{})
		want := ProjectOnPlane(mgl64.Vec3{0, -c.Config().SlideSpeed, 0}, ground.normal)
		if !approx(c.Velocity().X, want.X()) {
			t.Fatalf("axis %v changed slide velocity: %v", axis, c.Velocity())
		}
		if c.Input() != 0 {
			t.Fatalf("input sampled while sliding")
		}
	}
}

func TestWalkableSlopeDoesNotSlide(t *testing.T) {
	c, _ := newTestController(t)
	ground := &stubGround{grounded: true, hit: true, normal: SlopeNormal(30)}
	c.Update(Frame{Delta: dt}, &stubInput{axis: 0.3}, ground, &stubMover{})
	if c.Sliding() {
		t.Fatalf("30 degree slope should be walkable")
	}
	if c.State() != Walk {
		t.Fatalf("expected walk, got %v", c.State())
	}
}

func TestSlopeRayMissDegrades(t *testing.T) {
	c, rec := newTestController(t)
	ground := &stubGround{grounded: true, hit: false}
	c.Update(Frame{Delta: dt}, &stubInput{}, ground, &stubMover{})
	if c.Sliding() {
		t.Fatalf("missing ray hit should not slide")
	}
	if c.State() != Idle {
		t.Fatalf("expected idle, got %v", c.State())
	}
	if rec.count(EventStateChanged) != 0 {
		t.Fatalf("unexpected state change: %v", rec.events)
	}
}

func TestSlopeRayRecastEveryGroundedFrame(t *testing.T) {
	c, _ := newTestController(t)
	ground := flatGround()
	ground.pos = mgl64.Vec3{3, 4, 0}
	for i := 0; i < 4; i++ {
		c.Update(Frame{Time: float64(i) * dt, Delta: dt}, &stubInput{}, ground, &stubMover{})
	}
	if ground.rays != 4 {
		t.Fatalf("expected 4 rays, got %d", ground.rays)
	}
	if want := (mgl64.Vec3{3, 5, 0}); ground.lastOrigin != want {
		t.Fatalf("expected origin %v, got %v", want, ground.lastOrigin)
	}
	if !math.IsInf(ground.lastDist, 1) {
		t.Fatalf("expected unbounded ray, got %v", ground.lastDist)
	}
}

func TestInertiaDecayAfterSlide(t *testing.T) {
	c, _ := newTestController(t)
	slope := &stubGround{grounded: true, hit: true, normal: SlopeNormal(50)}
	flat := flatGround()
	in := &stubInput{}

	c.Update(Frame{Time: 0, Delta: 0.25}, in, slope, &stubMover{})
	v := c.Velocity().X
	if v == 0 {
		t.Fatalf("expected nonzero slide velocity")
	}

	cases := []struct {
		time float64
		want float64
	}{
		{0.25, v},
		{0.5, v * 0.5},
		{0.75, 0},
		{1.0, 0},
	}
	for _, tc := range cases {
		c.Update(Frame{Time: tc.time, Delta: 0.25}, in, flat, &stubMover{})
		if got := c.Velocity().X; got != tc.want {
			t.Fatalf("t=%v: expected inertia %v, got %v", tc.time, tc.want, got)
		}
	}
	if c.State() != Idle {
		t.Fatalf("expected idle once inertia is spent, got %v", c.State())
	}
}

func TestInertiaMonotonicDecay(t *testing.T) {
	c, _ := newTestController(t)
	slope := &stubGround{grounded: true, hit: true, normal: SlopeNormal(55)}
	flat := flatGround()
	in := &stubInput{}
	const step = 1.0 / 64

	c.Update(Frame{Time: 0, Delta: step}, in, slope, &stubMover{})
	prev := math.Inf(1)
	for i := 1; i <= 64; i++ {
		now := float64(i) * step
		c.Update(Frame{Time: now, Delta: step}, in, flat, &stubMover{})
		mag := math.Abs(c.Velocity().X)
		if mag > prev {
			t.Fatalf("t=%v: inertia grew from %v to %v", now, prev, mag)
		}
		prev = mag
		if now >= step+c.Config().InertiaDuration && mag != 0 {
			t.Fatalf("t=%v: inertia should be spent, got %v", now, mag)
		}
	}
	if c.InertiaRemaining(1) != 0 {
		t.Fatalf("expected no inertia left")
	}
}

func TestApplyMovesByVelocityTimesDelta(t *testing.T) {
	c, _ := newTestController(t)
	mover := &stubMover{}
	c.Update(Frame{Delta: 0.5}, &stubInput{axis: 1}, flatGround(), mover)
	if mover.calls != 1 {
		t.Fatalf("expected one move, got %d", mover.calls)
	}
	if mover.dx != 7.5 || mover.dy != 0 {
		t.Fatalf("expected (7.5, 0), got (%v, %v)", mover.dx, mover.dy)
	}
}

func TestNewControllerRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"walk_speed", func(c *Config) { c.WalkSpeed = 0 }},
		{"run_below_walk", func(c *Config) { c.RunSpeed = 1 }},
		{"threshold", func(c *Config) { c.RunThreshold = 1 }},
		{"inertia", func(c *Config) { c.InertiaDuration = 0 }},
		{"slope_limit", func(c *Config) { c.SlopeLimit = 90 }},
		{"axis_name", func(c *Config) { c.HorizontalAxis = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if _, err := NewController(cfg, nil, nil); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestNilCollaboratorsAreTolerated(t *testing.T) {
	c, err := NewController(DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	if got := c.Update(Frame{Delta: dt}, nil, nil, nil); got != Jump {
		t.Fatalf("expected airborne classification, got %v", got)
	}
}

func TestInitialStateReclassifiesOnFirstFrame(t *testing.T) {
	cases := []struct {
		name    string
		initial MovementState
		played  []string
	}{
		{"run_spawned_still", Run, []string{"idle"}},
		{"slide_spawned_still", Slide, []string{"idle"}},
		{"idle_spawned_still", Idle, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			c, err := NewController(DefaultConfig(), rec, rec, WithInitialState(tc.initial), WithGrounded(true))
			if err != nil {
				t.Fatalf("NewController: %v", err)
			}
			if c.State() != tc.initial {
				t.Fatalf("expected to start in %s, got %s", tc.initial, c.State())
			}
			for i := 0; i < 60; i++ {
				c.Update(Frame{Time: float64(i) * dt, Delta: dt}, &stubInput{}, flatGround(), &stubMover{})
			}
			if c.State() != Idle {
				t.Fatalf("expected idle, got %s", c.State())
			}
			if len(rec.played) != len(tc.played) {
				t.Fatalf("expected clips %v, got %v", tc.played, rec.played)
			}
			for i := range tc.played {
				if rec.played[i] != tc.played[i] {
					t.Fatalf("expected clips %v, got %v", tc.played, rec.played)
				}
			}
		})
	}
}

func TestWithGroundedSuppressesSpawnLanding(t *testing.T) {
	cases := []struct {
		name     string
		opts     []Option
		wantLand int
	}{
		{"fresh", nil, 1},
		{"seeded_grounded", []Option{WithGrounded(true)}, 0},
		{"seeded_airborne", []Option{WithGrounded(false)}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			c, err := NewController(DefaultConfig(), rec, rec, tc.opts...)
			if err != nil {
				t.Fatalf("NewController: %v", err)
			}
			for i := 0; i < 5; i++ {
				c.Update(Frame{Time: float64(i) * dt, Delta: dt}, &stubInput{}, flatGround(), &stubMover{})
			}
			if got := rec.count(EventLanded); got != tc.wantLand {
				t.Fatalf("expected %d landings, got %d", tc.wantLand, got)
			}
		})
	}
}
