package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/common"
)

// Velocity is the planar velocity of a character in units per second.
// Y points up.
type Velocity struct {
	X float64
	Y float64
}

// Controller is the per-character locomotion state machine. It turns input
// and ground sensing into a velocity and a MovementState once per frame.
type Controller struct {
	cfg      Config
	events   Publisher
	animator Animator

	velocity Velocity
	input    float64

	grounded    bool
	wasGrounded bool

	sliding         bool
	wasSliding      bool
	inertiaEndTime  float64
	inertiaVelocity float64

	previous MovementState
	current  MovementState
}

// Option adjusts a controller at construction.
type Option func(*Controller)

// WithInitialState starts the controller in s instead of Idle. The first
// frame that classifies anything else reports a state change.
func WithInitialState(s MovementState) Option {
	return func(c *Controller) {
		c.previous = s
		c.current = s
	}
}

// WithGrounded seeds the last-frame contact flag, so a controller that
// replaces one standing on the ground does not report a landing.
func WithGrounded(grounded bool) Option {
	return func(c *Controller) {
		c.grounded = grounded
		c.wasGrounded = grounded
	}
}

// NewController validates cfg and returns a controller starting in Idle
// and airborne unless opts say otherwise. events and animator may be nil.
func NewController(cfg Config, events Publisher, animator Animator, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if animator == nil {
		animator = nopAnimator{}
	}
	c := &Controller{
		cfg:      cfg,
		events:   events,
		animator: animator,
		previous: Idle,
		current:  Idle,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Update runs one frame: ground, slope, jump, move, inertia, apply,
// classify. The order is significant since later rules overwrite axes set
// by earlier ones.
func (c *Controller) Update(f Frame, in InputSource, ground GroundSensor, mover Mover) MovementState {
	if c == nil {
		return Idle
	}
	c.checkGround(f, ground)
	c.checkSlope(ground)
	c.checkJump(in)
	c.checkMove(in)
	c.checkInertia(f)
	c.apply(f, mover)
	c.classify()
	return c.current
}

func (c *Controller) checkGround(f Frame, ground GroundSensor) {
	c.grounded = ground != nil && ground.Grounded()
	if !c.grounded {
		c.velocity.Y += c.cfg.Gravity * c.cfg.GravityScale * f.Delta
	} else if !c.wasGrounded {
		c.publish(EventLanded, c.current)
	}
	c.wasGrounded = c.grounded
}

// checkSlope keeps the previous sliding flag while airborne.
func (c *Controller) checkSlope(ground GroundSensor) {
	if !c.grounded {
		return
	}

	origin := ground.Position().Add(Up.Mul(c.cfg.RayLift))
	dist := c.cfg.RayDistance
	if dist == 0 {
		dist = math.Inf(1)
	}
	normal, ok := ground.SurfaceNormal(origin, dist, c.cfg.GroundLayer)
	if !ok {
		c.sliding = false
		return
	}

	c.sliding = math.Abs(SurfaceAngle(normal)) > c.cfg.SlopeLimit
	if !c.sliding {
		return
	}
	slide := ProjectOnPlane(mgl64.Vec3{0, -c.cfg.SlideSpeed, 0}, normal)
	c.velocity.X = slide.X()
	c.velocity.Y = slide.Y()
	c.inertiaVelocity = slide.X()
}

func (c *Controller) checkJump(in InputSource) {
	if !c.grounded || c.sliding || in == nil {
		return
	}
	if in.PressedThisFrame(c.cfg.JumpButton) {
		c.velocity.Y = c.cfg.JumpStrength
		c.publish(EventJumped, c.current)
	}
}

func (c *Controller) checkMove(in InputSource) {
	if c.sliding {
		return
	}
	c.velocity.X = 0
	c.input = 0
	if in == nil {
		return
	}
	c.input = in.Axis(c.cfg.HorizontalAxis)
	if c.input == 0 {
		return
	}
	speed := c.cfg.WalkSpeed
	if math.Abs(c.input) > c.cfg.RunThreshold {
		speed = c.cfg.RunSpeed
	}
	c.velocity.X = speed * common.Sign(c.input)
}

// checkInertia adds decaying slide momentum after a slide ends. Nothing is
// added while sliding.
func (c *Controller) checkInertia(f Frame) {
	if c.wasSliding && !c.sliding {
		c.inertiaEndTime = f.Time + c.cfg.InertiaDuration
	}
	if !c.sliding {
		if left := c.inertiaEndTime - f.Time; left > 0 {
			point := common.InverseLerp(0, c.cfg.InertiaDuration, left)
			c.velocity.X += common.Lerp(0, c.inertiaVelocity, point)
		}
	}
	c.wasSliding = c.sliding
}

func (c *Controller) apply(f Frame, mover Mover) {
	if mover == nil {
		return
	}
	mover.Move(c.velocity.X*f.Delta, c.velocity.Y*f.Delta)
}

func (c *Controller) classify() {
	state := c.Classify()
	changed := state != c.current
	c.previous = c.current
	c.current = state
	if changed {
		c.animator.PlayForState(state.Name(), 0)
		c.publish(EventStateChanged, state)
	}
	if c.velocity.X != 0 {
		c.animator.SetFacing(c.velocity.X)
	}
}

// Classify derives the MovementState from the current velocity and contact
// flags without side effects.
func (c *Controller) Classify() MovementState {
	if c == nil {
		return Idle
	}
	switch {
	case c.sliding:
		return Slide
	case c.grounded:
		switch {
		case c.velocity.X == 0:
			return Idle
		case math.Abs(c.velocity.X) > c.cfg.runCutoff():
			return Run
		default:
			return Walk
		}
	}
	return Jump
}

func (c *Controller) publish(kind EventKind, state MovementState) {
	if c.events == nil {
		return
	}
	c.events.Publish(Event{Kind: kind, State: state})
}

// Config returns a copy of the controller's configuration.
func (c *Controller) Config() Config { return c.cfg }

func (c *Controller) State() MovementState { return c.current }

// PreviousState is the state classified on the frame before the last one.
func (c *Controller) PreviousState() MovementState { return c.previous }

func (c *Controller) Velocity() Velocity { return c.velocity }

func (c *Controller) Grounded() bool { return c.grounded }

func (c *Controller) Sliding() bool { return c.sliding }

// Input is the horizontal axis value read on the last frame.
func (c *Controller) Input() float64 { return c.input }

// InertiaRemaining returns the seconds of slide inertia left at time now.
func (c *Controller) InertiaRemaining(now float64) float64 {
	return math.Max(0, c.inertiaEndTime-now)
}
