package locomotion

import (
	"errors"
	"fmt"

	"github.com/milk9111/platformer/common"
)

var ErrInvalidConfig = errors.New("locomotion: invalid config")

// Config is static authoring data for a Controller. It is copied into the
// controller at construction and never mutated afterwards.
type Config struct {
	HorizontalAxis string
	JumpButton     string

	WalkSpeed    float64
	RunSpeed     float64
	RunThreshold float64

	JumpStrength float64
	Gravity      float64
	GravityScale float64

	SlideSpeed float64
	// SlopeLimit is the steepest walkable surface in degrees from horizontal.
	SlopeLimit      float64
	InertiaDuration float64

	// RayLift raises the slope ray origin above the character position.
	RayLift float64
	// RayDistance bounds the slope ray. Zero means unbounded.
	RayDistance float64
	GroundLayer uint
}

// DefaultConfig mirrors the tuning the character shipped with.
func DefaultConfig() Config {
	return Config{
		HorizontalAxis:  "Horizontal",
		JumpButton:      "Jump",
		WalkSpeed:       8,
		RunSpeed:        15,
		RunThreshold:    0.6,
		JumpStrength:    35,
		Gravity:         common.Gravity,
		GravityScale:    6.6,
		SlideSpeed:      50,
		SlopeLimit:      45,
		InertiaDuration: 0.5,
		RayLift:         1,
		GroundLayer:     ^uint(0),
	}
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.HorizontalAxis == "" {
		bad("horizontal axis name is empty")
	}
	if c.JumpButton == "" {
		bad("jump button name is empty")
	}
	if c.WalkSpeed <= 0 {
		bad("walk speed %v must be positive", c.WalkSpeed)
	}
	if c.RunSpeed < c.WalkSpeed {
		bad("run speed %v is below walk speed %v", c.RunSpeed, c.WalkSpeed)
	}
	if c.RunThreshold <= 0 || c.RunThreshold >= 1 {
		bad("run threshold %v must be in (0, 1)", c.RunThreshold)
	}
	if c.JumpStrength <= 0 {
		bad("jump strength %v must be positive", c.JumpStrength)
	}
	if c.GravityScale < 0 {
		bad("gravity scale %v is negative", c.GravityScale)
	}
	if c.SlideSpeed <= 0 {
		bad("slide speed %v must be positive", c.SlideSpeed)
	}
	if c.SlopeLimit <= 0 || c.SlopeLimit >= 90 {
		bad("slope limit %v must be in (0, 90) degrees", c.SlopeLimit)
	}
	if c.InertiaDuration <= 0 {
		bad("inertia duration %v must be positive", c.InertiaDuration)
	}
	if c.RayDistance < 0 {
		bad("ray distance %v is negative", c.RayDistance)
	}
	return errors.Join(errs...)
}

// runCutoff is the speed above which a grounded character counts as running.
func (c Config) runCutoff() float64 {
	return common.Lerp(c.WalkSpeed, c.RunSpeed, 0.5)
}
