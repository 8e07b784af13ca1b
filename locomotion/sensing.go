package locomotion

import "github.com/go-gl/mathgl/mgl64"

// Frame carries simulation time for one update. Time is absolute seconds
// since start, Delta the elapsed seconds of this frame.
type Frame struct {
	Time  float64
	Delta float64
}

// GroundSensor reports ground contact and casts rays against the
// environment. Calls are synchronous and return immediately.
type GroundSensor interface {
	Grounded() bool
	// SurfaceNormal casts a ray straight down from origin and returns the
	// normal of the first surface hit within maxDistance on the given layer
	// mask. ok is false when nothing is hit.
	SurfaceNormal(origin mgl64.Vec3, maxDistance float64, layer uint) (normal mgl64.Vec3, ok bool)
	Position() mgl64.Vec3
}

// InputSource provides sampled input for the frame.
type InputSource interface {
	// Axis returns a value in [-1, 1].
	Axis(name string) float64
	// PressedThisFrame is true only on the frame the button went down.
	PressedThisFrame(name string) bool
}

// Mover advances the character by a displacement.
type Mover interface {
	Move(dx, dy float64)
}
