package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// FollowerSystem trails each follower behind its target while bobbing at a
// fixed height above the ground (or above the target when no ground is in
// reach).
type FollowerSystem struct {
	physics *PhysicsSystem
	dt      float64
}

func NewFollowerSystem(physics *PhysicsSystem) *FollowerSystem {
	return &FollowerSystem{physics: physics, dt: 1.0 / common.TPS}
}

func (fs *FollowerSystem) Update(w *ecs.World) {
	if fs == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.FollowerComponent, component.TransformComponent, func(_ ecs.Entity, f *component.Follower, transform *component.Transform) {
		target, ok := ecs.Get(w, findEntityByNameOrTag(w, f.Target), component.TransformComponent)
		if !ok {
			return
		}

		stepFloat(f, fs.dt)
		goalX := target.X - f.FollowDistance
		goalY := fs.heightAboveGround(f, transform, target) + f.CurrentOffset

		t := f.Smoothing * fs.dt
		transform.X = common.Lerp(transform.X, goalX, t)
		transform.Y = common.Lerp(transform.Y, goalY, t)
	})
}

// stepFloat ping-pongs the follower's curve time over [0, 1] and evaluates
// the idle offset from it.
func stepFloat(f *component.Follower, dt float64) {
	if f.FloatingUp {
		if f.TimePoint < 1 {
			f.TimePoint += dt
		} else {
			f.FloatingUp = false
		}
	} else {
		if f.TimePoint > 0 {
			f.TimePoint -= dt
		} else {
			f.FloatingUp = true
		}
	}
	f.CurrentOffset = common.Lerp(-f.FloatIdleOffset, f.FloatIdleOffset, EvaluateCurve(f.Curve, f.TimePoint))
}

func (fs *FollowerSystem) heightAboveGround(f *component.Follower, self, target *component.Transform) float64 {
	reach := f.FloatHeight + f.CurrentOffset - 1
	if reach > 0 {
		start := cp.Vector{X: self.X, Y: self.Y}
		end := cp.Vector{X: self.X, Y: self.Y - reach}
		if hit, ok := fs.physics.Raycast(start, end, f.GroundLayer); ok {
			return hit.Point.Y + f.FloatHeight
		}
	}
	return target.Y + f.FloatHeight
}

// EvaluateCurve samples a piecewise-linear curve, clamping outside its
// keys. An empty curve is the identity.
func EvaluateCurve(keys []component.CurveKey, t float64) float64 {
	switch len(keys) {
	case 0:
		return t
	case 1:
		return keys[0].V
	}
	if t <= keys[0].T {
		return keys[0].V
	}
	for i := 1; i < len(keys); i++ {
		if t <= keys[i].T {
			a, b := keys[i-1], keys[i]
			return common.Lerp(a.V, b.V, common.InverseLerp(a.T, b.T, t))
		}
	}
	return keys[len(keys)-1].V
}
