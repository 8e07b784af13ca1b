package component

import "image/color"

// CurveKey is one point of a piecewise-linear curve over [0, 1].
type CurveKey struct {
	T float64
	V float64
}

// Follower is a decorative object that trails a target and bobs above the
// ground.
type Follower struct {
	Target          string
	FollowDistance  float64
	Smoothing       float64
	FloatHeight     float64
	FloatIdleOffset float64
	Curve           []CurveKey
	GroundLayer     uint
	Radius          float64
	Color           color.NRGBA

	TimePoint     float64
	FloatingUp    bool
	CurrentOffset float64
}

var FollowerComponent = NewComponent[Follower]()
