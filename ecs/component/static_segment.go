package component

import "github.com/jakecoffman/cp"

// StaticSegment is a piece of level collision geometry.
type StaticSegment struct {
	AX, AY   float64
	BX, BY   float64
	Radius   float64
	Friction float64
	Layer    uint

	Shape *cp.Shape
}

var StaticSegmentComponent = NewComponent[StaticSegment]()
