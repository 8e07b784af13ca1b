package component

// Camera frames a target. Goal = target + offset, clamped per axis to
// [Min, Max], approached by Smoothing * dt each frame.
type Camera struct {
	Target    string
	OffsetX   float64
	OffsetY   float64
	MinX      float64
	MinY      float64
	MaxX      float64
	MaxY      float64
	Smoothing float64
	Zoom      float64
}

var CameraComponent = NewComponent[Camera]()
