package component

// Transform is a world-space placement. The world is y-up; X/Y is the
// center of the entity's footprint.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

// SetScaleX mirrors the entity horizontally.
func (t *Transform) SetScaleX(scale float64) {
	if t == nil {
		return
	}
	t.ScaleX = scale
}

var TransformComponent = NewComponent[Transform]()
