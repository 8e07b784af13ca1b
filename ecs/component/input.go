package component

// Input stores per-frame input state for an entity, keyed by virtual axis
// and button names.
type Input struct {
	Axes    map[string]float64
	Held    map[string]bool
	Pressed map[string]bool
}

func NewInput() *Input {
	return &Input{
		Axes:    make(map[string]float64),
		Held:    make(map[string]bool),
		Pressed: make(map[string]bool),
	}
}

// Axis returns the sampled axis value, 0 when unknown.
func (in *Input) Axis(name string) float64 {
	if in == nil {
		return 0
	}
	return in.Axes[name]
}

// PressedThisFrame reports a button that went down this frame.
func (in *Input) PressedThisFrame(name string) bool {
	if in == nil {
		return false
	}
	return in.Pressed[name]
}

var InputComponent = NewComponent[Input]()
