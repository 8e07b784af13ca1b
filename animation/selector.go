package animation

// Engine is the playback engine the selector drives. It owns the cursor of
// what is playing on each layer.
type Engine interface {
	SetClip(layer int, clip Clip, loop bool)
	QueueClip(layer int, clip Clip, loop bool, delay float64)
	CurrentClip(layer int) (Clip, bool)
}

// Skeleton receives the horizontal mirror flag.
type Skeleton interface {
	SetScaleX(scale float64)
}

// Selector maps state names to clips and interposes transition clips.
// It reads the current clip from the engine on every request and never
// keeps its own copy.
type Selector struct {
	binding     *Binding
	transitions *Transitions
	engine      Engine
	skeleton    Skeleton

	target Clip
}

func NewSelector(binding *Binding, transitions *Transitions, engine Engine, skeleton Skeleton) *Selector {
	return &Selector{
		binding:     binding,
		transitions: transitions,
		engine:      engine,
		skeleton:    skeleton,
	}
}

// PlayForState plays the clip bound to stateName. Unbound names are
// ignored.
func (s *Selector) PlayForState(stateName string, layer int) {
	if s == nil {
		return
	}
	clip, ok := s.binding.Lookup(stateName)
	if !ok {
		return
	}
	s.PlayClip(clip, layer)
}

// PlayClip switches the layer to target, playing a one-shot transition
// clip first when a rule from the current clip exists.
func (s *Selector) PlayClip(target Clip, layer int) {
	if s == nil || s.engine == nil || target == NoClip {
		return
	}

	var via Clip
	hasVia := false
	if current, ok := s.engine.CurrentClip(layer); ok && current != NoClip {
		via, hasVia = s.transitions.Lookup(current, target)
	}

	if hasVia {
		s.engine.SetClip(layer, via, false)
		s.engine.QueueClip(layer, target, true, 0)
	} else {
		s.engine.SetClip(layer, target, true)
	}
	s.target = target
}

// SetFacing mirrors the skeleton by the sign of horizontal. Zero is ignored.
func (s *Selector) SetFacing(horizontal float64) {
	if s == nil || s.skeleton == nil || horizontal == 0 {
		return
	}
	if horizontal > 0 {
		s.skeleton.SetScaleX(1)
	} else {
		s.skeleton.SetScaleX(-1)
	}
}

// Target is the last clip requested through PlayClip.
func (s *Selector) Target() Clip {
	if s == nil {
		return NoClip
	}
	return s.target
}
