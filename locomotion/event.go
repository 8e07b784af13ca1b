package locomotion

// EventKind identifies a locomotion notification.
type EventKind string

const (
	EventStateChanged EventKind = "state_changed"
	EventJumped       EventKind = "jumped"
	EventLanded       EventKind = "landed"
)

// Event is a fire-and-forget notification emitted by a Controller.
// State is the newly classified state for EventStateChanged and the
// current state otherwise.
type Event struct {
	Kind  EventKind
	State MovementState
}

// Publisher receives controller events. Implementations must not call back
// into the controller.
type Publisher interface {
	Publish(evt Event)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(evt Event)

func (f PublisherFunc) Publish(evt Event) {
	if f != nil {
		f(evt)
	}
}

// Animator is the animation-side sink of a Controller. It is satisfied by
// *animation.Selector without this package importing it.
type Animator interface {
	PlayForState(stateName string, layer int)
	SetFacing(horizontal float64)
}

type nopAnimator struct{}

func (nopAnimator) PlayForState(string, int) {}
func (nopAnimator) SetFacing(float64)        {}
