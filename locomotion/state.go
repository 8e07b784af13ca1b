package locomotion

import "fmt"

// MovementState is the discrete movement classification of a character.
// Values are ordered by declaration only.
type MovementState int

const (
	Idle MovementState = iota
	Walk
	Run
	Jump
	Slide
)

var stateNames = [...]string{
	Idle:  "idle",
	Walk:  "walk",
	Run:   "run",
	Jump:  "jump",
	Slide: "slide",
}

// Name returns the canonical animation-binding name of the state.
func (s MovementState) Name() string {
	if s < 0 || int(s) >= len(stateNames) {
		return ""
	}
	return stateNames[s]
}

func (s MovementState) String() string {
	if n := s.Name(); n != "" {
		return n
	}
	return fmt.Sprintf("MovementState(%d)", int(s))
}

// ParseState maps a canonical name back to its state.
func ParseState(name string) (MovementState, bool) {
	for i, n := range stateNames {
		if n == name {
			return MovementState(i), true
		}
	}
	return Idle, false
}

// States lists every state in declaration order.
func States() []MovementState {
	return []MovementState{Idle, Walk, Run, Jump, Slide}
}
