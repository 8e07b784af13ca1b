package component

import (
	"github.com/milk9111/platformer/animation"
	"github.com/milk9111/platformer/locomotion"
)

// Locomotion binds a character's state machine to its animation selector.
type Locomotion struct {
	Controller *locomotion.Controller
	Selector   *animation.Selector
}

var LocomotionComponent = NewComponent[Locomotion]()
