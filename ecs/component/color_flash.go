package component

import (
	"image/color"

	"github.com/milk9111/platformer/locomotion"
)

// ColorFlash tints the entity sprite while the watched character (Target)
// is in the response state. Script, when set, names a tengo predicate that
// decides which states trigger the response instead of ResponseState.
type ColorFlash struct {
	Target        string
	ResponseState locomotion.MovementState
	ResponseColor color.NRGBA
	InitialColor  color.NRGBA
	Script        string

	Active bool
}

var ColorFlashComponent = NewComponent[ColorFlash]()
