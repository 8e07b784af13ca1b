package component

import "image/color"

// Sprite is a flat-shaded body drawn at the entity transform. Sizes are in
// world units.
type Sprite struct {
	Width   float64
	Height  float64
	Tint    color.NRGBA
	Outline color.NRGBA
}

var SpriteComponent = NewComponent[Sprite]()
