package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/locomotion"
	"github.com/milk9111/platformer/prefabs"
	"golang.org/x/image/colornames"
)

func NewFollowerAt(w *ecs.World, spec *prefabs.FollowerSpec, x, y float64) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("follower: nil spec")
	}

	curve := make([]component.CurveKey, 0, len(spec.Curve))
	for _, k := range spec.Curve {
		curve = append(curve, component.CurveKey{T: k.T, V: k.V})
	}
	clr := spec.Color.Or(color.NRGBA(colornames.Gold))

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.FollowerTagComponent, &component.FollowerTag{}); err != nil {
		return 0, fmt.Errorf("follower: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("follower: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent, &component.Sprite{Width: spec.Radius * 2, Height: spec.Radius * 2, Tint: clr}); err != nil {
		return 0, fmt.Errorf("follower: add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.FollowerComponent, &component.Follower{
		Target:          spec.Target,
		FollowDistance:  spec.FollowDistance,
		Smoothing:       spec.Smoothing,
		FloatHeight:     spec.FloatHeight,
		FloatIdleOffset: spec.FloatIdleOffset,
		Curve:           curve,
		GroundLayer:     nonZeroLayer(spec.GroundLayer),
		Radius:          spec.Radius,
		Color:           clr,
		TimePoint:       0.5,
		FloatingUp:      true,
	}); err != nil {
		return 0, fmt.Errorf("follower: add follower: %w", err)
	}
	return e, nil
}

// AttachFlash adds a color response to e. The entity's current sprite tint
// becomes the color restored after the response.
func AttachFlash(w *ecs.World, e ecs.Entity, spec *prefabs.FlashSpec) error {
	if spec == nil {
		return fmt.Errorf("flash: nil spec")
	}
	state, ok := locomotion.ParseState(spec.ResponseState)
	if !ok {
		return fmt.Errorf("flash: unknown response state %q", spec.ResponseState)
	}
	sprite, ok := ecs.Get(w, e, component.SpriteComponent)
	if !ok {
		return fmt.Errorf("flash: entity %d has no sprite", uint64(e))
	}
	return ecs.Add(w, e, component.ColorFlashComponent, &component.ColorFlash{
		Target:        spec.Target,
		ResponseState: state,
		ResponseColor: spec.ResponseColor.Or(color.NRGBA(colornames.Red)),
		InitialColor:  sprite.Tint,
		Script:        spec.Script,
	})
}

func nonZeroLayer(layer uint) uint {
	if layer == 0 {
		return 1
	}
	return layer
}
