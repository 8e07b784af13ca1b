package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/animation"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/locomotion"
	"github.com/milk9111/platformer/prefabs"
)

// Options carries shared collaborators for builders. Both fields may be
// nil: events are then dropped and no audio component is built.
type Options struct {
	Bus   *ecs.EventBus
	Audio *audio.Context
}

// NewPlayer builds a controllable character from spec at (x, y). The
// controller starts in the spec's initial state and its clip is started
// immediately since the controller only plays clips on state changes.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec, x, y float64, opts Options) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}
	cfg := spec.Locomotion.Config()
	if err := cfg.Validate(); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	binding, transitions, err := BuildAnimationRules(spec.Animation)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	e := w.CreateEntity()
	fail := func(what string, err error) (ecs.Entity, error) {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("player: add %s: %w", what, err)
	}

	transform := &component.Transform{X: x, Y: y, ScaleX: nonZero(spec.Transform.ScaleX, 1), ScaleY: nonZero(spec.Transform.ScaleY, 1)}
	if err := ecs.Add(w, e, component.TransformComponent, transform); err != nil {
		return fail("transform", err)
	}
	if err := ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}); err != nil {
		return fail("player tag", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent, &component.Sprite{
		Width:   nonZero(spec.Sprite.Width, spec.Collider.Width),
		Height:  nonZero(spec.Sprite.Height, spec.Collider.Height),
		Tint:    spec.Sprite.Tint.NRGBA,
		Outline: spec.Sprite.Outline.NRGBA,
	}); err != nil {
		return fail("sprite", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Width:    spec.Collider.Width,
		Height:   spec.Collider.Height,
		Mass:     spec.Collider.Mass,
		Friction: spec.Collider.Friction,
		Layer:    spec.Collider.Layer,
	}); err != nil {
		return fail("physics body", err)
	}
	if err := ecs.Add(w, e, component.InputComponent, component.NewInput()); err != nil {
		return fail("input", err)
	}

	animator := NewAnimator(spec.Animation.Clips)
	if err := ecs.Add(w, e, component.AnimatorComponent, animator); err != nil {
		return fail("animator", err)
	}
	selector := animation.NewSelector(binding, transitions, animator, transform)

	var events locomotion.Publisher
	if opts.Bus != nil {
		events = ecs.EntityPublisher(opts.Bus, e)
	}
	initial := locomotion.Idle
	if st, ok := locomotion.ParseState(spec.InitialState); ok {
		initial = st
	}
	controller, err := locomotion.NewController(cfg, events, selector, locomotion.WithInitialState(initial))
	if err != nil {
		return fail("controller", err)
	}
	if err := ecs.Add(w, e, component.LocomotionComponent, &component.Locomotion{Controller: controller, Selector: selector}); err != nil {
		return fail("locomotion", err)
	}

	if audioComp := buildAudioComponent(opts.Audio, spec.Audio); audioComp != nil {
		if err := ecs.Add(w, e, component.AudioComponent, audioComp); err != nil {
			return fail("audio", err)
		}
	}

	selector.PlayForState(controller.State().Name(), 0)

	return e, nil
}

// BuildAnimationRules converts authoring data into the immutable binding
// and transition tables.
func BuildAnimationRules(spec prefabs.AnimationSpec) (*animation.Binding, *animation.Transitions, error) {
	entries := make([]animation.StateClip, 0, len(spec.Bindings))
	for _, b := range spec.Bindings {
		entries = append(entries, animation.StateClip{State: b.State, Clip: animation.Clip(b.Clip)})
	}
	binding, err := animation.NewBinding(entries)
	if err != nil {
		return nil, nil, err
	}

	rules := make([]animation.Transition, 0, len(spec.Transitions))
	for _, t := range spec.Transitions {
		rules = append(rules, animation.Transition{From: animation.Clip(t.From), To: animation.Clip(t.To), Via: animation.Clip(t.Via)})
	}
	transitions, err := animation.NewTransitions(rules)
	if err != nil {
		return nil, nil, err
	}
	return binding, transitions, nil
}

func NewAnimator(clips []prefabs.ClipSpec) *component.Animator {
	lib := make(map[animation.Clip]component.ClipDef, len(clips))
	for _, c := range clips {
		lib[animation.Clip(c.Name)] = component.ClipDef{Frames: c.Frames, FPS: c.FPS, Color: c.Color.NRGBA}
	}
	return &component.Animator{Library: lib}
}

// RebuildLocomotion swaps the controller and selector of a live player for
// ones built from spec, keeping its body and position. The new controller
// inherits the old one's state and ground contact. The running controller's
// config is never mutated.
func RebuildLocomotion(w *ecs.World, e ecs.Entity, spec *prefabs.PlayerSpec, opts Options) error {
	if spec == nil {
		return fmt.Errorf("player: nil spec")
	}
	loco, ok := ecs.Get(w, e, component.LocomotionComponent)
	if !ok {
		return fmt.Errorf("player: entity %d has no locomotion", uint64(e))
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return fmt.Errorf("player: entity %d has no transform", uint64(e))
	}
	cfg := spec.Locomotion.Config()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	binding, transitions, err := BuildAnimationRules(spec.Animation)
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}

	animator := NewAnimator(spec.Animation.Clips)
	if err := ecs.Add(w, e, component.AnimatorComponent, animator); err != nil {
		return fmt.Errorf("player: replace animator: %w", err)
	}
	selector := animation.NewSelector(binding, transitions, animator, transform)

	var events locomotion.Publisher
	if opts.Bus != nil {
		events = ecs.EntityPublisher(opts.Bus, e)
	}
	var carry []locomotion.Option
	if old := loco.Controller; old != nil {
		carry = append(carry, locomotion.WithInitialState(old.State()), locomotion.WithGrounded(old.Grounded()))
	}
	controller, err := locomotion.NewController(cfg, events, selector, carry...)
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	loco.Controller = controller
	loco.Selector = selector
	selector.PlayForState(controller.State().Name(), 0)
	return nil
}

func nonZero(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
