package system

import (
	"log"
	"strings"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/locomotion"
	"github.com/milk9111/platformer/prefabs"
)

// ColorFlashSystem swaps a sprite's tint while the watched character is in
// a response state, and restores it once the character leaves.
type ColorFlashSystem struct {
	scripts    map[string]*flashScript
	failed     map[string]bool
	loadScript func(name string) ([]byte, error)
}

func NewColorFlashSystem() *ColorFlashSystem {
	return &ColorFlashSystem{
		scripts:    make(map[string]*flashScript),
		failed:     make(map[string]bool),
		loadScript: prefabs.LoadScript,
	}
}

// Subscribe starts reacting to state changes on bus. The returned function
// unsubscribes.
func (s *ColorFlashSystem) Subscribe(w *ecs.World, bus *ecs.EventBus) func() {
	return bus.Subscribe(func(evt ecs.LocomotionEvent) {
		if evt.Kind == locomotion.EventStateChanged {
			s.HandleStateChanged(w, evt.Entity, evt.State)
		}
	})
}

// ClearScripts forgets compiled scripts so edited files are reloaded.
func (s *ColorFlashSystem) ClearScripts() {
	if s == nil {
		return
	}
	s.scripts = make(map[string]*flashScript)
	s.failed = make(map[string]bool)
}

func (s *ColorFlashSystem) HandleStateChanged(w *ecs.World, source ecs.Entity, state locomotion.MovementState) {
	if s == nil || w == nil {
		return
	}
	previous := state
	if loco, ok := ecs.Get(w, source, component.LocomotionComponent); ok && loco.Controller != nil {
		previous = loco.Controller.PreviousState()
	}

	ecs.ForEach2(w, component.ColorFlashComponent, component.SpriteComponent, func(e ecs.Entity, flash *component.ColorFlash, sprite *component.Sprite) {
		if findEntityByNameOrTag(w, flash.Target) != source {
			return
		}
		match := s.matches(flash, state, previous)
		switch {
		case !flash.Active && match:
			sprite.Tint = flash.ResponseColor
			flash.Active = true
		case flash.Active && !match:
			sprite.Tint = flash.InitialColor
			flash.Active = false
		}
	})
}

func (s *ColorFlashSystem) matches(flash *component.ColorFlash, state, previous locomotion.MovementState) bool {
	name := strings.TrimSpace(flash.Script)
	if name == "" {
		return state == flash.ResponseState
	}
	script := s.script(name)
	if script == nil {
		return state == flash.ResponseState
	}
	ok, err := script.Respond(state.Name(), previous.Name())
	if err != nil {
		log.Printf("color flash: %v", err)
		return state == flash.ResponseState
	}
	return ok
}

// script returns the compiled predicate, or nil when it failed to load. A
// failure is logged once until ClearScripts.
func (s *ColorFlashSystem) script(name string) *flashScript {
	if sc, ok := s.scripts[name]; ok {
		return sc
	}
	if s.failed[name] || s.loadScript == nil {
		return nil
	}
	src, err := s.loadScript(name)
	if err == nil {
		var sc *flashScript
		if sc, err = compileFlashScript(name, src); err == nil {
			s.scripts[name] = sc
			return sc
		}
	}
	log.Printf("color flash: load script %s: %v", name, err)
	s.failed[name] = true
	return nil
}
