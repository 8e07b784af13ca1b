package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/locomotion"
)

// LocomotionSystem steps every character controller once per frame against
// the physics adapters. It must run after input and before physics.
type LocomotionSystem struct {
	physics *PhysicsSystem
	time    float64
	dt      float64
}

func NewLocomotionSystem(physics *PhysicsSystem) *LocomotionSystem {
	dt := 1.0 / common.TPS
	if physics != nil {
		dt = physics.Step()
	}
	return &LocomotionSystem{physics: physics, dt: dt}
}

// Time is the simulation clock in seconds.
func (s *LocomotionSystem) Time() float64 {
	if s == nil {
		return 0
	}
	return s.time
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	frame := locomotion.Frame{Time: s.time, Delta: s.dt}

	for _, e := range w.Query(component.LocomotionComponent.ID(), component.PhysicsBodyComponent.ID()) {
		loco, ok := ecs.Get(w, e, component.LocomotionComponent)
		if !ok || loco.Controller == nil {
			continue
		}
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)

		var in locomotion.InputSource
		if input, ok := ecs.Get(w, e, component.InputComponent); ok {
			in = input
		}
		loco.Controller.Update(frame, in, s.physics.GroundSensor(body), s.physics.Mover(body))
	}

	s.time += s.dt
}
