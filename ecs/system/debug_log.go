package system

import (
	"log"

	"github.com/milk9111/platformer/ecs"
)

// LogLocomotionEvents logs every locomotion event dispatched on bus.
func LogLocomotionEvents(bus *ecs.EventBus) func() {
	return bus.Subscribe(func(evt ecs.LocomotionEvent) {
		log.Printf("locomotion: entity=%d %s state=%s", uint64(evt.Entity), evt.Kind, evt.State)
	})
}
