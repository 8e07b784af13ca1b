package ecs

import (
	"github.com/milk9111/platformer/event"
	"github.com/milk9111/platformer/locomotion"
)

// LocomotionEvent is a locomotion event tagged with the entity whose
// controller raised it.
type LocomotionEvent struct {
	Entity Entity
	locomotion.Event
}

// EventBus carries locomotion events from controllers to reactive systems.
type EventBus = event.Bus[LocomotionEvent]

func NewEventBus() *EventBus {
	return event.NewBus[LocomotionEvent]()
}

// EntityPublisher returns a publisher that tags every event with e before
// queuing it on bus.
func EntityPublisher(bus *EventBus, e Entity) locomotion.Publisher {
	return locomotion.PublisherFunc(func(evt locomotion.Event) {
		bus.Publish(LocomotionEvent{Entity: e, Event: evt})
	})
}
