package ecs

import (
	"fmt"

	"github.com/milk9111/platformer/ecs/component"
)

// Add stores value as the T component of e. Errors wrap the component
// sentinels and name the component type.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value *T) error {
	if value == nil {
		return fmt.Errorf("add %s: %w", handle.Name(), component.ErrNilComponent)
	}
	if err := w.AddComponent(e, handle.ID(), value); err != nil {
		return fmt.Errorf("add %s: %w", handle.Name(), err)
	}
	return nil
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.RemoveComponent(e, handle.ID())
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.HasComponent(e, handle.ID())
}

// Get returns the stored *T. Mutating it mutates the component.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	value, ok := w.GetComponent(e, handle.ID())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	return cast, ok
}

// ForEach calls fn for every entity with a T component.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	for _, e := range w.Query(handle.ID()) {
		if v, ok := Get(w, e, handle); ok {
			fn(e, v)
		}
	}
}

// ForEach2 calls fn for every entity with both an A and a B component.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(ha.ID(), hb.ID()) {
		a, okA := Get(w, e, ha)
		b, okB := Get(w, e, hb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// First returns the first entity with a T component.
func First[T any](w *World, handle component.ComponentHandle[T]) (Entity, bool) {
	return w.First(handle.ID())
}

// Query returns every entity with a T component.
func Query[T any](w *World, handle component.ComponentHandle[T]) []Entity {
	return w.Query(handle.ID())
}
