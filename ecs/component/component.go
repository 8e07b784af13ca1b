package component

import (
	"errors"
	"reflect"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID is the storage key of a component type within a World.
// Zero is never issued.
type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentHandle is the typed key used by the generic ecs accessors. Each
// call to NewComponent issues a fresh ID, so handles are declared once per
// component type as package variables.
type ComponentHandle[T any] struct {
	id   ComponentID
	name string
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{
		id:   ComponentID(nextComponentID.Add(1)),
		name: reflect.TypeOf((*T)(nil)).Elem().Name(),
	}
}

func (h ComponentHandle[T]) ID() ComponentID { return h.id }

// Valid is false for the zero handle.
func (h ComponentHandle[T]) Valid() bool { return h.id != 0 }

// Name is the component's Go type name, used in error messages and debug
// output.
func (h ComponentHandle[T]) Name() string {
	if h.name == "" {
		return "component"
	}
	return h.name
}
