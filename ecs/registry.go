package ecs

import "reflect"

// ComponentRegistry records which component types a Storage may hold. Registries are
// per world, so independent worlds (the asteroids arena and the battle screen, say)
// never share column factories.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent makes T usable as a component. Registering twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() iComponentStorage {
		return &blockStorage[T]{}
	}
}

// Registered reports whether typ has been registered.
func (r *ComponentRegistry) Registered(typ reflect.Type) bool {
	_, ok := r.factories[typ]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}
