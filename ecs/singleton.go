package ecs

import "reflect"

// Singleton is typed access to a world-global value that belongs to no entity: arena
// bounds, configuration, the turn queue, event buffers and the like.
type Singleton[T any] struct {
	storage       *Storage
	componentType reflect.Type
}

// NewSingleton returns an accessor for T, creating the value first if storage has none.
// The optional initializer is used only in that case.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	s := &Singleton[T]{}
	s.Init(storage)

	if storage.getSingletonEntry(s.componentType) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(&value)
	}
	return s
}

// Init binds the accessor. Called by Scheduler.Register.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentType = reflect.TypeFor[T]()
}

// Get returns the stored value, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.storage == nil {
		return nil
	}
	entry := s.storage.getSingletonEntry(s.componentType)
	if entry == nil {
		return nil
	}
	return (*T)(entry.dataPtr)
}

// Exists reports whether the value is present.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

// Set stores value, replacing any previous one in place.
func (s *Singleton[T]) Set(value T) {
	s.storage.AddSingleton(&value)
}
