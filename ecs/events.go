package ecs

import "iter"

type eventInstance[T any] struct {
	id    uint64
	event T
}

// Events is a double-buffered queue of T, kept as a singleton. An event stays
// readable for the frame it was sent in and the one after, so systems that run before
// the sender still observe it once. Update must run once per frame, which is what
// EventUpdateSystem does.
type Events[T any] struct {
	older  []eventInstance[T]
	newer  []eventInstance[T]
	nextId uint64
}

// AddEvents makes sure an Events[T] singleton exists and returns an accessor to it.
func AddEvents[T any](storage *Storage) *Singleton[Events[T]] {
	return NewSingleton[Events[T]](storage)
}

// Send queues one event.
func (e *Events[T]) Send(event T) {
	e.newer = append(e.newer, eventInstance[T]{id: e.nextId, event: event})
	e.nextId++
}

// Update drops the older buffer and starts a new one.
func (e *Events[T]) Update() {
	e.older, e.newer = e.newer, e.older[:0]
}

// Len counts events still buffered.
func (e *Events[T]) Len() int {
	return len(e.older) + len(e.newer)
}

// Clear drops every buffered event.
func (e *Events[T]) Clear() {
	e.older = e.older[:0]
	e.newer = e.newer[:0]
}

// EventReader remembers how far one consumer has read. Keep one per system as a plain
// struct field.
type EventReader[T any] struct {
	next uint64
}

// Read yields events this reader has not seen yet, oldest first.
func (r *EventReader[T]) Read(events *Events[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		if events == nil {
			return
		}
		for _, buf := range [2][]eventInstance[T]{events.older, events.newer} {
			for _, inst := range buf {
				if inst.id < r.next {
					continue
				}
				r.next = inst.id + 1
				if !yield(inst.event) {
					return
				}
			}
		}
	}
}

// Skip marks every buffered event as read.
func (r *EventReader[T]) Skip(events *Events[T]) {
	if events != nil {
		r.next = events.nextId
	}
}

// EventUpdateSystem swaps the buffers of Events[T]. Register it first in the frame.
type EventUpdateSystem[T any] struct {
	Events Singleton[Events[T]]
}

func (s *EventUpdateSystem[T]) Execute(frame *UpdateFrame) {
	if events := s.Events.Get(); events != nil {
		events.Update()
	}
}
