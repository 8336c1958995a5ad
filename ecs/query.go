package ecs

import "iter"

// Query is a View with a cached archetype match list and a row snapshot taken by
// Execute. Schedulers execute every Query field of a system immediately before running
// it, so a system reads the world as it stood when the system started.
type Query[T any] struct {
	view    *View[T]
	storage *Storage

	matched []*Archetype
	seen    int // archetype count when matched was built

	ids      []EntityId
	rows     []T
	executed bool
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops any snapshot.
func (q *Query[T]) Init(storage *Storage) {
	*q = Query[T]{view: NewView[T](storage), storage: storage, seen: -1}
}

// Execute takes a fresh snapshot of the matching rows.
func (q *Query[T]) Execute() {
	if n := len(q.storage.archetypes); n != q.seen {
		q.seen = n
		q.matched = q.matched[:0]
		for _, archetype := range q.storage.archetypes {
			if q.view.matchesArchetype(archetype) {
				q.matched = append(q.matched, archetype)
			}
		}
	}

	q.ids, q.rows = q.ids[:0], q.rows[:0]
	for _, archetype := range q.matched {
		q.view.iterArchetype(archetype, func(id EntityId, row T) bool {
			q.ids = append(q.ids, id)
			q.rows = append(q.rows, row)
			return true
		})
	}
	q.executed = true
}

func (q *Query[T]) mustExecuted(op string) {
	if !q.executed {
		panic("ecs: Query." + op + " before Execute")
	}
}

// Iter yields the snapshot with ids. It panics before the first Execute.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustExecuted("Iter")
	return func(yield func(EntityId, T) bool) {
		for i, id := range q.ids {
			if !yield(id, q.rows[i]) {
				return
			}
		}
	}
}

// Values is Iter without the ids.
func (q *Query[T]) Values() iter.Seq[T] {
	q.mustExecuted("Values")
	return func(yield func(T) bool) {
		for _, row := range q.rows {
			if !yield(row) {
				return
			}
		}
	}
}

func (q *Query[T]) Len() int { return len(q.rows) }

// First is the first snapshot row.
func (q *Query[T]) First() (T, bool) {
	if len(q.rows) == 0 {
		var zero T
		return zero, false
	}
	return q.rows[0], true
}

// Get reads any entity through the view, ignoring the snapshot.
func (q *Query[T]) Get(id EntityId) *T {
	return q.view.Get(id)
}
