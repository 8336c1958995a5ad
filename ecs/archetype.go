package ecs

import (
	"iter"
	"reflect"
	"slices"
	"strings"
	"weak"

	"github.com/kamstrup/intmap"
)

// sortTypes orders component types by name so the same set always hashes to one
// archetype.
func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
}

// Archetype holds the entities that share exactly one set of component types. There is
// a column per type and a row per entity; a row index is valid in every column.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []iComponentStorage
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype allocates one column per type. types must already be sorted and
// registered; an unknown type panics.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	columns := make([]iComponentStorage, 0, len(types))
	for _, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("ecs: component type " + typ.String() + " not registered")
		}
		columns = append(columns, factory())
	}
	return &Archetype{
		id:      id,
		types:   types,
		columns: columns,
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}
}

func (a *Archetype) column(compType reflect.Type) int {
	return slices.Index(a.types, compType)
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// Spawn writes a new row from components and returns its index. Components whose type
// has no column are ignored.
func (a *Archetype) Spawn(components []any) uint32 {
	row := 0
	for _, comp := range components {
		if col := a.column(componentType(comp)); col >= 0 {
			row = a.columns[col].Append(comp)
		}
	}
	return uint32(row)
}

// GetComponent points into the compType column at row, or is nil when the archetype
// has no such column.
func (a *Archetype) GetComponent(row uint32, compType reflect.Type) any {
	col := a.column(compType)
	if col < 0 {
		return nil
	}
	return a.columns[col].Get(int(row))
}

// Delete frees row and invalidates its ref. Other rows keep their index.
func (a *Archetype) Delete(row uint32) {
	id := NewEntityId(a.id, row)
	if wp, ok := a.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}
	for _, col := range a.columns {
		col.Delete(int(row))
	}
}

func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return a.column(compType) >= 0
}

func (a *Archetype) ID() uint32 { return a.id }

func (a *Archetype) Types() []reflect.Type { return a.types }

// Len is the number of live rows.
func (a *Archetype) Len() int {
	n := 0
	for range a.Iter() {
		n++
	}
	return n
}

// Compact moves live rows to the front. Refs follow their rows; plain EntityIds into
// this archetype go stale.
func (a *Archetype) Compact() {
	if len(a.columns) == 0 {
		return
	}
	moved := a.columns[0].Compact()
	for _, col := range a.columns[1:] {
		col.Compact()
	}

	kept := intmap.New[EntityId, weak.Pointer[EntityRef]](len(moved))
	for from, to := range moved {
		wp, ok := a.refs.Get(NewEntityId(a.id, uint32(from)))
		if !ok {
			continue
		}
		if ref := wp.Value(); ref != nil {
			ref.Id = NewEntityId(a.id, uint32(to))
			kept.Put(ref.Id, wp)
		}
	}
	a.refs = kept
}

// Iter yields live entity ids by ascending row.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for row := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(row))) {
				return
			}
		}
	}
}
