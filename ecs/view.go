package ecs

import (
	"iter"
	"reflect"
	"sort"
	"unsafe"
)

// View iterates entities through a struct of component pointers, for example
//
//	ecs.NewView[struct {
//		ecs.EntityId
//		*Transform
//		*Collider
//		Health *Health `ecs:"optional"`
//	}](storage)
//
// Embedded pointer fields are required. Named pointer fields may carry `ecs:"optional"`
// and are nil when the entity lacks that component. A field of type EntityId receives
// the entity's id.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	idOffset    uintptr
	hasId       bool
}

var entityIdType = reflect.TypeFor[EntityId]()

// NewView parses T's fields. Panics if T is not a struct of pointers.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// Fill points ptr's fields at id's components. Returns false when a required one is missing.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !v.matchesArchetype(archetype) {
		return false
	}
	return v.populateResult(unsafe.Pointer(ptr), archetype, int(id.Index()), v.buildStorageIndices(archetype))
}

// Get returns a filled view struct or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef is Get through an EntityRef.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, requiredType := range v.types {
		if v.optional[i] {
			continue
		}
		if !archetype.HasComponent(requiredType) {
			return false
		}
	}
	return true
}

func (v *View[T]) buildStorageIndices(archetype *Archetype) []int {
	storageIndices := make([]int, len(v.types))
	for i, componentType := range v.types {
		storageIndices[i] = archetype.column(componentType)
	}
	return storageIndices
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, archetype *Archetype, entityIndex int, storageIndices []int) bool {
	for i, storageIdx := range storageIndices {
		fieldPtr := unsafe.Add(resultPtr, v.fieldOffset[i])

		var component any
		if storageIdx >= 0 {
			component = archetype.columns[storageIdx].Get(entityIndex)
		}

		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		*(*unsafe.Pointer)(fieldPtr) = dataPointer(component)
	}

	if v.hasId {
		*(*EntityId)(unsafe.Add(resultPtr, v.idOffset)) = NewEntityId(archetype.id, uint32(entityIndex))
	}
	return true
}

func (v *View[T]) iterArchetype(archetype *Archetype, yield func(EntityId, T) bool) bool {
	if len(archetype.columns) == 0 {
		return true
	}

	storageIndices := v.buildStorageIndices(archetype)
	var result T
	resultPtr := unsafe.Pointer(&result)

	for entityIndex := range archetype.columns[0].Iter() {
		if !v.populateResult(resultPtr, archetype, entityIndex, storageIndices) {
			continue
		}
		if !yield(NewEntityId(archetype.id, uint32(entityIndex)), result) {
			return false
		}
	}
	return true
}

// Iter walks every matching entity. Archetype order is unspecified.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.archetypes {
			if !v.matchesArchetype(archetype) {
				continue
			}
			if !v.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates an entity from the non-nil component pointers in data.
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	type typed struct {
		typ  reflect.Type
		comp any
	}
	parts := make([]typed, 0, len(v.types))
	for i, componentType := range v.types {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))
		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		parts = append(parts, typed{
			typ:  componentType,
			comp: reflect.NewAt(componentType, componentPtr).Elem().Interface(),
		})
	}

	if len(parts) == 0 {
		panic("cannot spawn entity without components")
	}

	sort.Slice(parts, func(i, j int) bool { return parts[i].typ.String() < parts[j].typ.String() })

	components := make([]any, len(parts))
	for i, p := range parts {
		components[i] = p.comp
	}
	return v.storage.Spawn(components...)
}

// dataPointer is the data word of an interface value.
func dataPointer(v any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1]
}
