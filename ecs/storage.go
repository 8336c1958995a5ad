package ecs

import (
	"reflect"
	"unsafe"
	"weak"
)

// Storage owns every archetype and singleton of one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

type singletonEntry struct {
	typ     reflect.Type
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty world backed by the given registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// CreateEntityRef returns the shared ref for id, creating it on first use.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{
		Id:        id,
		Archetype: archetype,
	}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current id behind ref, or false once the entity is deleted.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Valid() {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches ref from its entity without deleting the entity.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if !ref.Valid() {
		return false
	}

	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}

	ref.Id = 0
	ref.Archetype = nil
	return true
}

// GetArchetype returns the archetype holding exactly the given component values, if any.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeByTypes is GetArchetype keyed by reflect.Type.
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := append([]reflect.Type(nil), types...)
	sortTypes(sorted)
	return s.archetypes[hashTypesToUint32(sorted)]
}

func (s *Storage) archetypeFor(types []reflect.Type) (*Archetype, uint32) {
	archetypeId := hashTypesToUint32(types)
	archetype, exists := s.archetypes[archetypeId]
	if !exists {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes[archetypeId] = archetype
	}
	return archetype, archetypeId
}

// Spawn creates an entity from component values (or pointers to them).
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype, archetypeId := s.archetypeFor(extractComponentTypes(components))
	return NewEntityId(archetypeId, archetype.Spawn(components))
}

// Delete removes the entity. Deleting an unknown or already deleted id does nothing.
func (s *Storage) Delete(id EntityId) {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return
	}
	archetype.Delete(id.Index())
}

// Exists reports whether id names a live entity.
func (s *Storage) Exists(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || len(archetype.columns) == 0 {
		return false
	}
	return archetype.columns[0].Has(int(id.Index()))
}

// moveEntity copies the entity at id into the archetype described by newTypes, taking
// replacement values from extra, and retargets its ref.
func (s *Storage) moveEntity(id EntityId, newTypes []reflect.Type, extra map[reflect.Type]any) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]
	weakPtr, hasRef := oldArchetype.refs.Get(id)

	if len(newTypes) == 0 {
		if hasRef {
			if ref := weakPtr.Value(); ref != nil {
				ref.Id = 0
				ref.Archetype = nil
			}
			oldArchetype.refs.Del(id)
		}
		oldArchetype.Delete(id.Index())
		return 0
	}

	newArchetype, newArchetypeId := s.archetypeFor(newTypes)

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if comp, ok := extra[typ]; ok {
			components = append(components, comp)
			continue
		}
		components = append(components, oldArchetype.GetComponent(id.Index(), typ))
	}

	newId := NewEntityId(newArchetypeId, newArchetype.Spawn(components))

	if hasRef {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = newArchetype
		}
		oldArchetype.refs.Del(id)
		newArchetype.refs.Put(newId, weakPtr)
	}

	oldArchetype.Delete(id.Index())
	return newId
}

// AddComponent attaches component to the entity, moving it to a new archetype. If the entity
// already has a component of that type, the value is replaced in place. Returns the new id.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	if !s.Exists(id) {
		return 0
	}
	oldArchetype := s.archetypes[id.ArchetypeId()]

	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	if oldArchetype.HasComponent(compType) {
		dst := reflect.ValueOf(oldArchetype.GetComponent(id.Index(), compType)).Elem()
		src := reflect.ValueOf(component)
		if src.Kind() == reflect.Ptr {
			src = src.Elem()
		}
		dst.Set(src)
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sortTypes(newTypes)

	return s.moveEntity(id, newTypes, map[reflect.Type]any{compType: component})
}

// RemoveComponent detaches a component type. An entity left with no components is deleted
// and 0 is returned.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	if !s.Exists(id) {
		return 0
	}
	oldArchetype := s.archetypes[id.ArchetypeId()]
	if !oldArchetype.HasComponent(compType) {
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	return s.moveEntity(id, newTypes, nil)
}

// GetComponent returns a pointer to the entity's component of compType, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks the entity's archetype for compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// Len counts live entities across all archetypes.
func (s *Storage) Len() int {
	total := 0
	for _, archetype := range s.archetypes {
		total += archetype.Len()
	}
	return total
}

// AddSingleton stores value as the world's single instance of its type. Adding a type
// that is already present overwrites the value but keeps its address, so cached
// Singleton pointers stay valid.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	src := reflect.ValueOf(value)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
		src = src.Elem()
	}

	if entry, ok := s.singletons[typ]; ok {
		entry.value.Elem().Set(src)
		return
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(src)
	s.singletons[typ] = &singletonEntry{
		typ:     typ,
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// RemoveSingleton drops the singleton of typ. Singleton accessors observe the removal.
func (s *Storage) RemoveSingleton(typ reflect.Type) {
	delete(s.singletons, typ)
}

// ReadSingleton points *target at the stored singleton. target must be a **T.
func (s *Storage) ReadSingleton(target any) bool {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr || targetValue.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	entry := s.getSingletonEntry(targetValue.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	targetValue.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		// Components are value types: structs or named primitives.
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sortTypes(types)
	return types
}

// hashTypesToUint32 is FNV-1a over the runtime type pointers of a sorted type list.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := dataPointer(t)
		val := uint32(uintptr(ptr))
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uintptr(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

// ComponentReader is anything that can hand out component pointers by type.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent is the typed form of GetComponent. Returns nil when missing.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
