package ecs

// EntityId packs the archetype ID into the upper 32 bits and the slot index into the lower 32.
type EntityId uint64

// NewEntityId builds an EntityId from an archetype ID and slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId returns the archetype half of the id.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the slot index half of the id.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityRef follows an entity across archetype moves. A zero Id means the entity is gone.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Valid reports whether the referenced entity still exists.
func (r *EntityRef) Valid() bool {
	return r != nil && r.Id != 0
}
