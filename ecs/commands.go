package ecs

import "reflect"

// Commands buffers structural changes made while systems iterate. The Scheduler
// flushes the buffer once at the end of each frame, in the order: deletes, component
// removals, component additions, spawns, deferred functions.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues fn to run after every other command of the frame.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues a new entity.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues entity for deletion. Queuing the same entity twice is allowed.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: entity, component: component})
}

// RemoveComponent queues a component removal.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: entity, compType: compType})
}

// Pending is the number of queued commands.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies the buffer to storage and empties it.
//
// Removes and adds for one entity are applied in sequence. Each may move the entity to
// another archetype, so later commands are redirected to its current id.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool, len(c.deletes))
	for _, id := range c.deletes {
		if deleted[id] {
			continue
		}
		storage.Delete(id)
		deleted[id] = true
	}

	// Commands name entities by their id at queue time; moved maps that id to wherever
	// earlier adds and removes in this flush have put the entity.
	moved := make(map[EntityId]EntityId)
	current := func(id EntityId) EntityId {
		if next, ok := moved[id]; ok {
			return next
		}
		return id
	}

	for _, cmd := range c.removes {
		if deleted[cmd.entity] {
			continue
		}
		moved[cmd.entity] = storage.RemoveComponent(current(cmd.entity), cmd.compType)
	}

	for _, cmd := range c.adds {
		if deleted[cmd.entity] {
			continue
		}
		moved[cmd.entity] = storage.AddComponent(current(cmd.entity), cmd.component)
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
