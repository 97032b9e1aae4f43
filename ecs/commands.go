package ecs

// Applier is the subset of World that Commands needs to replay a buffer.
type Applier[C Component] interface {
	IsAlive(e Entity) bool
	CreateEntityWith(cs ...C) Entity
	SetComponent(e Entity, c C)
	RemoveComponent(e Entity, id ComponentID)
	RemoveEntity(e Entity) bool
	SetFlag(e Entity, f FlagID)
	ClearFlag(e Entity, f FlagID)
}

// Commands buffers structural changes requested while rows are being iterated
// and applies them once iteration is over.
type Commands[C Component] struct {
	spawns  []spawnCommand[C]
	deletes []Entity
	sets    []setCommand[C]
	removes []removeComponentCommand
	flags   []flagCommand
	defers  []func()
}

// NewCommands creates an empty buffer.
func NewCommands[C Component]() *Commands[C] {
	return &Commands[C]{}
}

type spawnCommand[C Component] struct {
	components []C
	done       func(Entity)
}

type setCommand[C Component] struct {
	entity    Entity
	component C
}

type removeComponentCommand struct {
	entity Entity
	id     ComponentID
}

type flagCommand struct {
	entity Entity
	flag   FlagID
	set    bool
}

// Spawn queues the creation of an entity with the given components.
func (c *Commands[C]) Spawn(components ...C) {
	c.spawns = append(c.spawns, spawnCommand[C]{components: components})
}

// SpawnThen queues a spawn and calls done with the new entity once it exists.
func (c *Commands[C]) SpawnThen(done func(Entity), components ...C) {
	c.spawns = append(c.spawns, spawnCommand[C]{components: components, done: done})
}

// Delete queues the removal of an entity.
func (c *Commands[C]) Delete(entity Entity) {
	c.deletes = append(c.deletes, entity)
}

// Set queues storing a component on an entity.
func (c *Commands[C]) Set(entity Entity, component C) {
	c.sets = append(c.sets, setCommand[C]{entity: entity, component: component})
}

// RemoveComponent queues dropping a component kind from an entity.
func (c *Commands[C]) RemoveComponent(entity Entity, id ComponentID) {
	c.removes = append(c.removes, removeComponentCommand{entity: entity, id: id})
}

// SetFlag queues setting a user flag on an entity.
func (c *Commands[C]) SetFlag(entity Entity, flag FlagID) {
	c.flags = append(c.flags, flagCommand{entity: entity, flag: flag, set: true})
}

// ClearFlag queues clearing a user flag on an entity.
func (c *Commands[C]) ClearFlag(entity Entity, flag FlagID) {
	c.flags = append(c.flags, flagCommand{entity: entity, flag: flag})
}

// Defer queues a function to run after every other command.
func (c *Commands[C]) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands[C]) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.sets) + len(c.removes) + len(c.flags) + len(c.defers)
}

// Flush applies the buffer to w and resets it. Deletes run first; component
// and flag commands aimed at an entity that is no longer alive are dropped.
// Spawns run after that, so a spawn may reuse an id deleted in the same flush.
// Deferred functions run last.
//
// Commands queued by a SpawnThen callback or a deferred function are applied
// in a further round before Flush returns, so a callback that always queues
// more work never lets Flush finish.
func (c *Commands[C]) Flush(w Applier[C]) {
	for c.Len() > 0 {
		batch := *c
		*c = Commands[C]{}
		batch.apply(w)

		if c.Len() == 0 {
			batch.reset()
			*c = batch
		}
	}
}

func (c *Commands[C]) apply(w Applier[C]) {
	for _, e := range c.deletes {
		w.RemoveEntity(e)
	}

	for _, cmd := range c.removes {
		if w.IsAlive(cmd.entity) {
			w.RemoveComponent(cmd.entity, cmd.id)
		}
	}

	for _, cmd := range c.sets {
		if w.IsAlive(cmd.entity) {
			w.SetComponent(cmd.entity, cmd.component)
		}
	}

	for _, cmd := range c.flags {
		if !w.IsAlive(cmd.entity) {
			continue
		}
		if cmd.set {
			w.SetFlag(cmd.entity, cmd.flag)
		} else {
			w.ClearFlag(cmd.entity, cmd.flag)
		}
	}

	for _, cmd := range c.spawns {
		e := w.CreateEntityWith(cmd.components...)
		if cmd.done != nil {
			cmd.done(e)
		}
	}

	for _, fn := range c.defers {
		fn()
	}
}

// reset empties the buffer, keeping its backing arrays.
func (c *Commands[C]) reset() {
	clear(c.spawns)
	clear(c.sets)
	clear(c.defers)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.sets = c.sets[:0]
	c.removes = c.removes[:0]
	c.flags = c.flags[:0]
	c.defers = c.defers[:0]
}
