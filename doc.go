/*
Package depot provides the entity and component storage core of a small real-time simulation framework.

Depot keeps one dense store per component type, indexed directly by entity id, and schedules plain
functions (systems) over declarative component-presence queries. Structural change requested while
systems run is buffered in a command queue and applied at an explicit per-tick barrier.

Core Concepts:

  - Entity: a dense integer id, assigned from 0 upward and never recycled.
  - Component: a named fixed-size record (or a zero-size tag) attached to an entity.
  - ComponentStore: a byte buffer plus presence bits holding one component type for every entity.
  - Query: a conjunction of component names compiled into an ascending match list.
  - System: a function run once per tick over the entities its query matches.
  - CommandQueue: the FIFO of deferred structural changes applied by World.Flush.
  - Relationship: a named directed edge between entities, indexed by source and by target.

Basic Usage:

	position := depot.FactoryNewComponent[Position]()
	velocity := depot.FactoryNewComponent[Velocity]()

	world := depot.Factory.NewWorld(func(cmds *depot.CommandQueue, _ any) {
		e := cmds.ReserveEntity()
		position.Enqueue(cmds, e, Position{})
		velocity.Enqueue(cmds, e, Velocity{X: 1})

		cmds.RegisterSystem(depot.QueryOf(position, velocity), func(_ *depot.CommandQueue, it *depot.QueryIterator, _ any) {
			for it.Next() {
				pos := position.FromIterator(it, 0)
				vel := velocity.FromIterator(it, 1)
				pos.X += vel.X
				pos.Y += vel.Y
			}
		})
	}, nil)

	for range ticks {
		world.RunSystems(frame)
		world.Flush()
	}

Component payloads are stored as raw bytes, so component types must not contain Go pointers
(strings, slices, maps and interfaces included).
*/
package depot
