package depot

import (
	"strings"

	"go.uber.org/zap"
)

type commandKind uint8

const (
	cmdRegisterSystem commandKind = iota + 1
	cmdCreateEntity
	cmdInsertComponent
	cmdInsertRelationship
)

func (k commandKind) String() string {
	switch k {
	case cmdRegisterSystem:
		return "register_system"
	case cmdCreateEntity:
		return "create_entity"
	case cmdInsertComponent:
		return "insert_component"
	case cmdInsertRelationship:
		return "insert_relationship"
	}
	return "unknown"
}

// command is one deferred structural change. Names and payloads are owned by
// the queue so callers may reuse their buffers after enqueueing.
type command struct {
	kind    commandKind
	system  system
	entity  EntityID
	target  EntityID
	name    string
	size    int
	payload []byte
}

// CommandQueue buffers structural changes until World.Flush applies them, in
// enqueue order.
type CommandQueue struct {
	world    *World
	commands []command
}

// Len returns the number of buffered commands.
func (q *CommandQueue) Len() int {
	return len(q.commands)
}

// RegisterSystem defers appending fn, iterating query, to the run order.
func (q *CommandQueue) RegisterSystem(query Query, fn SystemFunc) {
	q.commands = append(q.commands, command{
		kind:   cmdRegisterSystem,
		system: system{query: query, fn: fn},
	})
}

// ReserveEntity returns the id the next flush will materialize, counting
// earlier reservations of the same tick.
func (q *CommandQueue) ReserveEntity() EntityID {
	w := q.world
	id := EntityID(w.entityCount + w.reserved)
	w.reserved++
	q.commands = append(q.commands, command{
		kind:   cmdCreateEntity,
		entity: id,
	})
	return id
}

// InsertComponent defers copying record into entity id's component name.
// record is copied before InsertComponent returns.
func (q *CommandQueue) InsertComponent(id EntityID, name string, size int, record []byte) {
	if len(record) != size {
		panic(ComponentSizeError{Name: name, Want: size, Got: len(record)})
	}
	var payload []byte
	if size > 0 {
		payload = make([]byte, size)
		copy(payload, record)
	}
	q.commands = append(q.commands, command{
		kind:    cmdInsertComponent,
		entity:  id,
		name:    strings.Clone(name),
		size:    size,
		payload: payload,
	})
}

// InsertTagComponent defers marking entity id with the zero-size component name.
func (q *CommandQueue) InsertTagComponent(id EntityID, name string) {
	q.InsertComponent(id, name, 0, nil)
}

// InsertRelationship defers recording the edge source -name-> target.
func (q *CommandQueue) InsertRelationship(source EntityID, name string, target EntityID) {
	q.commands = append(q.commands, command{
		kind:   cmdInsertRelationship,
		entity: source,
		target: target,
		name:   strings.Clone(name),
	})
}

// finish applies and drops every buffered command, returning how many were
// applied. A panic while applying leaves the world partially updated.
func (q *CommandQueue) finish(w *World) int {
	n := len(q.commands)
	for i := range q.commands {
		w.apply(&q.commands[i])
		q.commands[i] = command{}
	}
	q.commands = q.commands[:0]
	w.reserved = 0
	return n
}

func (q *CommandQueue) discard() {
	clear(q.commands)
	q.commands = q.commands[:0]
	q.world.reserved = 0
}

func (w *World) apply(c *command) {
	switch c.kind {
	case cmdRegisterSystem:
		w.RegisterSystem(c.system.query, c.system.fn)
	case cmdCreateEntity:
		w.materialize()
	case cmdInsertComponent:
		w.InsertComponent(c.entity, c.name, c.size, c.payload)
	case cmdInsertRelationship:
		w.InsertRelationship(c.entity, c.name, c.target)
	default:
		w.log.Warn("skipping unknown command", zap.Stringer("kind", c.kind))
	}
}
