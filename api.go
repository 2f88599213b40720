package depot

// EntityID is a dense entity index, usable directly as a slot index in every ComponentStore.
type EntityID uint32

// BootstrapFunc declares the initial systems, entities and components of a World.
// It runs once, at construction, and its commands are the first ones flushed.
type BootstrapFunc func(cmds *CommandQueue, ctx any)

// SystemFunc is invoked once per RunSystems with an iterator over the entities its query matches.
// ctx is the host's per-tick value, shared unmodified by every system of the tick.
type SystemFunc func(cmds *CommandQueue, it *QueryIterator, ctx any)

// ComponentType describes a component by name and record size.
type ComponentType interface {
	Name() string
	Size() int
}

var (
	_ ComponentType = Component[struct{}]{}
	_ ComponentType = Tag{}
)
