package depot

type factory struct{}

var Factory factory

// NewWorld creates a world and runs bootstrap once with its command queue.
// Nothing bootstrap enqueues is applied until the first Flush.
func (f factory) NewWorld(bootstrap BootstrapFunc, ctx any) *World {
	return newWorld(bootstrap, ctx)
}

// NewQuery builds a query over the named components.
func (f factory) NewQuery(terms ...string) Query {
	return newQuery(terms...)
}

// NewComponentStore creates a standalone store of itemSize-byte records.
func (f factory) NewComponentStore(itemSize int) *ComponentStore {
	return newComponentStore("", itemSize, Config.initialCapacity)
}

// FactoryNewComponent creates a descriptor named after T.
func FactoryNewComponent[T any]() Component[T] {
	return newComponent[T]("")
}

// FactoryNewNamedComponent creates a descriptor for T stored under name.
func FactoryNewNamedComponent[T any](name string) Component[T] {
	return newComponent[T](name)
}

func FactoryNewTag(name string) Tag {
	return Tag{name: name}
}
