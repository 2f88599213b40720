package depot

// Insert immediately stores v as entity id's component.
func (c Component[T]) Insert(w *World, id EntityID, v T) {
	w.InsertComponent(id, c.name, c.size, bytesOf(&v, c.size))
}

// Enqueue defers storing v as entity id's component until the next flush.
func (c Component[T]) Enqueue(q *CommandQueue, id EntityID, v T) {
	q.InsertComponent(id, c.name, c.size, bytesOf(&v, c.size))
}

// Get returns a pointer into the store for entity id, or nil when absent.
// The pointer is valid until the next flush.
func (c Component[T]) Get(w *World, id EntityID) *T {
	record, ok := w.GetComponent(id, c.name)
	if !ok {
		return nil
	}
	return c.cast(record)
}

// Has reports whether entity id holds this component.
func (c Component[T]) Has(w *World, id EntityID) bool {
	return w.HasComponent(id, c.name)
}

// FromIterator returns the component of the iterator's current entity at the
// given query term, or nil when that term's store does not exist.
func (c Component[T]) FromIterator(it *QueryIterator, term int) *T {
	record, ok := it.Get(term)
	if !ok {
		return nil
	}
	return c.cast(record)
}

func (c Component[T]) cast(record []byte) *T {
	if len(record) != c.size {
		panic(ComponentSizeError{Name: c.name, Want: c.size, Got: len(record)})
	}
	return recordAs[T](record)
}

// Insert immediately marks entity id with the tag.
func (t Tag) Insert(w *World, id EntityID) {
	w.InsertTagComponent(id, t.name)
}

// Enqueue defers marking entity id with the tag until the next flush.
func (t Tag) Enqueue(q *CommandQueue, id EntityID) {
	q.InsertTagComponent(id, t.name)
}

func (t Tag) Has(w *World, id EntityID) bool {
	return w.HasComponent(id, t.name)
}
