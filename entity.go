package depot

// EntityCount returns the number of materialized entities. Every materialized
// id is below it.
func (w *World) EntityCount() int {
	return w.entityCount
}

// Reserved returns the number of ids handed out by ReserveEntity and not yet
// materialized by a flush.
func (w *World) Reserved() int {
	return w.reserved
}

// CreateEntity materializes a new entity immediately. It panics while
// reservations are pending, since the next id is already promised.
func (w *World) CreateEntity() EntityID {
	w.mustOpen()
	if w.reserved > 0 {
		panic(ReservationConflictError{Reserved: w.reserved})
	}
	return w.materialize()
}

// ReserveEntity returns the id the next flush will materialize for it.
// It is safe to call while systems run.
func (w *World) ReserveEntity() EntityID {
	return w.commands.ReserveEntity()
}

func (w *World) materialize() EntityID {
	id := EntityID(w.entityCount)
	w.entityCount++
	return id
}

func (w *World) mustExist(id EntityID) {
	if int(id) >= w.entityCount {
		panic(EntityRangeError{ID: id, Count: w.entityCount})
	}
}
