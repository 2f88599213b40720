package depot

import (
	"github.com/TheBitDrifter/depot/internal/hashmap"
	"github.com/TheBitDrifter/depot/internal/presence"
	"github.com/TheBitDrifter/mask"
	"go.uber.org/zap"
)

// World owns every component store, relationship store, registered system and
// the command queue. It is not safe for concurrent use.
type World struct {
	stores        *hashmap.Map[string, *ComponentStore]
	relationships *hashmap.Map[string, *RelationshipStore]
	systems       []system
	commands      *CommandQueue

	entityCount int
	reserved    int

	matches  *matchCache
	changed  mask.Mask
	capacity int
	log      *zap.Logger
	running  bool
	closed   bool
}

type system struct {
	query Query
	fn    SystemFunc
}

func newWorld(bootstrap BootstrapFunc, ctx any) *World {
	w := &World{
		stores: hashmap.NewStringMap(hashmap.Options[string, *ComponentStore]{
			Destroy: func(_ string, s *ComponentStore) { s.release() },
		}),
		relationships: hashmap.NewStringMap(hashmap.Options[string, *RelationshipStore]{
			Destroy: func(_ string, r *RelationshipStore) { r.release() },
		}),
		capacity: Config.initialCapacity,
		log:      Config.Logger(),
	}
	if Config.matchCache && Config.matchCacheCapacity > 0 {
		w.matches = newMatchCache(Config.matchCacheCapacity)
	}
	w.commands = &CommandQueue{world: w}
	if bootstrap != nil {
		bootstrap(w.commands, ctx)
	}
	return w
}

// Commands returns the world's command queue.
func (w *World) Commands() *CommandQueue {
	return w.commands
}

// Store returns the store registered under name.
func (w *World) Store(name string) (*ComponentStore, bool) {
	return w.stores.Get(name)
}

func (w *World) storeFor(name string, size int) *ComponentStore {
	store, created := w.stores.GetOrInsert(name, func() *ComponentStore {
		s := newComponentStore(name, size, w.capacity)
		s.bit = uint32(w.stores.Len())
		s.changed = &w.changed
		return s
	})
	if created {
		w.log.Debug("component store created",
			zap.String("component", name),
			zap.Int("size", size),
			zap.Uint32("bit", store.bit),
		)
	}
	if store.itemSize != size {
		panic(ComponentSizeError{Name: name, Want: store.itemSize, Got: size})
	}
	return store
}

// InsertComponent copies record into entity id's component of the given name,
// creating the store on first use with size-byte records.
func (w *World) InsertComponent(id EntityID, name string, size int, record []byte) {
	w.mustOpen()
	w.mustExist(id)
	w.storeFor(name, size).Set(id, record)
}

// InsertTagComponent marks entity id with the zero-size component name.
func (w *World) InsertTagComponent(id EntityID, name string) {
	w.InsertComponent(id, name, 0, nil)
}

func (w *World) HasComponent(id EntityID, name string) bool {
	store, ok := w.stores.Get(name)
	return ok && store.Has(id)
}

// GetComponent returns entity id's record for name. The slice aliases the
// store and is valid until the next flush.
func (w *World) GetComponent(id EntityID, name string) ([]byte, bool) {
	store, ok := w.stores.Get(name)
	if !ok {
		return nil, false
	}
	return store.Get(id)
}

// InsertRelationship records the directed edge source -name-> target.
func (w *World) InsertRelationship(source EntityID, name string, target EntityID) {
	w.mustOpen()
	w.mustExist(source)
	w.mustExist(target)
	rel, created := w.relationships.GetOrInsert(name, func() *RelationshipStore {
		return newRelationshipStore(name)
	})
	if created {
		w.log.Debug("relationship store created", zap.String("relationship", name))
	}
	rel.Insert(source, target)
}

// Relationship returns the store registered under name.
func (w *World) Relationship(name string) (*RelationshipStore, bool) {
	return w.relationships.Get(name)
}

// RelationshipSources returns the entities with a name edge into target.
func (w *World) RelationshipSources(name string, target EntityID) (EntitySet, bool) {
	rel, ok := w.relationships.Get(name)
	if !ok {
		return EntitySet{}, false
	}
	return rel.Sources(target)
}

// RelationshipTargets returns the entities source has a name edge to.
func (w *World) RelationshipTargets(name string, source EntityID) (EntitySet, bool) {
	rel, ok := w.relationships.Get(name)
	if !ok {
		return EntitySet{}, false
	}
	return rel.Targets(source)
}

// RegisterSystem appends fn to the run order, iterating q.
func (w *World) RegisterSystem(q Query, fn SystemFunc) {
	w.mustOpen()
	w.systems = append(w.systems, system{query: q, fn: fn})
	w.log.Debug("system registered",
		zap.Int("index", len(w.systems)-1),
		zap.Stringer("query", q),
	)
}

func (w *World) SystemCount() int {
	return len(w.systems)
}

// RunSystems invokes every registered system once, in registration order, each
// with a freshly built iterator over its own query. Structural change made
// through the command queue becomes visible at the next Flush.
func (w *World) RunSystems(ctx any) {
	w.mustOpen()
	w.running = true
	defer func() { w.running = false }()

	systems := w.systems
	for _, sys := range systems {
		it := w.BuildQueryIterator(sys.query)
		sys.fn(w.commands, it, ctx)
		it.Close()
	}
}

// Flush applies every buffered command in enqueue order, then empties the
// queue and clears pending reservations. Call it once per tick after RunSystems.
func (w *World) Flush() {
	w.mustOpen()
	if w.running {
		panic(FlushDuringRunError{})
	}
	n := w.commands.finish(w)
	if n > 0 {
		w.log.Debug("command queue flushed",
			zap.Int("commands", n),
			zap.Int("entities", w.entityCount),
		)
	}
}

// CountMatching returns the number of entities q matches.
func (w *World) CountMatching(q Query) int {
	with, without := w.resolve(q)
	return len(w.match(with, without))
}

// BuildQueryIterator compiles q into an iterator over the entities it matches
// now. The iterator must not be used across a Flush.
func (w *World) BuildQueryIterator(q Query) *QueryIterator {
	w.mustOpen()
	with, without := w.resolve(q)
	return newQueryIterator(with, w.match(with, without))
}

func (w *World) resolve(q Query) (with, without []*ComponentStore) {
	with = make([]*ComponentStore, len(q.terms))
	for i, name := range q.terms {
		with[i], _ = w.stores.Get(name)
	}
	without = make([]*ComponentStore, len(q.without))
	for i, name := range q.without {
		without[i], _ = w.stores.Get(name)
	}
	return with, without
}

func (w *World) match(with, without []*ComponentStore) []EntityID {
	for _, s := range with {
		if s == nil {
			return nil
		}
	}
	sig, cacheable := signatureOf(with, without)
	cacheable = cacheable && w.matches != nil
	if cacheable {
		w.invalidateMatches()
		if ids, ok := w.matches.get(sig); ok {
			return ids
		}
	}

	var set *presence.Set
	if len(with) == 0 {
		set = presence.Full(uint(w.entityCount))
	} else {
		set = with[0].present.Clone()
		for _, s := range with[1:] {
			set.And(s.present)
		}
	}
	for _, s := range without {
		if s != nil {
			set.AndNot(s.present)
		}
	}

	ids := make([]EntityID, 0, set.Count())
	for id := range set.Ascending(uint(w.entityCount)) {
		ids = append(ids, EntityID(id))
	}
	if cacheable {
		w.matches.put(sig, ids)
	}
	return ids
}

func (w *World) invalidateMatches() {
	var none mask.Mask
	if w.changed == none {
		return
	}
	w.matches.invalidate(w.changed)
	w.changed = none
}

// Close releases every store and discards pending commands. The world must not
// be used afterwards.
func (w *World) Close() {
	if w.closed {
		return
	}
	w.stores.Clear()
	w.relationships.Clear()
	w.systems = nil
	w.commands.discard()
	if w.matches != nil {
		w.matches.Clear()
	}
	w.closed = true
}

func (w *World) mustOpen() {
	if w.closed {
		panic(ClosedWorldError{})
	}
}
