package depot

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/TheBitDrifter/depot/internal/hashmap"
)

// RelationshipStore indexes one named relationship in both directions.
// It is append-only.
type RelationshipStore struct {
	name       string
	pairs      int
	sourcesFor *hashmap.Map[EntityID, *roaring.Bitmap]
	targetsFor *hashmap.Map[EntityID, *roaring.Bitmap]
}

func newRelationshipStore(name string) *RelationshipStore {
	opts := hashmap.Options[EntityID, *roaring.Bitmap]{
		Destroy: func(_ EntityID, set *roaring.Bitmap) { set.Clear() },
	}
	return &RelationshipStore{
		name:       name,
		sourcesFor: hashmap.New(hashmap.Uint32[EntityID], hashmap.Same[EntityID], opts),
		targetsFor: hashmap.New(hashmap.Uint32[EntityID], hashmap.Same[EntityID], opts),
	}
}

func (r *RelationshipStore) Name() string { return r.name }

// Len returns the number of distinct (source, target) pairs.
func (r *RelationshipStore) Len() int { return r.pairs }

// Insert records source -> target and reports whether the pair was new.
func (r *RelationshipStore) Insert(source, target EntityID) bool {
	sources, _ := r.sourcesFor.GetOrInsert(target, roaring.New)
	targets, _ := r.targetsFor.GetOrInsert(source, roaring.New)
	added := sources.CheckedAdd(uint32(source))
	targets.Add(uint32(target))
	if added {
		r.pairs++
	}
	return added
}

// Sources returns every entity pointing at target.
func (r *RelationshipStore) Sources(target EntityID) (EntitySet, bool) {
	set, ok := r.sourcesFor.Get(target)
	return EntitySet{bits: set}, ok
}

// Targets returns every entity source points at.
func (r *RelationshipStore) Targets(source EntityID) (EntitySet, bool) {
	set, ok := r.targetsFor.Get(source)
	return EntitySet{bits: set}, ok
}

func (r *RelationshipStore) release() {
	r.sourcesFor.Clear()
	r.targetsFor.Clear()
	r.pairs = 0
}

// EntitySet is a read-only view of a relationship's id set. It reflects later
// insertions into the same relationship.
type EntitySet struct {
	bits *roaring.Bitmap
}

func (s EntitySet) Len() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.GetCardinality())
}

func (s EntitySet) Contains(id EntityID) bool {
	return s.bits != nil && s.bits.Contains(uint32(id))
}

// IDs returns the members in ascending order.
func (s EntitySet) IDs() []EntityID {
	if s.bits == nil {
		return nil
	}
	raw := s.bits.ToArray()
	ids := make([]EntityID, len(raw))
	for i, id := range raw {
		ids[i] = EntityID(id)
	}
	return ids
}

// All yields the members in ascending order.
func (s EntitySet) All() iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		if s.bits == nil {
			return
		}
		it := s.bits.Iterator()
		for it.HasNext() {
			if !yield(EntityID(it.Next())) {
				return
			}
		}
	}
}
