package depot

import (
	"github.com/TheBitDrifter/depot/internal/presence"
	"github.com/TheBitDrifter/mask"
)

// ComponentStore holds one component type for every entity: fixed-size records in a
// byte buffer indexed by entity id, plus a presence bit per id.
type ComponentStore struct {
	name     string
	itemSize int
	capacity int
	count    int
	data     []byte
	present  *presence.Set

	// Signature bit and the owning world's changed-mask; changed is nil for
	// stores created outside a world.
	bit     uint32
	changed *mask.Mask
}

func newComponentStore(name string, itemSize, capacity int) *ComponentStore {
	if itemSize < 0 {
		panic(ComponentSizeError{Name: name, Want: 0, Got: itemSize})
	}
	capacity = max(capacity, 1)
	return &ComponentStore{
		name:     name,
		itemSize: itemSize,
		capacity: capacity,
		data:     make([]byte, capacity*itemSize),
		present:  presence.New(uint(capacity)),
	}
}

func (s *ComponentStore) Name() string  { return s.name }
func (s *ComponentStore) ItemSize() int { return s.itemSize }
func (s *ComponentStore) Capacity() int { return s.capacity }

// Count returns the number of entities holding this component.
func (s *ComponentStore) Count() int { return s.count }

// EnsureCapacity doubles the store until minIndex is addressable. Existing
// records and presence bits are preserved; previously returned slices are not.
func (s *ComponentStore) EnsureCapacity(minIndex int) {
	if minIndex < s.capacity {
		return
	}
	capacity := max(s.capacity, 1)
	for capacity <= minIndex {
		capacity *= 2
	}
	if s.itemSize > 0 {
		data := make([]byte, capacity*s.itemSize)
		copy(data, s.data)
		s.data = data
	}
	s.present.Grow(uint(capacity))
	s.capacity = capacity
}

// Set copies record into the slot for id and marks id present.
// Tag stores accept an empty record and only record presence.
func (s *ComponentStore) Set(id EntityID, record []byte) {
	if len(record) != s.itemSize {
		panic(ComponentSizeError{Name: s.name, Want: s.itemSize, Got: len(record)})
	}
	idx := int(id)
	s.EnsureCapacity(idx)
	if s.itemSize > 0 {
		off := idx * s.itemSize
		copy(s.data[off:off+s.itemSize], record)
	}
	if s.present.Test(uint(idx)) {
		return
	}
	s.present.Set(uint(idx))
	s.count++
	if s.changed != nil && s.bit < signatureBits {
		s.changed.Mark(s.bit)
	}
}

// Get returns the record for id, aliasing the store's buffer. The slice is
// valid until the store next grows.
func (s *ComponentStore) Get(id EntityID) ([]byte, bool) {
	if !s.Has(id) {
		return nil, false
	}
	if s.itemSize == 0 {
		return []byte{}, true
	}
	off := int(id) * s.itemSize
	end := off + s.itemSize
	return s.data[off:end:end], true
}

func (s *ComponentStore) Has(id EntityID) bool {
	return int(id) < s.capacity && s.present.Test(uint(id))
}

func (s *ComponentStore) release() {
	s.data = nil
	s.present = presence.New(0)
	s.capacity = 0
	s.count = 0
}
