// Package hashmap provides an open-addressing hash map with pluggable hashing,
// equality and value destruction.
//
// The map uses linear probing over a power-of-two slot table and backward-shift
// deletion, so lookups never walk tombstones. Keys are never required to be
// comparable; callers supply the equality function.
package hashmap

import "iter"

const (
	minCapacity = 8
	// loadNum/loadDen is the maximum fill ratio before the table doubles.
	loadNum = 3
	loadDen = 4
)

// Hasher maps a key to a 64-bit hash.
type Hasher[K any] func(key K) uint64

// Equal reports whether two keys are the same key.
type Equal[K any] func(a, b K) bool

// Destructor is invoked when the map drops a value: on overwrite, delete and clear.
type Destructor[K, V any] func(key K, value V)

// Options configures a new Map. The zero value is valid.
type Options[K, V any] struct {
	Capacity int
	Destroy  Destructor[K, V]
}

type entry[K, V any] struct {
	hash  uint64
	key   K
	value V
	used  bool
}

// Map is an open-addressing hash map. It is not safe for concurrent use.
type Map[K, V any] struct {
	hash    Hasher[K]
	equal   Equal[K]
	destroy Destructor[K, V]
	entries []entry[K, V]
	mask    uint64
	count   int
}

// New creates a map using hash and equal for its keys.
func New[K, V any](hash Hasher[K], equal Equal[K], opts Options[K, V]) *Map[K, V] {
	if hash == nil || equal == nil {
		panic("hashmap: nil hash or equal function")
	}
	m := &Map[K, V]{
		hash:    hash,
		equal:   equal,
		destroy: opts.Destroy,
	}
	m.rehash(capacityFor(opts.Capacity))
	return m
}

func capacityFor(n int) int {
	c := minCapacity
	for c*loadNum/loadDen < n {
		c <<= 1
	}
	return c
}

// Len returns the number of stored entries.
func (m *Map[K, V]) Len() int {
	return m.count
}

// Cap returns the current slot table size.
func (m *Map[K, V]) Cap() int {
	return len(m.entries)
}

func (m *Map[K, V]) find(key K, h uint64) (int, bool) {
	i := h & m.mask
	for {
		e := &m.entries[i]
		if !e.used {
			return int(i), false
		}
		if e.hash == h && m.equal(e.key, key) {
			return int(i), true
		}
		i = (i + 1) & m.mask
	}
}

func (m *Map[K, V]) rehash(capacity int) {
	old := m.entries
	m.entries = make([]entry[K, V], capacity)
	m.mask = uint64(capacity - 1)
	for i := range old {
		if !old[i].used {
			continue
		}
		idx, _ := m.find(old[i].key, old[i].hash)
		m.entries[idx] = old[i]
	}
}

func (m *Map[K, V]) growFor(n int) bool {
	if n*loadDen <= len(m.entries)*loadNum {
		return false
	}
	m.rehash(len(m.entries) * 2)
	return true
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	idx, ok := m.find(key, m.hash(key))
	if !ok {
		var zero V
		return zero, false
	}
	return m.entries[idx].value, true
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.find(key, m.hash(key))
	return ok
}

// Ref returns a pointer to the value stored under key, or nil.
// The pointer is invalidated by the next insertion or deletion.
func (m *Map[K, V]) Ref(key K) *V {
	idx, ok := m.find(key, m.hash(key))
	if !ok {
		return nil
	}
	return &m.entries[idx].value
}

// Put stores value under key and reports whether the key was new.
// An overwritten value is passed to the destructor.
func (m *Map[K, V]) Put(key K, value V) bool {
	h := m.hash(key)
	idx, ok := m.find(key, h)
	if ok {
		e := &m.entries[idx]
		if m.destroy != nil {
			m.destroy(e.key, e.value)
		}
		e.key = key
		e.value = value
		return false
	}
	if m.growFor(m.count + 1) {
		idx, _ = m.find(key, h)
	}
	m.entries[idx] = entry[K, V]{hash: h, key: key, value: value, used: true}
	m.count++
	return true
}

// GetOrInsert returns the value stored under key, calling create to insert one
// when the key is absent. The second result reports whether create ran.
func (m *Map[K, V]) GetOrInsert(key K, create func() V) (V, bool) {
	h := m.hash(key)
	idx, ok := m.find(key, h)
	if ok {
		return m.entries[idx].value, false
	}
	value := create()
	if m.growFor(m.count + 1) {
		idx, _ = m.find(key, h)
	}
	m.entries[idx] = entry[K, V]{hash: h, key: key, value: value, used: true}
	m.count++
	return value, true
}

// Delete removes key, passing its value to the destructor.
func (m *Map[K, V]) Delete(key K) bool {
	idx, ok := m.find(key, m.hash(key))
	if !ok {
		return false
	}
	if m.destroy != nil {
		m.destroy(m.entries[idx].key, m.entries[idx].value)
	}
	m.count--

	// Backward shift: pull later members of the probe run into the hole unless
	// their home slot lies cyclically in (hole, j].
	hole := uint64(idx)
	j := hole
	for {
		j = (j + 1) & m.mask
		if !m.entries[j].used {
			break
		}
		home := m.entries[j].hash & m.mask
		if hole <= j {
			if hole < home && home <= j {
				continue
			}
		} else if hole < home || home <= j {
			continue
		}
		m.entries[hole] = m.entries[j]
		hole = j
	}
	m.entries[hole] = entry[K, V]{}
	return true
}

// Clear drops every entry, running the destructor on each. Capacity is kept.
func (m *Map[K, V]) Clear() {
	for i := range m.entries {
		e := &m.entries[i]
		if e.used && m.destroy != nil {
			m.destroy(e.key, e.value)
		}
		*e = entry[K, V]{}
	}
	m.count = 0
}

// All yields every key/value pair in slot order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range m.entries {
			e := &m.entries[i]
			if !e.used {
				continue
			}
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Keys yields every key in slot order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}
