package depot

import "iter"

type iteratorState uint8

const (
	iteratorBuilt iteratorState = iota
	iteratorIterating
	iteratorExhausted
)

// QueryIterator walks the entities a query matched when it was built, in
// ascending id order. It is single-pass: once Next returns false the iterator
// releases its match list and cannot be restarted.
type QueryIterator struct {
	stores  []*ComponentStore
	matches []EntityID
	total   int
	cursor  int
	state   iteratorState
}

func newQueryIterator(stores []*ComponentStore, matches []EntityID) *QueryIterator {
	return &QueryIterator{
		stores:  stores,
		matches: matches,
		total:   len(matches),
		cursor:  -1,
	}
}

func (it *QueryIterator) Next() bool {
	switch it.state {
	case iteratorExhausted:
		return false
	case iteratorBuilt:
		it.state = iteratorIterating
		it.cursor = 0
	default:
		it.cursor++
	}
	if it.cursor >= len(it.matches) {
		it.Close()
		return false
	}
	return true
}

// Get returns the record of the current entity for the query term at index
// term. It reports false when that term's store does not exist.
func (it *QueryIterator) Get(term int) ([]byte, bool) {
	it.mustIterate("Get")
	store := it.stores[term]
	if store == nil {
		return nil, false
	}
	return store.Get(it.matches[it.cursor])
}

// EntityID returns the current entity.
func (it *QueryIterator) EntityID() EntityID {
	it.mustIterate("EntityID")
	return it.matches[it.cursor]
}

// Len returns the number of entities matched at build time.
func (it *QueryIterator) Len() int {
	return it.total
}

// Remaining returns the number of entities Next has yet to visit.
func (it *QueryIterator) Remaining() int {
	switch it.state {
	case iteratorBuilt:
		return len(it.matches)
	case iteratorIterating:
		return len(it.matches) - it.cursor - 1
	}
	return 0
}

// Close releases the iterator's state. Further calls to Next return false.
func (it *QueryIterator) Close() {
	it.state = iteratorExhausted
	it.matches = nil
	it.stores = nil
	it.cursor = 0
}

// Entities drives Next, yielding each remaining entity id.
func (it *QueryIterator) Entities() iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		for it.Next() {
			if !yield(it.matches[it.cursor]) {
				return
			}
		}
	}
}

func (it *QueryIterator) mustIterate(op string) {
	if it.state != iteratorIterating {
		panic(IteratorStateError{Op: op})
	}
}
