// Package presence tracks which entity ids own a component.
package presence

import (
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// Set is a growable bit-per-id presence set.
type Set struct {
	bits *bitset.BitSet
}

// New returns an empty set able to hold ids below capacity without growing.
func New(capacity uint) *Set {
	return &Set{bits: bitset.New(capacity)}
}

// Full returns a set holding every id in [0, n).
func Full(n uint) *Set {
	bits := bitset.New(n)
	bits.FlipRange(0, n)
	return &Set{bits: bits}
}

// Capacity returns the number of ids addressable without growing.
func (s *Set) Capacity() uint {
	return s.bits.Len()
}

// Grow reallocates the set to hold capacity ids, preserving existing bits.
// Shrinking is ignored.
func (s *Set) Grow(capacity uint) {
	if capacity <= s.bits.Len() {
		return
	}
	grown := bitset.New(capacity)
	s.bits.Copy(grown)
	s.bits = grown
}

func (s *Set) Set(id uint) {
	s.bits.Set(id)
}

func (s *Set) Test(id uint) bool {
	return s.bits.Test(id)
}

// Count returns the number of present ids.
func (s *Set) Count() uint {
	return s.bits.Count()
}

func (s *Set) Clone() *Set {
	return &Set{bits: s.bits.Clone()}
}

// And keeps only ids also present in other.
func (s *Set) And(other *Set) {
	s.bits.InPlaceIntersection(other.bits)
}

// AndNot drops ids present in other.
func (s *Set) AndNot(other *Set) {
	s.bits.InPlaceDifference(other.bits)
}

// Ascending yields present ids below limit in increasing order.
func (s *Set) Ascending(limit uint) iter.Seq[uint] {
	return func(yield func(uint) bool) {
		for i, ok := s.bits.NextSet(0); ok && i < limit; i, ok = s.bits.NextSet(i + 1) {
			if !yield(i) {
				return
			}
		}
	}
}
