package hashmap

import "github.com/cespare/xxhash/v2"

// String hashes a string key with xxHash64.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Uint32 hashes a 32-bit integer key with the murmur3 finalizer so that dense
// ids spread across the slot table.
func Uint32[K ~uint32](k K) uint64 {
	x := uint64(k)
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// Same is the equality function for comparable keys.
func Same[K comparable](a, b K) bool {
	return a == b
}

// NewStringMap is shorthand for a string-keyed map.
func NewStringMap[V any](opts Options[string, V]) *Map[string, V] {
	return New(String, Same[string], opts)
}
