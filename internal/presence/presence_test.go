package presence

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGrowPreservesBits(t *testing.T) {
	s := New(4)
	s.Set(1)
	s.Set(3)
	require.Equal(t, uint(4), s.Capacity())

	s.Grow(130)
	assert.Equal(t, uint(130), s.Capacity())
	assert.True(t, s.Test(1))
	assert.True(t, s.Test(3))
	assert.False(t, s.Test(2))
	assert.False(t, s.Test(129))

	s.Grow(8)
	assert.Equal(t, uint(130), s.Capacity(), "grow never shrinks")
	assert.Equal(t, uint(2), s.Count())
}

func TestSetIntersection(t *testing.T) {
	a := New(16)
	b := New(64)
	for _, id := range []uint{0, 2, 5, 9} {
		a.Set(id)
	}
	for _, id := range []uint{2, 9, 40} {
		b.Set(id)
	}

	both := a.Clone()
	both.And(b)
	assert.Equal(t, []uint{2, 9}, slices.Collect(both.Ascending(100)))

	only := a.Clone()
	only.AndNot(b)
	assert.Equal(t, []uint{0, 5}, slices.Collect(only.Ascending(100)))

	assert.True(t, a.Test(2), "clone leaves the original untouched")
}

func TestSetAscendingLimit(t *testing.T) {
	s := Full(10)
	assert.Equal(t, uint(10), s.Count())
	assert.Equal(t, []uint{0, 1, 2}, slices.Collect(s.Ascending(3)))
	assert.Empty(t, slices.Collect(New(8).Ascending(8)))
}
