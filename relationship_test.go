package depot

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationshipBidirectional(t *testing.T) {
	w := newTestWorld(t, 4)
	w.InsertRelationship(1, "ChildOf", 0)
	w.InsertRelationship(2, "ChildOf", 0)
	w.InsertRelationship(3, "ChildOf", 2)

	targets, ok := w.RelationshipTargets("ChildOf", 1)
	require.True(t, ok)
	assert.True(t, targets.Contains(0))
	assert.Equal(t, 1, targets.Len())

	sources, ok := w.RelationshipSources("ChildOf", 0)
	require.True(t, ok)
	assert.Equal(t, []EntityID{1, 2}, sources.IDs())

	sources, ok = w.RelationshipSources("ChildOf", 2)
	require.True(t, ok)
	assert.Equal(t, []EntityID{3}, slices.Collect(sources.All()))
}

func TestRelationshipDeduplicates(t *testing.T) {
	w := newTestWorld(t, 2)
	w.InsertRelationship(0, "ChildOf", 1)
	w.InsertRelationship(0, "ChildOf", 1)

	targets, _ := w.RelationshipTargets("ChildOf", 0)
	sources, _ := w.RelationshipSources("ChildOf", 1)
	assert.Equal(t, 1, targets.Len())
	assert.Equal(t, 1, sources.Len())

	rel, ok := w.Relationship("ChildOf")
	require.True(t, ok)
	assert.Equal(t, 1, rel.Len())
	assert.False(t, rel.Insert(0, 1))
	assert.True(t, rel.Insert(1, 0))
}

func TestRelationshipLookupMiss(t *testing.T) {
	w := newTestWorld(t, 3)
	w.InsertRelationship(0, "Targets", 1)

	tests := []struct {
		name string
		get  func() (EntitySet, bool)
	}{
		{"Unknown relationship sources", func() (EntitySet, bool) { return w.RelationshipSources("Likes", 1) }},
		{"Unknown relationship targets", func() (EntitySet, bool) { return w.RelationshipTargets("Likes", 0) }},
		{"No sources for entity", func() (EntitySet, bool) { return w.RelationshipSources("Targets", 0) }},
		{"No targets for entity", func() (EntitySet, bool) { return w.RelationshipTargets("Targets", 2) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, ok := tt.get()
			assert.False(t, ok)
			assert.Zero(t, set.Len())
			assert.False(t, set.Contains(0))
			assert.Empty(t, set.IDs())
			assert.Empty(t, slices.Collect(set.All()))
		})
	}
}

func TestRelationshipNamesAreIndependent(t *testing.T) {
	w := newTestWorld(t, 3)
	w.InsertRelationship(0, "ChildOf", 1)
	w.InsertRelationship(0, "Likes", 2)

	childOf, _ := w.RelationshipTargets("ChildOf", 0)
	likes, _ := w.RelationshipTargets("Likes", 0)
	assert.Equal(t, []EntityID{1}, childOf.IDs())
	assert.Equal(t, []EntityID{2}, likes.IDs())
}

func TestEntitySetSeesLaterInserts(t *testing.T) {
	w := newTestWorld(t, 5)
	w.InsertRelationship(1, "ChildOf", 0)
	sources, _ := w.RelationshipSources("ChildOf", 0)

	w.InsertRelationship(4, "ChildOf", 0)
	assert.Equal(t, []EntityID{1, 4}, sources.IDs())
}
