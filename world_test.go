package depot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapRunsOnceAndFlushesFirst(t *testing.T) {
	position := FactoryNewComponent[Position]()
	calls := 0
	var seeded EntityID
	var gotCtx any

	w := Factory.NewWorld(func(cmds *CommandQueue, ctx any) {
		calls++
		gotCtx = ctx
		seeded = cmds.ReserveEntity()
		position.Enqueue(cmds, seeded, Position{X: 1})
		cmds.RegisterSystem(QueryOf(position), func(_ *CommandQueue, it *QueryIterator, _ any) {
			for it.Next() {
				position.FromIterator(it, 0).X++
			}
		})
	}, "boot")
	defer w.Close()

	assert.Equal(t, 1, calls)
	assert.Equal(t, "boot", gotCtx)
	assert.Zero(t, w.EntityCount(), "bootstrap commands wait for the first flush")
	assert.Equal(t, 3, w.Commands().Len())

	w.RunSystems(nil)
	w.Flush()
	require.Equal(t, 1, w.EntityCount())
	assert.Equal(t, 1.0, position.Get(w, seeded).X, "no systems ran before the bootstrap flush")

	w.RunSystems(nil)
	w.Flush()
	assert.Equal(t, 2.0, position.Get(w, seeded).X)
	assert.Equal(t, 1, calls)
}

func TestSystemsRunInRegistrationOrder(t *testing.T) {
	w := newTestWorld(t, 3)
	for id := range EntityID(3) {
		w.InsertTagComponent(id, "Marked")
	}
	q := Factory.NewQuery("Marked")

	var trace []string
	w.RegisterSystem(q, func(_ *CommandQueue, it *QueryIterator, _ any) {
		for it.Next() {
			trace = append(trace, "A")
		}
	})
	w.RegisterSystem(q, func(_ *CommandQueue, it *QueryIterator, _ any) {
		for it.Next() {
			trace = append(trace, "B")
		}
	})

	w.RunSystems(nil)
	assert.Equal(t, []string{"A", "A", "A", "B", "B", "B"}, trace)
}

func TestSystemsShareContext(t *testing.T) {
	type frame struct {
		dt float64
	}
	w := newTestWorld(t, 0)
	ctx := &frame{dt: 0.016}

	var seen []any
	for range 3 {
		w.RegisterSystem(Factory.NewQuery(), func(_ *CommandQueue, _ *QueryIterator, c any) {
			seen = append(seen, c)
		})
	}
	w.RunSystems(ctx)

	require.Len(t, seen, 3)
	for _, c := range seen {
		assert.Same(t, ctx, c)
	}
}

func TestSystemsSeeOwnQuery(t *testing.T) {
	w := newTestWorld(t, 4)
	w.InsertTagComponent(0, "A")
	w.InsertTagComponent(1, "A")
	w.InsertTagComponent(1, "B")
	w.InsertTagComponent(3, "B")

	counts := map[string]int{}
	for _, name := range []string{"A", "B"} {
		w.RegisterSystem(Factory.NewQuery(name), func(_ *CommandQueue, it *QueryIterator, _ any) {
			counts[name] = it.Len()
		})
	}
	w.RunSystems(nil)
	assert.Equal(t, map[string]int{"A": 2, "B": 2}, counts)
}

func TestSpawningSystemGrowsWorldPerTick(t *testing.T) {
	position := FactoryNewComponent[Position]()
	w := Factory.NewWorld(func(cmds *CommandQueue, _ any) {
		root := cmds.ReserveEntity()
		position.Enqueue(cmds, root, Position{})
		cmds.RegisterSystem(QueryOf(position), func(cmds *CommandQueue, it *QueryIterator, _ any) {
			for it.Next() {
				child := cmds.ReserveEntity()
				position.Enqueue(cmds, child, Position{X: position.FromIterator(it, 0).X + 1})
				cmds.InsertRelationship(child, "SpawnedBy", it.EntityID())
			}
		})
	}, nil)
	defer w.Close()

	w.Flush()
	want := 1
	for range 4 {
		w.RunSystems(nil)
		w.Flush()
		want *= 2
		assert.Equal(t, want, w.EntityCount())
		assert.Equal(t, want, w.CountMatching(QueryOf(position)))
	}
	spawned, ok := w.RelationshipSources("SpawnedBy", 0)
	require.True(t, ok)
	assert.Equal(t, []EntityID{1, 2, 4, 8}, spawned.IDs())
}

func TestFlushDuringRunPanics(t *testing.T) {
	w := newTestWorld(t, 0)
	w.RegisterSystem(Factory.NewQuery(), func(*CommandQueue, *QueryIterator, any) {
		w.Flush()
	})
	assert.PanicsWithValue(t, FlushDuringRunError{}, func() { w.RunSystems(nil) })

	assert.NotPanics(t, w.Flush, "running flag resets after the panic")
}

func TestWorldClose(t *testing.T) {
	w := Factory.NewWorld(nil, nil)
	id := w.CreateEntity()
	w.InsertTagComponent(id, "Marked")
	w.InsertRelationship(id, "Self", id)
	store, _ := w.Store("Marked")
	w.Commands().InsertTagComponent(id, "Pending")

	w.Close()
	w.Close()

	assert.Zero(t, store.Count())
	assert.Zero(t, w.Commands().Len())
	assert.PanicsWithValue(t, ClosedWorldError{}, func() { w.CreateEntity() })
	assert.PanicsWithValue(t, ClosedWorldError{}, func() { w.RunSystems(nil) })
	assert.False(t, w.HasComponent(id, "Marked"))
}
