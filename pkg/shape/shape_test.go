package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootIsEmpty(t *testing.T) {
	require.Equal(t, 0, Root.NameCount())
	_, ok := Root.SlotOf("x")
	assert.False(t, ok)
}

func TestTransitionAppendsSlot(t *testing.T) {
	s1 := Root.Transition("a")
	slot, ok := s1.SlotOf("a")
	require.True(t, ok)
	assert.Equal(t, 0, slot)

	s2 := s1.Transition("b")
	slot, ok = s2.SlotOf("b")
	require.True(t, ok)
	assert.Equal(t, 1, slot)

	// a is still reachable from the deeper shape.
	slot, ok = s2.SlotOf("a")
	require.True(t, ok)
	assert.Equal(t, 0, slot)
}

func TestTransitionSharing(t *testing.T) {
	// Two objects built by the same sequence of writes share shapes
	// (spec §8 "Shape sharing" scenario).
	obj1 := Root.Transition("x").Transition("y")
	obj2 := Root.Transition("x").Transition("y")
	assert.Same(t, obj1, obj2)

	// Diverging after a shared prefix produces distinct children.
	obj3 := Root.Transition("x").Transition("z")
	assert.NotSame(t, obj1, obj3)
}

func TestTransitionDoesNotMutateParent(t *testing.T) {
	base := Root.Transition("a")
	baseCount := base.NameCount()
	_ = base.Transition("b")
	assert.Equal(t, baseCount, base.NameCount())
}

func TestNamesPreservesInsertionOrder(t *testing.T) {
	s := Root.Transition("first").Transition("second").Transition("third")
	assert.Equal(t, []string{"first", "second", "third"}, s.Names())
}

func TestInlineCache(t *testing.T) {
	var ic InlineCache
	s1 := Root.Transition("a")
	_, ok := ic.Lookup(s1)
	assert.False(t, ok)

	ic.Update(s1, 0)
	slot, ok := ic.Lookup(s1)
	require.True(t, ok)
	assert.Equal(t, 0, slot)

	s2 := Root.Transition("b")
	_, ok = ic.Lookup(s2)
	assert.False(t, ok, "cache must miss on a different shape")
}
