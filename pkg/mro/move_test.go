package mro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOnClassMovedReindexesNestedNamespace(t *testing.T) {
	table := newFakeClassTable()
	base := newFakeClass("Base")
	inner := newFakeClass("Outer::Inner", "Base")
	outer := newFakeClass("Outer")
	outer.nested = map[string]Class{"Inner": inner}
	table.register(base)
	table.register(inner)
	table.register(outer)

	ctx := NewContext(table, WithDefaultAlgorithm("dfs"))
	_, err := ctx.LinearISA(inner)
	require.NoError(t, err)

	slot := fakeSlot{holds: outer}
	err = ctx.OnClassMoved(outer, outer, slot, 0)
	require.NoError(t, err)

	lin, err := ctx.LinearISA(inner)
	require.NoError(t, err)
	require.Equal(t, []string{"Outer::Inner", "Base"}, lin.Names)
}

func TestOnClassMovedScrubsClassesOnlyInOldSubtree(t *testing.T) {
	table := newFakeClassTable()
	base := newFakeClass("Base")
	deleted := newFakeClass("Outer::Deleted", "Base")
	table.register(base)
	table.register(deleted)

	ctx := NewContext(table, WithDefaultAlgorithm("dfs"))
	_, err := ctx.LinearISA(deleted)
	require.NoError(t, err)
	require.Contains(t, ctx.ISARev("Base"), "Outer::Deleted")

	oldOuter := newFakeClass("Outer")
	oldOuter.nested = map[string]Class{"Deleted": deleted}
	newOuter := newFakeClass("Outer")
	table.register(newOuter)

	slot := fakeSlot{holds: newOuter}
	err = ctx.OnClassMoved(newOuter, oldOuter, slot, 0)
	require.NoError(t, err)

	// Deleted was reachable from the old subtree but has no counterpart
	// under the new one: it was removed by the move, so it must not
	// linger as a phantom entry in Base's reverse-ISA index.
	require.NotContains(t, ctx.ISARev("Base"), "Outer::Deleted")
}

func TestOnClassMovedNoopWhenSlotNoLongerHoldsClass(t *testing.T) {
	table := newFakeClassTable()
	outer := newFakeClass("Outer")
	other := newFakeClass("Other")
	table.register(outer)
	table.register(other)

	ctx := NewContext(table)
	slot := fakeSlot{holds: other}

	err := ctx.OnClassMoved(outer, outer, slot, 0)
	require.NoError(t, err)
}

func TestOnClassMovedSkipExistenceCheck(t *testing.T) {
	table := newFakeClassTable()
	outer := newFakeClass("Outer")
	other := newFakeClass("Other")
	table.register(outer)
	table.register(other)

	ctx := NewContext(table)
	slot := fakeSlot{holds: other}

	err := ctx.OnClassMoved(outer, outer, slot, SkipExistenceCheck)
	require.NoError(t, err)
}

func TestOnClassMovedRejectsSelfNestingNamespace(t *testing.T) {
	table := newFakeClassTable()
	outer := newFakeClass("Outer")
	outer.nested = map[string]Class{"Outer": outer}
	table.register(outer)

	ctx := NewContext(table)
	slot := fakeSlot{holds: outer}

	err := ctx.OnClassMoved(outer, outer, slot, 0)
	require.Error(t, err)
	var mroErr *Error
	require.ErrorAs(t, err, &mroErr)
	require.Equal(t, RecursiveInheritance, mroErr.Kind)
}
