package mro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextMethodFindsNextInMRO(t *testing.T) {
	table := newFakeClassTable()
	base := newFakeClass("Base")
	base.define("greet")
	mid := newFakeClass("Mid", "Base")
	mid.define("greet")
	leaf := newFakeClass("Leaf", "Mid")
	table.register(base)
	table.register(mid)
	table.register(leaf)

	ctx := NewContext(table, WithDefaultAlgorithm("dfs"))

	entry, err := ctx.NextMethod(leaf, "Mid::greet", true)
	require.NoError(t, err)
	require.NotNil(t, entry)
}

func TestNextMethodNoneLeftThrows(t *testing.T) {
	table := newFakeClassTable()
	base := newFakeClass("Base")
	base.define("greet")
	leaf := newFakeClass("Leaf", "Base")
	table.register(base)
	table.register(leaf)

	ctx := NewContext(table, WithDefaultAlgorithm("dfs"))

	_, err := ctx.NextMethod(leaf, "Base::greet", true)
	require.Error(t, err)
	var mroErr *Error
	require.ErrorAs(t, err, &mroErr)
	require.Equal(t, NoNextMethod, mroErr.Kind)
}

func TestNextMethodNoneLeftNoThrowReturnsNil(t *testing.T) {
	table := newFakeClassTable()
	base := newFakeClass("Base")
	base.define("greet")
	leaf := newFakeClass("Leaf", "Base")
	table.register(base)
	table.register(leaf)

	ctx := NewContext(table, WithDefaultAlgorithm("dfs"))

	entry, err := ctx.NextMethod(leaf, "Base::greet", false)
	require.NoError(t, err)
	require.Nil(t, entry)
}

func TestNextMethodSkipsDispatchCacheEntries(t *testing.T) {
	table := newFakeClassTable()
	base := newFakeClass("Base")
	base.define("greet")
	mid := newFakeClass("Mid", "Base")
	mid.methods["greet"] = fakeMethodEntry{dispatchCache: true}
	leaf := newFakeClass("Leaf", "Mid")
	table.register(base)
	table.register(mid)
	table.register(leaf)

	ctx := NewContext(table, WithDefaultAlgorithm("dfs"))

	// Calling from Leaf starts the scan at Mid, whose entry is a dispatch
	// cache and must be passed over in favour of Base's definition.
	entry, err := ctx.NextMethod(leaf, "Leaf::greet", true)
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.False(t, entry.IsDispatchCache())
}

func TestNextMethodMemoizationInvalidatedByMethodChange(t *testing.T) {
	table := newFakeClassTable()
	base := newFakeClass("Base")
	leaf := newFakeClass("Leaf", "Base")
	table.register(base)
	table.register(leaf)

	ctx := NewContext(table, WithDefaultAlgorithm("dfs"))

	entry, err := ctx.NextMethod(leaf, "Leaf::greet", false)
	require.NoError(t, err)
	require.Nil(t, entry)

	base.define("greet")
	require.NoError(t, ctx.OnMethodChanged(base))

	entry, err = ctx.NextMethod(leaf, "Leaf::greet", false)
	require.NoError(t, err)
	require.NotNil(t, entry)
}
