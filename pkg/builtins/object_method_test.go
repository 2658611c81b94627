package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purplert/jsruntime/pkg/arrayobj"
	"github.com/purplert/jsruntime/pkg/iterator"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

func TestCallObjectMethodHasOwnPropertyOnObject(t *testing.T) {
	obj := value.NewObject(value.NullValue)
	require.NoError(t, object.SetOwnProperty(obj, "a", value.NewNumber(1)))

	result, handled, err := CallObjectMethod(obj, "hasOwnProperty", []*value.Value{value.NewString("a")})
	require.NoError(t, err)
	require.True(t, handled)
	assert.True(t, result.Bool())

	result, handled, err = CallObjectMethod(obj, "hasOwnProperty", []*value.Value{value.NewString("b")})
	require.NoError(t, err)
	require.True(t, handled)
	assert.False(t, result.Bool())
}

func TestCallObjectMethodHasOwnPropertyIgnoresInherited(t *testing.T) {
	proto := value.NewObject(value.NullValue)
	require.NoError(t, object.SetOwnProperty(proto, "inherited", value.NewNumber(1)))
	child := value.NewObject(proto)

	result, handled, err := CallObjectMethod(child, "hasOwnProperty", []*value.Value{value.NewString("inherited")})
	require.NoError(t, err)
	require.True(t, handled)
	assert.False(t, result.Bool())
}

func TestCallObjectMethodHasOwnPropertyOnArray(t *testing.T) {
	arr := value.NewArray(value.NullValue)
	require.NoError(t, arrayobj.Set(arr, "0", value.NewString("x")))

	result, handled, err := CallObjectMethod(arr, "hasOwnProperty", []*value.Value{value.NewString("0")})
	require.NoError(t, err)
	require.True(t, handled)
	assert.True(t, result.Bool())

	result, handled, err = CallObjectMethod(arr, "hasOwnProperty", []*value.Value{value.NewString("length")})
	require.NoError(t, err)
	require.True(t, handled)
	assert.True(t, result.Bool())
}

func TestCallObjectMethodUnknownNameNotHandled(t *testing.T) {
	obj := value.NewObject(value.NullValue)
	_, handled, err := CallObjectMethod(obj, "toString", nil)
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestCallObjectMethodArraySymbolIteratorWalksElements(t *testing.T) {
	arr := value.NewArray(value.NullValue)
	require.NoError(t, arrayobj.Set(arr, "0", value.NewNumber(10)))
	require.NoError(t, arrayobj.Set(arr, "1", value.NewNumber(20)))

	it, handled, err := CallObjectMethod(arr, value.SymbolIterator.SymbolCell_().Key, nil)
	require.NoError(t, err)
	require.True(t, handled)

	seen := []float64{}
	for i := 0; i < 3; i++ {
		res, err := iterator.Next(it, value.UndefinedValue)
		require.NoError(t, err)
		done, err := object.GetProperty(res, "done")
		require.NoError(t, err)
		if done.Bool() {
			break
		}
		v, err := object.GetProperty(res, "value")
		require.NoError(t, err)
		seen = append(seen, v.Num())
	}
	assert.Equal(t, []float64{10, 20}, seen)
}
