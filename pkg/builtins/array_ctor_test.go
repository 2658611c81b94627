package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purplert/jsruntime/pkg/function"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

func TestArrayCtorSingleNumericArgPreallocates(t *testing.T) {
	ctor := NewArrayCtor()
	arr, err := function.Construct(ctor, []*value.Value{value.NewNumber(3)})
	require.NoError(t, err)
	assert.Equal(t, uint32(3), arr.Array().Length)
}

func TestArrayCtorElementList(t *testing.T) {
	ctor := NewArrayCtor()
	arr, err := function.Construct(ctor, []*value.Value{value.NewNumber(1), value.NewNumber(2)})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), arr.Array().Length)
}

func TestArrayCtorInvalidLengthRaisesRangeError(t *testing.T) {
	ctor := NewArrayCtor()
	_, err := function.Construct(ctor, []*value.Value{value.NewNumber(-1)})
	require.Error(t, err)
	payload, ok := value.AsThrown(err)
	require.True(t, ok)
	name, _ := object.GetProperty(payload, "name")
	assert.Equal(t, "RangeError", name.ToString())
}

func TestArrayIsArray(t *testing.T) {
	ctor := NewArrayCtor()
	isArrayFn, err := object.GetProperty(ctor, "isArray")
	require.NoError(t, err)

	arr := value.NewArray(value.NullValue)
	result, err := function.Call(isArrayFn, value.UndefinedValue, []*value.Value{arr})
	require.NoError(t, err)
	assert.True(t, value.Truthy(result))

	result, err = function.Call(isArrayFn, value.UndefinedValue, []*value.Value{value.NewNumber(1)})
	require.NoError(t, err)
	assert.False(t, value.Truthy(result))
}

func TestArrayFromSpreadsArray(t *testing.T) {
	ctor := NewArrayCtor()
	src := value.NewArray(value.NullValue)
	require.NoError(t, arraySet(src, 0, value.NewNumber(10)))
	require.NoError(t, arraySet(src, 1, value.NewNumber(20)))

	fromFn, err := object.GetProperty(ctor, "from")
	require.NoError(t, err)
	out, err := function.Call(fromFn, value.UndefinedValue, []*value.Value{src})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), out.Array().Length)
}
