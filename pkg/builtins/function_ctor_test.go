package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

func sum3(this *value.Value, args []*value.Value) (*value.Value, error) {
	total := 0.0
	for _, a := range args {
		total += a.Num()
	}
	return value.NewNumber(total), nil
}

func TestCallFunctionMethodCallForwardsArgs(t *testing.T) {
	fn := value.NewNativeFunction("sum", sum3)
	result, handled, err := CallFunctionMethod(fn, "call", []*value.Value{value.UndefinedValue, value.NewNumber(1), value.NewNumber(2)})
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, float64(3), result.Num())
}

func TestCallFunctionMethodApplySpreadsArgsArray(t *testing.T) {
	fn := value.NewNativeFunction("sum", sum3)
	arr := value.NewArray(value.NullValue)
	require.NoError(t, arraySet(arr, 0, value.NewNumber(10)))
	require.NoError(t, arraySet(arr, 1, value.NewNumber(20)))

	result, handled, err := CallFunctionMethod(fn, "apply", []*value.Value{value.UndefinedValue, arr})
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, float64(30), result.Num())
}

func TestCallFunctionMethodBindCurriesLeadingArgs(t *testing.T) {
	fn := value.NewNativeFunction("sum", sum3)
	bound, handled, err := CallFunctionMethod(fn, "bind", []*value.Value{value.UndefinedValue, value.NewNumber(100)})
	require.NoError(t, err)
	assert.True(t, handled)

	callResult, handled2, err := CallFunctionMethod(bound, "call", []*value.Value{value.UndefinedValue, value.NewNumber(1)})
	require.NoError(t, err)
	assert.True(t, handled2)
	assert.Equal(t, float64(101), callResult.Num())
}

func TestCallFunctionMethodNonCallableNotHandled(t *testing.T) {
	_, handled, err := CallFunctionMethod(value.NewNumber(1), "call", nil)
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestFunctionCtorRaisesOnInvocation(t *testing.T) {
	ctor := NewFunctionCtor()
	fn := ctor
	_, err := fn.Function().Native(value.UndefinedValue, nil)
	require.Error(t, err)
	payload, ok := value.AsThrown(err)
	require.True(t, ok)
	name, _ := object.GetProperty(payload, "name")
	assert.Equal(t, "TypeError", name.ToString())
}
