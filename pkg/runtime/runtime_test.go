package runtime

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purplert/jsruntime/pkg/arrayobj"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/promise"
	"github.com/purplert/jsruntime/pkg/value"
)

func newRuntime(t *testing.T) (*Runtime, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	rt := Init([]string{"purplert", "script.js"}, &out, &errOut)
	return rt, &out, &errOut
}

func TestInitBuildsConsoleAndProcess(t *testing.T) {
	rt, _, _ := newRuntime(t)
	for _, name := range []string{"console", "process", "Promise", "Math"} {
		v, err := object.GetProperty(rt.Global, name)
		require.NoError(t, err)
		assert.False(t, value.IsUndefined(v))
	}
}

func TestCallMethodDispatchesPromiseThen(t *testing.T) {
	rt, _, _ := newRuntime(t)
	p := promise.ResolveValue(value.NewNumber(5))

	var got *value.Value
	onFulfilled := value.NewNativeFunction("onFulfilled", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		got = args[0]
		return value.UndefinedValue, nil
	})
	result, err := CallMethod(p, "then", []*value.Value{onFulfilled})
	require.NoError(t, err)
	assert.True(t, value.IsPromise(result))
	rt.Loop.Run()
	require.NotNil(t, got)
	assert.Equal(t, float64(5), got.Num())
}

func TestCallMethodDispatchesFunctionCall(t *testing.T) {
	newRuntime(t)
	fn := value.NewNativeFunction("sum", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		return value.NewNumber(args[0].Num() + args[1].Num()), nil
	})
	result, err := CallMethod(fn, "call", []*value.Value{value.UndefinedValue, value.NewNumber(2), value.NewNumber(3)})
	require.NoError(t, err)
	assert.Equal(t, float64(5), result.Num())
}

func TestCallMethodFallsThroughToOrdinaryProperty(t *testing.T) {
	newRuntime(t)
	obj := value.NewObject(value.NullValue)
	greet := value.NewNativeFunction("greet", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		return value.NewString("hi"), nil
	})
	require.NoError(t, object.SetOwnProperty(obj, "greet", greet))

	result, err := CallMethod(obj, "greet", nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", result.ToString())
}

func TestCallMethodDispatchesHasOwnProperty(t *testing.T) {
	newRuntime(t)
	obj := value.NewObject(value.NullValue)
	require.NoError(t, object.SetOwnProperty(obj, "a", value.NewNumber(1)))

	result, err := CallMethod(obj, "hasOwnProperty", []*value.Value{value.NewString("a")})
	require.NoError(t, err)
	assert.True(t, result.Bool())

	result, err = CallMethod(obj, "hasOwnProperty", []*value.Value{value.NewString("b")})
	require.NoError(t, err)
	assert.False(t, result.Bool())
}

func TestCallMethodDispatchesArraySymbolIterator(t *testing.T) {
	newRuntime(t)
	arr := value.NewArray(value.NullValue)
	require.NoError(t, arrayobj.Set(arr, "0", value.NewNumber(1)))
	require.NoError(t, arrayobj.Set(arr, "1", value.NewNumber(2)))

	it, err := CallMethod(arr, value.SymbolIterator.SymbolCell_().Key, nil)
	require.NoError(t, err)
	assert.True(t, value.IsIterator(it))
}

func TestRunContainerPrintsEscapedExceptionAndReturnsOne(t *testing.T) {
	rt, _, errOut := newRuntime(t)
	code := RunContainer(rt, func() (*value.Value, error) {
		return nil, value.ThrowKind(value.KindTypeError, "boom")
	})
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "boom")
}

func TestRunContainerReturnsZeroOnSuccess(t *testing.T) {
	rt, _, _ := newRuntime(t)
	code := RunContainer(rt, func() (*value.Value, error) {
		return value.UndefinedValue, nil
	})
	assert.Equal(t, 0, code)
}

func TestRunContainerHonorsProcessExit(t *testing.T) {
	rt, _, _ := newRuntime(t)
	code := RunContainer(rt, func() (*value.Value, error) {
		proc, err := object.GetProperty(rt.Global, "process")
		require.NoError(t, err)
		exitFn, err := object.GetProperty(proc, "exit")
		require.NoError(t, err)
		_, _ = exitFn.Function().Native(value.UndefinedValue, []*value.Value{value.NewNumber(7)})
		return value.UndefinedValue, nil
	})
	assert.Equal(t, 7, code)
}
