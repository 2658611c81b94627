package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purplert/jsruntime/pkg/value"
)

func newPlainObject() *value.Value {
	return value.NewObject(value.NullValue)
}

func TestSetThenGetOwnProperty(t *testing.T) {
	o := newPlainObject()
	require.NoError(t, SetOwnProperty(o, "x", value.NewNumber(1)))
	got, err := GetProperty(o, "x")
	require.NoError(t, err)
	assert.Equal(t, float64(1), got.Num())
}

func TestGetMissingPropertyIsUndefined(t *testing.T) {
	o := newPlainObject()
	got, err := GetProperty(o, "nope")
	require.NoError(t, err)
	assert.True(t, value.IsUndefined(got))
}

func TestPrototypeChainRead(t *testing.T) {
	proto := newPlainObject()
	require.NoError(t, SetOwnProperty(proto, "shared", value.NewString("inherited")))
	child := value.NewObject(proto)
	got, err := GetProperty(child, "shared")
	require.NoError(t, err)
	assert.Equal(t, "inherited", got.StringCell().Go())
}

func TestOwnPropertyShadowsPrototype(t *testing.T) {
	proto := newPlainObject()
	require.NoError(t, SetOwnProperty(proto, "x", value.NewNumber(1)))
	child := value.NewObject(proto)
	require.NoError(t, SetOwnProperty(child, "x", value.NewNumber(2)))
	got, err := GetProperty(child, "x")
	require.NoError(t, err)
	assert.Equal(t, float64(2), got.Num())

	protoGot, err := GetProperty(proto, "x")
	require.NoError(t, err)
	assert.Equal(t, float64(1), protoGot.Num())
}

func TestNonWritableDataDescriptorRejectsWrite(t *testing.T) {
	o := newPlainObject()
	require.NoError(t, DefineDataProperty(o, "frozen", value.NewNumber(1), false, true, true))
	err := SetOwnProperty(o, "frozen", value.NewNumber(2))
	require.Error(t, err)
	payload, ok := value.AsThrown(err)
	require.True(t, ok)
	assert.Equal(t, "TypeError", payload.Object().Slots[0].ToString())
}

func TestDeleteThenReaddTransitionsAsNew(t *testing.T) {
	o := newPlainObject()
	require.NoError(t, SetOwnProperty(o, "a", value.NewNumber(1)))
	require.NoError(t, SetOwnProperty(o, "b", value.NewNumber(2)))

	ok, err := Delete(o, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := GetProperty(o, "a")
	require.NoError(t, err)
	assert.True(t, value.IsUndefined(got))
	assert.NotContains(t, Keys(o), "a")

	require.NoError(t, SetOwnProperty(o, "a", value.NewNumber(3)))
	got, err = GetProperty(o, "a")
	require.NoError(t, err)
	assert.Equal(t, float64(3), got.Num())
}

func TestKeysPreservesInsertionOrderAndSkipsNonEnumerable(t *testing.T) {
	o := newPlainObject()
	require.NoError(t, SetOwnProperty(o, "first", value.NewNumber(1)))
	require.NoError(t, SetOwnProperty(o, "second", value.NewNumber(2)))
	require.NoError(t, DefineDataProperty(o, "hidden", value.NewNumber(3), true, false, true))

	assert.Equal(t, []string{"first", "second"}, Keys(o))
}

func TestHasPropertyWalksPrototypeChain(t *testing.T) {
	proto := newPlainObject()
	require.NoError(t, SetOwnProperty(proto, "x", value.NewNumber(1)))
	child := value.NewObject(proto)
	assert.True(t, HasProperty(child, "x"))
	assert.False(t, HasProperty(child, "y"))
}

func TestTwoObjectsBuiltTheSameWaySharedShape(t *testing.T) {
	a := newPlainObject()
	b := newPlainObject()
	require.NoError(t, SetOwnProperty(a, "x", value.NewNumber(1)))
	require.NoError(t, SetOwnProperty(b, "x", value.NewNumber(2)))
	assert.Same(t, a.Object().Shape, b.Object().Shape)
}

func TestAccessorGetterInvokedAgainstReceiver(t *testing.T) {
	var seenThis *value.Value
	CallHook = func(fn, this *value.Value, args []*value.Value) (*value.Value, error) {
		seenThis = this
		return value.NewNumber(42), nil
	}
	defer func() { CallHook = nil }()

	proto := newPlainObject()
	getter := value.NewNativeFunction("get", nil)
	require.NoError(t, DefineGetter(proto, "computed", getter))

	child := value.NewObject(proto)
	got, err := GetProperty(child, "computed")
	require.NoError(t, err)
	assert.Equal(t, float64(42), got.Num())
	assert.Same(t, child, seenThis)
}

func TestToStringHookRendersObjectAndFunction(t *testing.T) {
	o := newPlainObject()
	assert.Equal(t, "[object Object]", o.ToString())

	f := value.NewNativeFunction("greet", nil)
	assert.Contains(t, f.ToString(), "greet")
}
