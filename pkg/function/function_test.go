package function

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

func TestCallNativeFunction(t *testing.T) {
	fn := value.NewNativeFunction("double", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		return value.NewNumber(args[0].Num() * 2), nil
	})
	got, err := Call(fn, value.UndefinedValue, []*value.Value{value.NewNumber(21)})
	require.NoError(t, err)
	assert.Equal(t, float64(42), got.Num())
}

func TestCallOnNonFunctionRaisesTypeError(t *testing.T) {
	_, err := Call(value.NewNumber(1), value.UndefinedValue, nil)
	require.Error(t, err)
	payload, ok := value.AsThrown(err)
	require.True(t, ok)
	assert.Equal(t, "TypeError", payload.Object().Slots[0].ToString())
}

func TestConstructDefaultsToFreshObjectWhenReturnIsPrimitive(t *testing.T) {
	fn := NewFunction("Point", value.VariantPlain, func(io value.CoroutineIO) {
		panic(plainReturn{value: value.NewNumber(5)}) // primitive return is ignored
	})
	receiver, err := Construct(fn, nil)
	require.NoError(t, err)
	assert.True(t, value.IsObject(receiver))
}

func TestConstructReturnsObjectResultWhenBodyReturnsOne(t *testing.T) {
	obj := value.NewObject(value.NullValue)
	fn := NewFunction("Factory", value.VariantPlain, func(io value.CoroutineIO) {
		panic(plainReturn{value: obj})
	})
	receiver, err := Construct(fn, nil)
	require.NoError(t, err)
	assert.Same(t, obj, receiver)
}

func TestConstructWiresPrototypeConstructorBackReference(t *testing.T) {
	fn := NewFunction("Widget", value.VariantPlain, func(io value.CoroutineIO) {})
	ctor, err := object.GetProperty(fn.Function().Prototype, "constructor")
	require.NoError(t, err)
	assert.Same(t, fn, ctor)
}

func TestConstructOnNonConstructorRaisesTypeError(t *testing.T) {
	_, err := Construct(value.NewNumber(1), nil)
	require.Error(t, err)
}
