package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingletonsAreReused(t *testing.T) {
	assert.Same(t, UndefinedValue, UndefinedValue)
	assert.True(t, IsUndefined(nil))
	assert.True(t, IsUndefined(UndefinedValue))
	assert.True(t, IsNull(NullValue))
	assert.True(t, IsNullish(NullValue))
	assert.True(t, IsNullish(UndefinedValue))
	assert.False(t, IsNullish(ZeroValue))
}

func TestNewBoolReusesSingletons(t *testing.T) {
	assert.Same(t, TrueValue, NewBool(true))
	assert.Same(t, FalseValue, NewBool(false))
}

func TestStringRoundTrip(t *testing.T) {
	v := NewString("hello")
	require.True(t, IsString(v))
	assert.Equal(t, 5, v.StringCell().Len())
	assert.Equal(t, "hello", v.StringCell().Go())
}

func TestStringSurrogatePairRoundTrip(t *testing.T) {
	v := NewString("\U0001F600") // outside the BMP, needs a surrogate pair
	require.Equal(t, 2, v.StringCell().Len())
	assert.Equal(t, "\U0001F600", v.StringCell().Go())
}

func TestConcat(t *testing.T) {
	v := Concat(NewString("foo"), NewString("bar"))
	assert.Equal(t, "foobar", v.StringCell().Go())
}

func TestCanonicalIndex(t *testing.T) {
	cases := []struct {
		key   string
		want  uint32
		valid bool
	}{
		{"0", 0, true},
		{"1", 1, true},
		{"007", 0, false},
		{"-1", 0, false},
		{"4294967294", MaxArrayIndex, true},
		{"4294967295", 0, false}, // 2^32-1 is a plain string key, not an index
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, ok := CanonicalIndex(c.key)
		assert.Equal(t, c.valid, ok, c.key)
		if c.valid {
			assert.Equal(t, c.want, got, c.key)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "0", FormatNumber(math.Copysign(0, -1)))
	assert.Equal(t, "NaN", FormatNumber(math.NaN()))
	assert.Equal(t, "Infinity", FormatNumber(math.Inf(1)))
	assert.Equal(t, "-Infinity", FormatNumber(math.Inf(-1)))
	assert.Equal(t, "1.5", FormatNumber(1.5))
	assert.Equal(t, "-1.5", FormatNumber(-1.5))
	assert.Equal(t, "100", FormatNumber(100))
	assert.Equal(t, "1e+21", FormatNumber(1e21))
	assert.Equal(t, "1e-7", FormatNumber(1e-7))
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(UndefinedValue))
	assert.False(t, Truthy(NullValue))
	assert.False(t, Truthy(FalseValue))
	assert.False(t, Truthy(ZeroValue))
	assert.False(t, Truthy(NaNValue))
	assert.False(t, Truthy(NewString("")))
	assert.True(t, Truthy(TrueValue))
	assert.True(t, Truthy(OneValue))
	assert.True(t, Truthy(NewString("0")))
}

func TestBitsRoundTripsImmediates(t *testing.T) {
	if !ProbeNaNBoxing() {
		t.Skip("packed encoding unavailable on this process's address layout")
	}
	for _, v := range []*Value{UndefinedValue, NullValue, UninitializedValue, TrueValue, FalseValue, NewNumber(3.5)} {
		bits, ok := v.Bits()
		require.True(t, ok)
		got := fromBits(bits)
		assert.Equal(t, v.Tag, got.Tag)
		if v.Tag == Number {
			assert.Equal(t, v.Num(), got.Num())
		}
	}
}

func TestBitsRejectsHeapValues(t *testing.T) {
	_, ok := NewString("x").Bits()
	assert.False(t, ok)
}

func TestSymbolUniqueness(t *testing.T) {
	a := NewSymbol("x")
	b := NewSymbol("x")
	assert.NotEqual(t, a.SymbolCell_().Key, b.SymbolCell_().Key)
}

func TestSymbolFor(t *testing.T) {
	a := SymbolFor("shared")
	b := SymbolFor("shared")
	assert.Same(t, a, b)
	key, ok := SymbolKeyFor(a)
	require.True(t, ok)
	assert.Equal(t, "shared", key)
}

func TestThrowAndAsThrown(t *testing.T) {
	err := ThrowKind(KindTypeError, "not a function: %s", "x")
	payload, ok := AsThrown(err)
	require.True(t, ok)
	assert.Equal(t, "TypeError", payload.Object().Slots[0].ToString())
}
