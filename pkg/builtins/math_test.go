package builtins

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purplert/jsruntime/pkg/function"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

func callMathFn(t *testing.T, m *value.Value, name string, args ...*value.Value) float64 {
	t.Helper()
	fn, err := object.GetProperty(m, name)
	require.NoError(t, err)
	result, err := function.Call(fn, value.UndefinedValue, args)
	require.NoError(t, err)
	return result.Num()
}

func TestMathConstants(t *testing.T) {
	m := NewMath()
	pi, err := object.GetProperty(m, "PI")
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, pi.Num(), 1e-12)
}

func TestMathRoundHalfUp(t *testing.T) {
	m := NewMath()
	assert.Equal(t, float64(0), callMathFn(t, m, "round", value.NewNumber(-0.5)))
	assert.Equal(t, float64(1), callMathFn(t, m, "round", value.NewNumber(0.5)))
	assert.Equal(t, float64(3), callMathFn(t, m, "round", value.NewNumber(2.5)))
}

func TestMathMaxMinCoerceAndPropagateNaN(t *testing.T) {
	m := NewMath()
	assert.Equal(t, float64(3), callMathFn(t, m, "max", value.NewNumber(1), value.NewNumber(3), value.NewNumber(2)))
	assert.Equal(t, float64(1), callMathFn(t, m, "min", value.NewNumber(1), value.NewNumber(3), value.NewNumber(2)))
	assert.True(t, math.IsNaN(callMathFn(t, m, "max", value.NewNumber(1), value.NewString("nope"))))
}

func TestMathPowAndSqrt(t *testing.T) {
	m := NewMath()
	assert.Equal(t, float64(8), callMathFn(t, m, "pow", value.NewNumber(2), value.NewNumber(3)))
	assert.Equal(t, float64(3), callMathFn(t, m, "sqrt", value.NewNumber(9)))
}
