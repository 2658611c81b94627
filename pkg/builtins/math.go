package builtins

import (
	"math"

	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/operators"
	"github.com/purplert/jsruntime/pkg/value"
)

// NewMath builds the Math object (§6 "a Math object with the standard
// trigonometric, exponential, rounding, and precision helpers"): the
// constants and the unary/binary functions ECMA-262's Math object exposes,
// each a thin wrapper that coerces every argument through
// operators.ToNumber (see argNum and foldMinMax).
func NewMath() *value.Value {
	m := value.NewObject(value.NullValue)

	_ = object.SetOwnProperty(m, "PI", value.NewNumber(math.Pi))
	_ = object.SetOwnProperty(m, "E", value.NewNumber(math.E))
	_ = object.SetOwnProperty(m, "LN2", value.NewNumber(math.Ln2))
	_ = object.SetOwnProperty(m, "LN10", value.NewNumber(math.Log(10)))
	_ = object.SetOwnProperty(m, "SQRT2", value.NewNumber(math.Sqrt2))

	unary := map[string]func(float64) float64{
		"abs":   math.Abs,
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"round": roundHalfUp,
		"trunc": math.Trunc,
		"sqrt":  math.Sqrt,
		"cbrt":  math.Cbrt,
		"sign":  sign,
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"asin":  math.Asin,
		"acos":  math.Acos,
		"atan":  math.Atan,
		"sinh":  math.Sinh,
		"cosh":  math.Cosh,
		"tanh":  math.Tanh,
		"exp":   math.Exp,
		"log":   math.Log,
		"log2":  math.Log2,
		"log10": math.Log10,
	}
	for name, fn := range unary {
		fn := fn
		_ = object.SetOwnProperty(m, name, value.NewNativeFunction(name, func(this *value.Value, args []*value.Value) (*value.Value, error) {
			return value.NewNumber(fn(argNum(args, 0))), nil
		}))
	}

	_ = object.SetOwnProperty(m, "pow", value.NewNativeFunction("pow", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		return value.NewNumber(math.Pow(argNum(args, 0), argNum(args, 1))), nil
	}))
	_ = object.SetOwnProperty(m, "atan2", value.NewNativeFunction("atan2", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		return value.NewNumber(math.Atan2(argNum(args, 0), argNum(args, 1))), nil
	}))
	_ = object.SetOwnProperty(m, "max", value.NewNativeFunction("max", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		return value.NewNumber(foldMinMax(args, math.Inf(-1), math.Max)), nil
	}))
	_ = object.SetOwnProperty(m, "min", value.NewNativeFunction("min", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		return value.NewNumber(foldMinMax(args, math.Inf(1), math.Min)), nil
	}))
	_ = object.SetOwnProperty(m, "random", value.NewNativeFunction("random", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		return value.NewNumber(randomFloat()), nil
	}))

	return m
}

func sign(n float64) float64 {
	switch {
	case math.IsNaN(n):
		return math.NaN()
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return n
	}
}

// roundHalfUp matches ECMA-262's Math.round (half-up, not Go's
// round-half-away-from-zero): -0.5 rounds to -0, not 0.
func roundHalfUp(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return n
	}
	r := math.Floor(n + 0.5)
	if r == 0 && math.Signbit(n) {
		return math.Copysign(0, -1)
	}
	return r
}

func foldMinMax(args []*value.Value, identity float64, pick func(a, b float64) float64) float64 {
	acc := identity
	for _, a := range args {
		n := operators.ToNumber(a)
		if math.IsNaN(n) {
			return math.NaN()
		}
		acc = pick(acc, n)
	}
	return acc
}

func argNum(args []*value.Value, i int) float64 {
	if i >= len(args) {
		return math.NaN()
	}
	return operators.ToNumber(args[i])
}
