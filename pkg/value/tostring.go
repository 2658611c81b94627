package value

import (
	"math"
	"strconv"
	"strings"
)

// ToStringHook lets higher-level packages (pkg/object, pkg/arrayobj) teach
// the primitive ToString how to render object-kind values, without pkg/value
// importing them back (§4.1 to_string is defined for every tag, but object
// enumeration and array joining are component #4's job, not component #1's).
// Registered at process init by the init functions of pkg/object and
// pkg/arrayobj, each chaining onto the hook installed before it.
var ToStringHook func(v *Value) string

// ToString implements the source language's default ToString conversion
// for every tag (§4.1 "to_string conformant with the source language's
// ToString"). Object/Array/Function rendering is delegated through
// ToStringHook once pkg/object has registered it; until then those tags
// fall back to a minimal "[object Tag]" placeholder so the package remains
// usable standalone (e.g. in this package's own tests).
func (v *Value) ToString() string {
	if v == nil {
		return "undefined"
	}
	switch v.Tag {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case Uninitialized:
		return "" // callers must raise ReferenceError before reaching here
	case Boolean:
		if v.boolean {
			return "true"
		}
		return "false"
	case Number:
		return FormatNumber(v.number)
	case TString:
		return v.str.Go()
	case TSymbol:
		return "Symbol(" + v.sym.Description + ")"
	default:
		if ToStringHook != nil {
			return ToStringHook(v)
		}
		return "[object " + v.Tag.String() + "]"
	}
}

// FormatNumber implements the numeric ToString algorithm (§4.1): NaN and
// the infinities render literally, -0 renders as "0", and finite values
// pick fixed vs scientific notation by magnitude with trailing-zero
// stripping, matching the source language's default numeric formatting.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}

	neg := n < 0
	abs := math.Abs(n)

	var out string
	switch {
	case abs >= 1e21:
		out = strconv.FormatFloat(abs, 'e', -1, 64)
		out = toSourceExponent(out)
	case abs < 1e-6:
		out = strconv.FormatFloat(abs, 'e', -1, 64)
		out = toSourceExponent(out)
	default:
		out = strconv.FormatFloat(abs, 'f', -1, 64)
	}
	if neg {
		out = "-" + out
	}
	return out
}

// toSourceExponent rewrites Go's "1.5e+21"/"1e-07" exponent form into the
// source language's "1.5e+21"/"1e-7" form (no leading zero in the exponent).
func toSourceExponent(s string) string {
	idx := strings.IndexAny(s, "eE")
	if idx < 0 {
		return s
	}
	mantissa, exp := s[:idx], s[idx+1:]
	sign := "+"
	if len(exp) > 0 && (exp[0] == '+' || exp[0] == '-') {
		if exp[0] == '-' {
			sign = "-"
		}
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + "e" + sign + exp
}

// Truthy implements ToBoolean (§4.10 "truthiness").
func Truthy(v *Value) bool {
	if v == nil {
		return false
	}
	switch v.Tag {
	case Undefined, Null, Uninitialized:
		return false
	case Boolean:
		return v.boolean
	case Number:
		return v.number != 0 && !math.IsNaN(v.number)
	case TString:
		return v.str.Len() > 0
	default:
		return true
	}
}
