// Package operators implements the arithmetic, relational, equality, and
// structural operators translated code emits for source-language operator
// expressions (component #10, §4.10): ToNumber/ToInt32/ToUint32, `+`'s
// string-vs-numeric branch, `<`/`<=`/`>`/`>=`, strict and loose equality,
// `in`/`instanceof`/`delete`, optional chaining, nullish coalescing, and the
// two spread forms.
//
// Dispatching on a value's Tag before delegating to a Tag-specific helper
// follows the same shape the teacher's PrimAdd/PrimSub/toFloat arithmetic
// primitives use (pkg/eval/primitives.go): one small switch at the entry
// point, never a type-assertion chain.
package operators

import (
	"math"
	"strconv"
	"strings"

	"github.com/purplert/jsruntime/pkg/arrayobj"
	"github.com/purplert/jsruntime/pkg/function"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

// ToNumber implements §4.10's ToNumber: number passes through; null is 0;
// undefined/uninitialized is NaN; booleans are 1 or 0; strings go through
// the numeric-literal parse below; objects (and arrays, functions) are NaN
// — the spec explicitly does not require the full valueOf/toString coercion
// chain for this core ("fully general coercion ... is not required").
func ToNumber(v *value.Value) float64 {
	switch {
	case value.IsNumber(v):
		return v.Num()
	case value.IsNull(v):
		return 0
	case value.IsUndefined(v), value.IsUninitialized(v):
		return math.NaN()
	case value.IsBoolean(v):
		if v.Bool() {
			return 1
		}
		return 0
	case value.IsString(v):
		return parseNumericString(v.StringCell().Go())
	default:
		return math.NaN()
	}
}

// parseNumericString implements the StringNumericLiteral grammar closely
// enough for the transpiler's needs: surrounding whitespace is trimmed, an
// empty result is 0, 0x/0o/0b prefixes parse as the corresponding integer
// radix, "Infinity"/"-Infinity" are recognized, and anything else goes
// through strconv's decimal float parser; malformed input yields NaN.
func parseNumericString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	neg := false
	unsigned := s
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		unsigned = s[1:]
	}
	if len(unsigned) > 2 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		n, err := strconv.ParseUint(unsigned[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return signed(float64(n), neg)
	}
	if len(unsigned) > 2 && unsigned[0] == '0' && (unsigned[1] == 'o' || unsigned[1] == 'O') {
		n, err := strconv.ParseUint(unsigned[2:], 8, 64)
		if err != nil {
			return math.NaN()
		}
		return signed(float64(n), neg)
	}
	if len(unsigned) > 2 && unsigned[0] == '0' && (unsigned[1] == 'b' || unsigned[1] == 'B') {
		n, err := strconv.ParseUint(unsigned[2:], 2, 64)
		if err != nil {
			return math.NaN()
		}
		return signed(float64(n), neg)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

func signed(n float64, neg bool) float64 {
	if neg {
		return -n
	}
	return n
}

// ToInt32 implements ECMA-262 §7.1.6 via ToNumber.
func ToInt32(v *value.Value) int32 {
	return numberToInt32(ToNumber(v))
}

// ToUint32 implements ECMA-262 §7.1.7 via ToNumber.
func ToUint32(v *value.Value) uint32 {
	return numberToUint32(ToNumber(v))
}

const twoPow32 = 4294967296

func numberToInt32(n float64) int32 {
	m := wrapModulo(n)
	if m >= twoPow32/2 {
		m -= twoPow32
	}
	return int32(m)
}

func numberToUint32(n float64) uint32 {
	return uint32(wrapModulo(n))
}

func wrapModulo(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	n = math.Trunc(n)
	m := math.Mod(n, twoPow32)
	if m < 0 {
		m += twoPow32
	}
	return m
}

// Add implements `+` (§4.10): if either operand is a string, concatenate
// the ToString conversion of both; otherwise sum their ToNumber
// conversions.
func Add(a, b *value.Value) *value.Value {
	if value.IsString(a) || value.IsString(b) {
		return value.Concat(toStringValue(a), toStringValue(b))
	}
	return value.NewNumber(ToNumber(a) + ToNumber(b))
}

func toStringValue(v *value.Value) *value.Value {
	if value.IsString(v) {
		return v
	}
	return value.NewString(v.ToString())
}

// Relation is the result of a `<`-family comparison: ECMA-262's abstract
// relational comparison can itself produce "undefined" (neither operand
// orders before the other, e.g. either side is NaN), which every concrete
// operator maps to false except !=-style negations, so callers compare
// against the concrete RelLess/RelGreaterOrEqual/etc. rather than a bool.
type Relation uint8

const (
	RelLess Relation = iota
	RelGreaterOrEqual
	RelUndefined
)

// compareLess implements the abstract relational comparison §4.10
// describes: string-vs-string is lexicographic by code unit, everything
// else coerces both sides to numbers and compares numerically, with NaN on
// either side producing RelUndefined (so `<` and `>=` both read false).
func compareLess(a, b *value.Value) Relation {
	if value.IsString(a) && value.IsString(b) {
		au, bu := a.StringCell().Units, b.StringCell().Units
		for i := 0; i < len(au) && i < len(bu); i++ {
			if au[i] != bu[i] {
				if au[i] < bu[i] {
					return RelLess
				}
				return RelGreaterOrEqual
			}
		}
		if len(au) < len(bu) {
			return RelLess
		}
		return RelGreaterOrEqual
	}
	an, bn := ToNumber(a), ToNumber(b)
	if math.IsNaN(an) || math.IsNaN(bn) {
		return RelUndefined
	}
	if an < bn {
		return RelLess
	}
	return RelGreaterOrEqual
}

// LessThan implements `<`.
func LessThan(a, b *value.Value) bool { return compareLess(a, b) == RelLess }

// GreaterThan implements `>` as `b < a`.
func GreaterThan(a, b *value.Value) bool { return compareLess(b, a) == RelLess }

// LessOrEqual implements `<=` as `!(b < a)`, false when the comparison is
// undefined (either side NaN).
func LessOrEqual(a, b *value.Value) bool { return compareLess(b, a) == RelGreaterOrEqual }

// GreaterOrEqual implements `>=` as `!(a < b)`, false when the comparison is
// undefined (either side NaN).
func GreaterOrEqual(a, b *value.Value) bool { return compareLess(a, b) == RelGreaterOrEqual }

// StrictEquals implements `===` (§4.10): types must match, then compared
// per-type — pointer identity for heap-backed collections, numeric == for
// numbers (so NaN !== NaN and -0 === 0), code-unit equality for strings.
func StrictEquals(a, b *value.Value) bool {
	if a == nil {
		a = value.UndefinedValue
	}
	if b == nil {
		b = value.UndefinedValue
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case value.Undefined, value.Null, value.Uninitialized:
		return true
	case value.Boolean:
		return a.Bool() == b.Bool()
	case value.Number:
		return a.Num() == b.Num() // Go's == already gives NaN != NaN, -0 == 0
	case value.TString:
		return stringUnitsEqual(a, b)
	case value.TSymbol:
		return a.SymbolCell_() == b.SymbolCell_()
	default:
		return a == b // heap-backed: identity, the cells are behind distinct *Value wrappers otherwise
	}
}

func stringUnitsEqual(a, b *value.Value) bool {
	au, bu := a.StringCell().Units, b.StringCell().Units
	if len(au) != len(bu) {
		return false
	}
	for i := range au {
		if au[i] != bu[i] {
			return false
		}
	}
	return true
}

// LooseEquals implements `==` (§4.10): strict equality when types already
// match; null and undefined are mutually equal and equal to nothing else;
// number-vs-string coerces the string; booleans coerce to numbers; an
// object-kind operand compared against a primitive coerces the object to
// its ToString form (the spec's explicitly reduced valueOf-free coercion).
func LooseEquals(a, b *value.Value) bool {
	if a == nil {
		a = value.UndefinedValue
	}
	if b == nil {
		b = value.UndefinedValue
	}
	if a.Tag == b.Tag {
		return StrictEquals(a, b)
	}
	if value.IsNullish(a) && value.IsNullish(b) {
		return true
	}
	if value.IsNullish(a) || value.IsNullish(b) {
		return false
	}
	switch {
	case value.IsNumber(a) && value.IsString(b):
		return a.Num() == ToNumber(b)
	case value.IsString(a) && value.IsNumber(b):
		return ToNumber(a) == b.Num()
	case value.IsBoolean(a):
		return LooseEquals(value.NewNumber(ToNumber(a)), b)
	case value.IsBoolean(b):
		return LooseEquals(a, value.NewNumber(ToNumber(b)))
	case value.IsObjectKind(a) && !value.IsObjectKind(b):
		return LooseEquals(value.NewString(a.ToString()), b)
	case value.IsObjectKind(b) && !value.IsObjectKind(a):
		return LooseEquals(a, value.NewString(b.ToString()))
	default:
		return false
	}
}

// In implements `in` (§4.10): the right operand must be object-kind
// (TypeError otherwise); returns whether has_property(name) holds, reading
// the left operand's ToString as the property name the way a computed
// member-in-expression always does.
func In(name, obj *value.Value) (bool, error) {
	if !value.IsObjectKind(obj) {
		return false, value.ThrowKind(value.KindTypeError, "Cannot use 'in' operator to search in a non-object")
	}
	key := name.ToString()
	if value.IsArray(obj) {
		return arrayobj.HasProperty(obj, key), nil
	}
	return object.HasProperty(obj, key), nil
}

// InstanceOf implements `instanceof` (§4.10): the right operand must be
// callable (TypeError otherwise); walks the left operand's prototype chain
// looking for identity with the right operand's `.prototype` slot.
func InstanceOf(v, ctor *value.Value) (bool, error) {
	if !value.IsCallable(ctor) {
		return false, value.ThrowKind(value.KindTypeError, "Right-hand side of 'instanceof' is not callable")
	}
	target := ctor.Function().Prototype
	if target == nil {
		return false, nil
	}
	for cur := value.Prototype(v); cur != nil; cur = value.Prototype(cur) {
		if value.IsNull(cur) || value.IsUndefined(cur) {
			return false, nil
		}
		if cur == target {
			return true, nil
		}
	}
	return false, nil
}

// Delete implements `delete` (§4.10): dispatches to the array model (which
// leaves an uninitialized hole at a dense index) or the shape-based object
// model (which masks the name without a shape transition), always
// reporting success the way this runtime's descriptor model allows.
func Delete(v *value.Value, key string) (bool, error) {
	if value.IsArray(v) {
		return arrayobj.Delete(v, key)
	}
	return object.Delete(v, key)
}

// OptionalGet implements a single `?.`/`?.[ ]` step (§4.10 "short-circuits
// to undefined if the base is null or undefined"): ok is false when the
// base is nullish, in which case the whole chain must short-circuit without
// evaluating the rest of translated code's member-access expression.
func OptionalGet(base *value.Value, key string) (result *value.Value, ok bool, err error) {
	if value.IsNullish(base) {
		return value.UndefinedValue, false, nil
	}
	if value.IsArray(base) {
		v, err := arrayobj.Get(base, key)
		return v, true, err
	}
	v, err := object.GetProperty(base, key)
	return v, true, err
}

// OptionalCall implements `?.()` on the callee position: ok is false
// (without calling) when callee is nullish.
func OptionalCall(callee, this *value.Value, args []*value.Value) (result *value.Value, ok bool, err error) {
	if value.IsNullish(callee) {
		return value.UndefinedValue, false, nil
	}
	v, err := function.Call(callee, this, args)
	return v, true, err
}

// NullishCoalesce implements `??` (§4.10): yields the right operand iff the
// left is null or undefined.
func NullishCoalesce(left, right *value.Value) *value.Value {
	if value.IsNullish(left) {
		return right
	}
	return left
}

// SpreadArray implements spread-into-array (§4.10): arrays are walked by
// index over [0, length); strings yield their code-unit slices; anything
// else must be an object exposing a Symbol.iterator method, and is driven
// through the standard iteration protocol (repeated next() calls read
// until {done: true}) rather than through any internal coroutine type —
// the protocol is defined structurally, not by which package produced the
// iterable.
func SpreadArray(v *value.Value) ([]*value.Value, error) {
	switch {
	case value.IsArray(v):
		cell := v.Array()
		out := make([]*value.Value, 0, cell.Length)
		for i := uint32(0); i < cell.Length; i++ {
			el, err := arrayobj.Get(v, strconv.FormatUint(uint64(i), 10))
			if err != nil {
				return nil, err
			}
			out = append(out, el)
		}
		return out, nil
	case value.IsString(v):
		units := v.StringCell().Units
		out := make([]*value.Value, 0, len(units))
		for i := range units {
			el, _ := v.StringCell().At(i)
			out = append(out, el)
		}
		return out, nil
	default:
		return spreadIterable(v)
	}
}

// spreadIterable drives the generic [Symbol.iterator]() / next() protocol
// to exhaustion. It requires neither pkg/iterator nor pkg/asynciter: any
// object exposing a callable Symbol.iterator method and a conforming
// next() qualifies, matching the spec's "standard iteration protocol"
// wording rather than this runtime's own generator machinery specifically.
func spreadIterable(v *value.Value) ([]*value.Value, error) {
	iterFn, err := object.GetProperty(v, value.SymbolIterator.SymbolCell_().Key)
	if err != nil {
		return nil, err
	}
	if !value.IsCallable(iterFn) {
		return nil, value.ThrowKind(value.KindTypeError, "value is not iterable")
	}
	it, err := function.Call(iterFn, v, nil)
	if err != nil {
		return nil, err
	}
	nextFn, err := object.GetProperty(it, "next")
	if err != nil {
		return nil, err
	}
	if !value.IsCallable(nextFn) {
		return nil, value.ThrowKind(value.KindTypeError, "iterator result has no next method")
	}
	var out []*value.Value
	for {
		res, err := function.Call(nextFn, it, nil)
		if err != nil {
			return nil, err
		}
		done, err := object.GetProperty(res, "done")
		if err != nil {
			return nil, err
		}
		if value.Truthy(done) {
			return out, nil
		}
		val, err := object.GetProperty(res, "value")
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
}

// SpreadObject implements spread-into-object (§4.10): enumerates src's own
// enumerable keys and copies each value (after accessor resolution, since
// object.GetProperty already resolves accessor descriptors) into dest.
func SpreadObject(src, dest *value.Value) error {
	for _, key := range object.Keys(src) {
		val, err := object.GetProperty(src, key)
		if err != nil {
			return err
		}
		if err := object.SetOwnProperty(dest, key, val); err != nil {
			return err
		}
	}
	return nil
}
