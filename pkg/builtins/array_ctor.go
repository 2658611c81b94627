package builtins

import (
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/operators"
	"github.com/purplert/jsruntime/pkg/value"
)

// NewArrayCtor builds the Array constructor (§6): `Array(n)` with a single
// numeric argument preallocates a length-n hole array (ECMA-262's
// single-argument special case); any other argument list becomes the
// initial elements. Array.isArray and Array.from are the static helpers
// §8's round-trip law names directly ("Array.from(x) followed by iteration
// yields the same sequence as iterating x directly when x is already an
// array").
func NewArrayCtor() *value.Value {
	ctor := newNativeCtor("Array", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		if len(args) == 1 && value.IsNumber(args[0]) {
			n := args[0].Num()
			if n < 0 || n != float64(uint32(n)) {
				return nil, value.ThrowKind(value.KindRangeError, "Invalid array length")
			}
			arr := value.NewArray(value.NullValue)
			if err := arraySetLength(arr, uint32(n)); err != nil {
				return nil, err
			}
			return arr, nil
		}
		arr := value.NewArray(value.NullValue)
		for i, a := range args {
			_ = arraySet(arr, i, a)
		}
		return arr, nil
	})

	_ = object.SetOwnProperty(ctor, "isArray", value.NewNativeFunction("isArray", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		return value.NewBool(len(args) > 0 && value.IsArray(args[0])), nil
	}))
	_ = object.SetOwnProperty(ctor, "of", value.NewNativeFunction("of", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		arr := value.NewArray(value.NullValue)
		for i, a := range args {
			_ = arraySet(arr, i, a)
		}
		return arr, nil
	}))
	_ = object.SetOwnProperty(ctor, "from", value.NewNativeFunction("from", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		if len(args) == 0 {
			return value.NewArray(value.NullValue), nil
		}
		items, err := operators.SpreadArray(args[0])
		if err != nil {
			return nil, err
		}
		arr := value.NewArray(value.NullValue)
		for i, v := range items {
			_ = arraySet(arr, i, v)
		}
		return arr, nil
	}))

	return ctor
}
