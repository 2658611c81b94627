package builtins

import (
	"github.com/purplert/jsruntime/pkg/function"
	"github.com/purplert/jsruntime/pkg/operators"
	"github.com/purplert/jsruntime/pkg/value"
)

// NewFunctionCtor builds the Function constructor stub (§6). Translated
// code never needs the dynamic `new Function(body)` form (the code
// generator already emits a function cell directly for every function
// expression), so this constructor exists only so `typeof Function ===
// "function"` holds. Function values' prototype chains do not lead to its
// .prototype, so `fn instanceof Function` is false. Invoking it directly
// raises, since there is no source text to compile at runtime.
func NewFunctionCtor() *value.Value {
	return newNativeCtor("Function", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		return nil, value.ThrowKind(value.KindTypeError, "Function constructor is not supported by this runtime")
	})
}

// CallFunctionMethod dispatches `.call`/`.apply`/`.bind` on a callable
// receiver (§8 "f.call(t, a, b) ≡ f(a, b) when t is the active receiver").
// Function cells have a .prototype object (used by `new`), but it is not
// wired into the cell's own prototype-chain walk (§4.5 keeps that slot
// reserved for constructed instances' inheritance, not for the function
// value itself) — so, exactly like CallPromiseMethod for the promise cells'
// missing own-property table, this is resolved by tag dispatch rather than
// ordinary property lookup.
func CallFunctionMethod(fn *value.Value, name string, args []*value.Value) (result *value.Value, handled bool, err error) {
	if !value.IsCallable(fn) {
		return nil, false, nil
	}
	switch name {
	case "call":
		recv := argOrUndefined(args)
		var rest []*value.Value
		if len(args) > 1 {
			rest = args[1:]
		}
		v, err := function.Call(fn, recv, rest)
		return v, true, err
	case "apply":
		recv := argOrUndefined(args)
		var rest []*value.Value
		if len(args) > 1 && !value.IsUndefined(args[1]) && !value.IsNull(args[1]) {
			items, err := operators.SpreadArray(args[1])
			if err != nil {
				return nil, true, err
			}
			rest = items
		}
		v, err := function.Call(fn, recv, rest)
		return v, true, err
	case "bind":
		boundThis := argOrUndefined(args)
		var boundArgs []*value.Value
		if len(args) > 1 {
			boundArgs = append(boundArgs, args[1:]...)
		}
		bound := value.NewNativeFunction("bound", func(_ *value.Value, callArgs []*value.Value) (*value.Value, error) {
			all := append(append([]*value.Value{}, boundArgs...), callArgs...)
			return function.Call(fn, boundThis, all)
		})
		return bound, true, nil
	default:
		return nil, false, nil
	}
}
