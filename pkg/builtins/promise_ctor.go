package builtins

import (
	"github.com/purplert/jsruntime/pkg/function"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/operators"
	"github.com/purplert/jsruntime/pkg/promise"
	"github.com/purplert/jsruntime/pkg/value"
)

// NewPromiseCtor builds the Promise constructor (§6, §4.7): `new
// Promise(executor)` runs executor(resolve, reject) synchronously, and the
// static resolve/reject/all/allSettled/race/any helpers wrap pkg/promise's
// state machine. `.then`/`.catch`/`.finally` are not installed on any
// prototype object: promise cells have no shape-based own-property table of
// their own (§3 "Promise cell" carries no Slots), so these three methods are
// dispatched by tag instead; see CallPromiseMethod in this file.
func NewPromiseCtor() *value.Value {
	ctor := newNativeCtor("Promise", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		if len(args) == 0 || !value.IsCallable(args[0]) {
			return nil, value.ThrowKind(value.KindTypeError, "Promise resolver is not a function")
		}
		p := promise.New()
		resolveFn := value.NewNativeFunction("resolve", func(_ *value.Value, a []*value.Value) (*value.Value, error) {
			promise.Resolve(p, argOrUndefined(a))
			return value.UndefinedValue, nil
		})
		rejectFn := value.NewNativeFunction("reject", func(_ *value.Value, a []*value.Value) (*value.Value, error) {
			promise.Reject(p, argOrUndefined(a))
			return value.UndefinedValue, nil
		})
		if _, err := function.Call(args[0], value.UndefinedValue, []*value.Value{resolveFn, rejectFn}); err != nil {
			payload := value.ErrorToValue(err)
			promise.Reject(p, payload)
		}
		return p, nil
	})

	_ = object.SetOwnProperty(ctor, "resolve", value.NewNativeFunction("resolve", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		return promise.ResolveValue(argOrUndefined(args)), nil
	}))
	_ = object.SetOwnProperty(ctor, "reject", value.NewNativeFunction("reject", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		return promise.RejectValue(argOrUndefined(args)), nil
	}))
	_ = object.SetOwnProperty(ctor, "all", value.NewNativeFunction("all", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		items, err := spreadOrSelf(args)
		if err != nil {
			return nil, err
		}
		return promise.All(items), nil
	}))
	_ = object.SetOwnProperty(ctor, "allSettled", value.NewNativeFunction("allSettled", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		items, err := spreadOrSelf(args)
		if err != nil {
			return nil, err
		}
		return promise.AllSettled(items), nil
	}))
	_ = object.SetOwnProperty(ctor, "race", value.NewNativeFunction("race", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		items, err := spreadOrSelf(args)
		if err != nil {
			return nil, err
		}
		return promise.Race(items), nil
	}))
	_ = object.SetOwnProperty(ctor, "any", value.NewNativeFunction("any", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		items, err := spreadOrSelf(args)
		if err != nil {
			return nil, err
		}
		return promise.Any(items), nil
	}))

	return ctor
}

func argOrUndefined(args []*value.Value) *value.Value {
	if len(args) == 0 {
		return value.UndefinedValue
	}
	return args[0]
}

// spreadOrSelf accepts either a real array or any iterable as the input to
// Promise.all/allSettled/race/any, going through the same spread-into-array
// protocol `[...x]` would (§4.10).
func spreadOrSelf(args []*value.Value) ([]*value.Value, error) {
	if len(args) == 0 {
		return nil, nil
	}
	return operators.SpreadArray(args[0])
}

// CallPromiseMethod dispatches `.then`/`.catch`/`.finally` calls on a
// promise value (§4.7). Translated code's member-call codegen resolves a
// callee on a promise receiver through this rather than object.GetProperty,
// since Promise cells intentionally carry no shape-based own-property
// table (§3) — the same reasoning iterator/async-iterator result objects
// avoid by being built as plain objects, but a promise itself is not one.
func CallPromiseMethod(p *value.Value, name string, args []*value.Value) (*value.Value, bool, error) {
	if !value.IsPromise(p) {
		return nil, false, nil
	}
	switch name {
	case "then":
		return promise.Then(p, arg(args, 0), arg(args, 1)), true, nil
	case "catch":
		return promise.Catch(p, arg(args, 0)), true, nil
	case "finally":
		return promise.Finally(p, arg(args, 0)), true, nil
	default:
		return nil, false, nil
	}
}
