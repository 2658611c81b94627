package builtins

import (
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/operators"
	"github.com/purplert/jsruntime/pkg/value"
)

// NewObjectCtor builds the Object constructor (§6): calling or constructing
// it with no object-kind argument yields a fresh empty object; Object.keys/
// values/entries/assign are the static helpers §8's round-trip law
// ("spread {...o} produces ... keys equal Object.keys(o)") exercises.
func NewObjectCtor() *value.Value {
	ctor := newNativeCtor("Object", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		if len(args) > 0 && value.IsObjectKind(args[0]) {
			return args[0], nil
		}
		return value.NewObject(value.NullValue), nil
	})

	_ = object.SetOwnProperty(ctor, "keys", value.NewNativeFunction("keys", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		return stringsToArray(object.Keys(arg(args, 0))), nil
	}))
	_ = object.SetOwnProperty(ctor, "values", value.NewNativeFunction("values", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		src := arg(args, 0)
		out := value.NewArray(value.NullValue)
		for i, k := range object.Keys(src) {
			v, err := object.GetProperty(src, k)
			if err != nil {
				return nil, err
			}
			_ = arraySet(out, i, v)
		}
		return out, nil
	}))
	_ = object.SetOwnProperty(ctor, "entries", value.NewNativeFunction("entries", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		src := arg(args, 0)
		out := value.NewArray(value.NullValue)
		for i, k := range object.Keys(src) {
			v, err := object.GetProperty(src, k)
			if err != nil {
				return nil, err
			}
			pair := value.NewArray(value.NullValue)
			_ = arraySet(pair, 0, value.NewString(k))
			_ = arraySet(pair, 1, v)
			_ = arraySet(out, i, pair)
		}
		return out, nil
	}))
	_ = object.SetOwnProperty(ctor, "assign", value.NewNativeFunction("assign", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		if len(args) == 0 {
			return value.UndefinedValue, nil
		}
		target := args[0]
		for _, src := range args[1:] {
			if !value.IsObjectKind(src) {
				continue
			}
			if err := operators.SpreadObject(src, target); err != nil {
				return nil, err
			}
		}
		return target, nil
	}))
	_ = object.SetOwnProperty(ctor, "create", value.NewNativeFunction("create", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		proto := value.NullValue
		if len(args) > 0 {
			proto = args[0]
		}
		return value.NewObject(proto), nil
	}))

	return ctor
}

func arg(args []*value.Value, i int) *value.Value {
	if i >= len(args) {
		return value.UndefinedValue
	}
	return args[i]
}

func stringsToArray(keys []string) *value.Value {
	out := value.NewArray(value.NullValue)
	for i, k := range keys {
		_ = arraySet(out, i, value.NewString(k))
	}
	return out
}
