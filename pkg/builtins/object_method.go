package builtins

import (
	"github.com/purplert/jsruntime/pkg/arrayobj"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

// CallObjectMethod dispatches `.hasOwnProperty` and an array's
// `[Symbol.iterator]` on any object-kind or array-kind receiver, the same
// tag-dispatch CallPromiseMethod and CallFunctionMethod use for cells with
// no Object.prototype/Array.prototype to hang a data property off of.
// hasOwnProperty follows ECMA: own-slot presence only, not whether the slot
// holds an accessor that would currently yield undefined.
func CallObjectMethod(recv *value.Value, name string, args []*value.Value) (result *value.Value, handled bool, err error) {
	if value.IsArray(recv) && name == value.SymbolIterator.SymbolCell_().Key {
		it, err := arrayobj.Iterator(recv)
		return it, true, err
	}
	if name != "hasOwnProperty" {
		return nil, false, nil
	}
	key := argOrUndefined(args).ToString()
	switch {
	case value.IsArray(recv):
		return value.NewBool(arrayOwnProperty(recv, key)), true, nil
	case value.IsObjectKind(recv):
		_, ok := object.GetOwnProperty(recv, key)
		return value.NewBool(ok), true, nil
	default:
		return nil, false, nil
	}
}

// arrayOwnProperty checks only an array's own storage (dense/sparse/length/
// string-keyed map), deliberately not walking the prototype chain the way
// arrayobj.HasProperty does for plain `in` — hasOwnProperty must report
// false for anything found only on the prototype.
func arrayOwnProperty(recv *value.Value, key string) bool {
	cell := recv.Array()
	if idx, ok := value.CanonicalIndex(key); ok {
		if idx < uint32(len(cell.Dense)) {
			return !value.IsUninitialized(cell.Dense[idx])
		}
		_, ok := cell.Sparse[idx]
		return ok
	}
	if key == "length" {
		return true
	}
	_, ok := cell.StringProps[key]
	return ok
}
