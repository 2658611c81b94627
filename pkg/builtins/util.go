package builtins

import (
	"strconv"

	"github.com/purplert/jsruntime/pkg/arrayobj"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

// arraySet writes arr[idx] = val through the array model's own write
// algorithm (dense/sparse placement, length bookkeeping, §4.4) rather than
// poking ArrayCell.Dense directly.
func arraySet(arr *value.Value, idx int, val *value.Value) error {
	return arrayobj.Set(arr, strconv.Itoa(idx), val)
}

func arraySetLength(arr *value.Value, n uint32) error {
	return arrayobj.SetLength(arr, value.NewNumber(float64(n)))
}

// newNativeCtor builds a native function value usable both as a plain call
// and as a constructor (`new`): it wires a .prototype object with a
// constructor back-reference exactly like pkg/function.NewFunction does for
// translated functions, the difference being Native is set instead of Body
// (§4.5's call algorithm dispatches on Native before ever looking at Body).
func newNativeCtor(name string, fn value.NativeFn) *value.Value {
	v := value.NewFunction(name, value.VariantPlain)
	cell := v.Function()
	cell.Native = fn
	proto := value.NewObject(value.NullValue)
	_ = object.DefineDataProperty(proto, "constructor", v, true, false, true)
	cell.Prototype = proto
	return v
}
