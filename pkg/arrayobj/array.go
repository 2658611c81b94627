// Package arrayobj implements the dense/sparse array model (component #4,
// §4.4): canonical-index recognition, dense-tail growth with a sparse
// overflow map, the length accessor's truncation semantics, and the
// auxiliary string-key map for non-index properties like `arr.foo = 1`.
package arrayobj

import (
	"github.com/purplert/jsruntime/pkg/iterator"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

func init() {
	chained := value.ToStringHook
	value.ToStringHook = func(v *value.Value) string {
		if value.IsArray(v) {
			return toString(v)
		}
		if chained != nil {
			return chained(v)
		}
		return "[object array]"
	}
}

// Get implements the array read algorithm (§4.4): an in-range dense index
// returns the slot (translating the uninitialized hole sentinel to
// undefined), an out-of-dense sparse index returns the sparse value, and
// anything else falls through to the prototype chain via pkg/object.
func Get(v *value.Value, key string) (*value.Value, error) {
	cell := v.Array()
	if idx, ok := value.CanonicalIndex(key); ok {
		if idx < uint32(len(cell.Dense)) {
			slot := cell.Dense[idx]
			if slot == nil || value.IsUninitialized(slot) {
				return value.UndefinedValue, nil
			}
			return slot, nil
		}
		if sv, ok := cell.Sparse[idx]; ok {
			return sv, nil
		}
		return protoGet(v, key)
	}
	if key == "length" {
		return value.NewNumber(float64(cell.Length)), nil
	}
	if sv, ok := cell.StringProps[key]; ok {
		return sv, nil
	}
	return protoGet(v, key)
}

func protoGet(v *value.Value, key string) (*value.Value, error) {
	proto := value.Prototype(v)
	if value.IsNull(proto) || value.IsUndefined(proto) {
		return value.UndefinedValue, nil
	}
	return object.GetPropertyWithReceiver(proto, key, v)
}

// HasProperty implements `in` for an array receiver (§4.10 "`in` requires
// an object-kind right operand ... returns whether has_property(name)
// holds"): a live dense slot or sparse entry, "length", a string-keyed
// property, or anything found by walking the prototype chain.
func HasProperty(v *value.Value, key string) bool {
	cell := v.Array()
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
	if _, ok := cell.StringProps[key]; ok {
		return true
	}
	proto := value.Prototype(v)
	if value.IsNull(proto) || value.IsUndefined(proto) {
		return false
	}
	return object.HasProperty(proto, key)
}

// Set implements the array write algorithm (§4.4): canonical indices within
// or near the dense tail extend Dense; farther indices spill to Sparse;
// "length" goes through SetLength; everything else lands in StringProps.
func Set(v *value.Value, key string, val *value.Value) error {
	cell := v.Array()
	if idx, ok := value.CanonicalIndex(key); ok {
		return setIndex(cell, idx, val)
	}
	if key == "length" {
		return SetLength(v, val)
	}
	value.Retain(val)
	old := cell.StringProps[key]
	if cell.StringProps == nil {
		cell.StringProps = make(map[string]*value.Value)
	}
	cell.StringProps[key] = val
	value.Release(old)
	return nil
}

func setIndex(cell *value.ArrayCell, idx uint32, val *value.Value) error {
	value.Retain(val)
	switch {
	case idx < uint32(len(cell.Dense)):
		old := cell.Dense[idx]
		cell.Dense[idx] = val
		value.Release(old)
	case idx <= uint32(len(cell.Dense))+value.DenseGrowthThreshold:
		for uint32(len(cell.Dense)) < idx {
			cell.Dense = append(cell.Dense, value.UninitializedValue)
		}
		cell.Dense = append(cell.Dense, val)
	default:
		if cell.Sparse == nil {
			cell.Sparse = make(map[uint32]*value.Value)
		}
		old := cell.Sparse[idx]
		cell.Sparse[idx] = val
		value.Release(old)
	}
	if idx+1 > cell.Length {
		cell.Length = idx + 1
	}
	return nil
}

// SetLength implements the length accessor's write side (§4.4): the new
// value must be a number (TypeError otherwise) holding a non-negative
// integer no greater than 2^32-1 (RangeError otherwise); it updates Length
// and truncates dense/sparse storage beyond it.
func SetLength(v *value.Value, newLen *value.Value) error {
	if !value.IsNumber(newLen) {
		return value.ThrowKind(value.KindTypeError, "array length must be a number")
	}
	n := newLen.Num()
	if n < 0 || n != float64(uint32(n)) {
		return value.ThrowKind(value.KindRangeError, "Invalid array length")
	}
	cell := v.Array()
	length := uint32(n)
	if length < uint32(len(cell.Dense)) {
		for _, el := range cell.Dense[length:] {
			value.Release(el)
		}
		cell.Dense = cell.Dense[:length]
	}
	for idx, el := range cell.Sparse {
		if idx >= length {
			value.Release(el)
			delete(cell.Sparse, idx)
		}
	}
	cell.Length = length
	return nil
}

// Delete implements `delete arr[i]` (§4.10): a dense index is reset to the
// uninitialized hole sentinel rather than removed, preserving Dense's
// length; a sparse index is removed from the map outright.
func Delete(v *value.Value, key string) (bool, error) {
	cell := v.Array()
	if idx, ok := value.CanonicalIndex(key); ok {
		if idx < uint32(len(cell.Dense)) {
			value.Release(cell.Dense[idx])
			cell.Dense[idx] = value.UninitializedValue
			return true, nil
		}
		value.Release(cell.Sparse[idx])
		delete(cell.Sparse, idx)
		return true, nil
	}
	value.Release(cell.StringProps[key])
	delete(cell.StringProps, key)
	return true, nil
}

// Iterator implements §4.4's "Arrays expose a generator-produced iterator
// that yields get_property(i) for i in [0, length)": a synthetic generator
// function cell whose body walks the array by index, handed to
// pkg/iterator.Start exactly as a translated `function*` would be.
func Iterator(arr *value.Value) (*value.Value, error) {
	gen := value.NewFunction("", value.VariantGenerator)
	gen.Function().Body = func(io value.CoroutineIO) {
		cell := arr.Array()
		for i := uint32(0); i < cell.Length; i++ {
			el, err := Get(arr, itoa(i))
			if err != nil {
				// A prototype-chain getter threw while computing get_property(i).
				// Generator bodies outside pkg/iterator have no channel to signal
				// a thrown exception through (genThrow is private to that
				// package), so the element is treated as absent rather than
				// propagating an unrecoverable panic through the coroutine.
				el = value.UndefinedValue
			}
			io.Yield(el)
		}
	}
	return iterator.Start(gen, arr, nil)
}

func itoa(i uint32) string {
	if i == 0 {
		return "0"
	}
	var buf [10]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}

// toString renders an array per the source language's default Array
// ToString: elements joined by "," with holes (uninitialized) and
// null/undefined rendering as the empty string between commas, matching
// the `[1,,3].toString() === "1,,3"` scenario (§8).
func toString(v *value.Value) string {
	cell := v.Array()
	parts := make([]string, cell.Length)
	for i := uint32(0); i < cell.Length; i++ {
		var el *value.Value
		if i < uint32(len(cell.Dense)) {
			el = cell.Dense[i]
		} else if sv, ok := cell.Sparse[i]; ok {
			el = sv
		}
		switch {
		case el == nil, value.IsUninitialized(el), value.IsNull(el), value.IsUndefined(el):
			parts[i] = ""
		default:
			parts[i] = el.ToString()
		}
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}
