package value

import "math"

// Packed immediate-value encoding used by Bits/fromBits once ProbeNaNBoxing
// has confirmed this process's pointers fit the spare NaN payload (§3, §4.2).
// A genuine number packs as its own IEEE-754 bits (a real float is already a
// valid "NaN-boxed" encoding of itself), except that every NaN packs as the
// canonical quiet NaN with a zero payload. Undefined/null/uninitialized/the
// two booleans pack as one of five reserved quiet-NaN payloads (1 through 5),
// which that canonicalization keeps free for them.
const (
	quietNaNBits = uint64(0x7FF8000000000000)
	immTagMask   = uint64(0x7)

	immTagUndefined     = uint64(1)
	immTagNull          = uint64(2)
	immTagUninitialized = uint64(3)
	immTagFalse         = uint64(4)
	immTagTrue          = uint64(5)
)

// Bits packs an immediate value (undefined, null, uninitialized, boolean, or
// number) into a single uint64, for use as a map key (§4.2). ok is false for
// any heap-backed tag, or when
// ProbeNaNBoxing found this process's pointers don't fit the packed scheme
// (the canonical *Value representation is always used regardless; Bits is
// purely an optional accelerator).
func (v *Value) Bits() (bits uint64, ok bool) {
	if v == nil || !ProbeNaNBoxing() {
		return 0, false
	}
	switch v.Tag {
	case Number:
		if math.IsNaN(v.number) {
			return quietNaNBits, true
		}
		return math.Float64bits(v.number), true
	case Undefined:
		return quietNaNBits | immTagUndefined, true
	case Null:
		return quietNaNBits | immTagNull, true
	case Uninitialized:
		return quietNaNBits | immTagUninitialized, true
	case Boolean:
		if v.boolean {
			return quietNaNBits | immTagTrue, true
		}
		return quietNaNBits | immTagFalse, true
	default:
		return 0, false
	}
}

// fromBits reverses Bits. It is unexported: callers outside the package only
// ever need Bits as an opaque comparable key, never to reconstruct a Value
// from raw bits directly (that would bypass heap-cell construction for any
// non-immediate tag).
func fromBits(bits uint64) *Value {
	f := math.Float64frombits(bits)
	if !math.IsNaN(f) {
		return NewNumber(f)
	}
	switch bits & immTagMask {
	case immTagUndefined:
		return UndefinedValue
	case immTagNull:
		return NullValue
	case immTagUninitialized:
		return UninitializedValue
	case immTagFalse:
		return FalseValue
	case immTagTrue:
		return TrueValue
	default:
		return NaNValue
	}
}
