// Package object implements the shape-driven property access algorithm
// (§4.3) shared by plain objects and function cells. It is the first layer
// above pkg/value that is allowed to reason about prototype-chain walks,
// descriptor resolution, and enumeration, since pkg/value itself must stay
// free of any such behavior to avoid an import cycle (pkg/value would need
// to import this package, and this package already imports pkg/value).
package object

import (
	"github.com/pkg/errors"

	"github.com/purplert/jsruntime/pkg/shape"
	"github.com/purplert/jsruntime/pkg/value"
)

func init() {
	chained = value.ToStringHook
	value.ToStringHook = toStringHook
}

// host returns the ObjectCell backing v's own-property table, or an error if
// v is not object-kind at all (§4.1 "cast to each variant ... undefined
// behavior if mistyped").
func host(v *value.Value) (*value.ObjectCell, error) {
	cell, ok := value.OwnPropertyHost(v)
	if !ok {
		return nil, errors.Errorf("object: %s is not a property host", v.Tag)
	}
	return cell, nil
}

// HasProperty implements `in`'s has_property(name): true if name resolves
// anywhere on the own shape or the prototype chain (§4.1, §4.10).
func HasProperty(v *value.Value, name string) bool {
	for cur := v; cur != nil; cur = value.Prototype(cur) {
		if value.IsNull(cur) || value.IsUndefined(cur) {
			return false
		}
		cell, ok := value.OwnPropertyHost(cur)
		if !ok {
			return false
		}
		if ownSlot(cell, name) != nil || slotIndexVisible(cell, name) {
			return true
		}
	}
	return false
}

// slotIndexVisible reports whether name has a live (non-deleted) slot on
// cell's own shape, independent of what the slot currently holds.
func slotIndexVisible(cell *value.ObjectCell, name string) bool {
	idx, ok := cell.Shape.SlotOf(name)
	if !ok {
		return false
	}
	return !cell.Deleted[name] && idx < len(cell.Slots)
}

// ownSlot returns the raw slot contents for name on cell's own shape, or nil
// if absent or masked by a prior delete (§4.3 "Deletion sets the name in the
// deleted-keys set ... without transitioning the shape").
func ownSlot(cell *value.ObjectCell, name string) *value.Value {
	idx, ok := cell.Shape.SlotOf(name)
	if !ok || cell.Deleted[name] {
		return nil
	}
	if idx >= len(cell.Slots) {
		return nil
	}
	return cell.Slots[idx]
}

// GetOwnProperty returns v's own slot contents for name, without walking the
// prototype chain and without resolving descriptors (§4.1 get_own_property).
// ok is false if the own shape has no live slot for name.
func GetOwnProperty(v *value.Value, name string) (slot *value.Value, ok bool) {
	cell, err := host(v)
	if err != nil {
		return nil, false
	}
	s := ownSlot(cell, name)
	if s == nil {
		return nil, false
	}
	return s, true
}

// GetPropertyWithReceiver implements §4.1's get_property_with_receiver: walk
// the prototype chain for name, resolving a found accessor descriptor's
// getter against receiver (not against the object where the accessor
// lives), the way an inherited getter must still see the original `this`.
func GetPropertyWithReceiver(v *value.Value, name string, receiver *value.Value) (*value.Value, error) {
	for cur := v; cur != nil; cur = value.Prototype(cur) {
		if value.IsNull(cur) || value.IsUndefined(cur) {
			break
		}
		cell, ok := value.OwnPropertyHost(cur)
		if !ok {
			break
		}
		slot := ownSlot(cell, name)
		if slot == nil {
			continue
		}
		return resolveRead(slot, receiver)
	}
	return value.UndefinedValue, nil
}

// GetProperty is GetPropertyWithReceiver with v itself as the receiver, the
// common case for a direct (non-forwarded) property read.
func GetProperty(v *value.Value, name string) (*value.Value, error) {
	return GetPropertyWithReceiver(v, name, v)
}

// resolveRead unwraps a raw slot into the value an ordinary read observes:
// a plain value passes through, a data descriptor yields its stored value,
// and an accessor descriptor invokes its getter against receiver.
func resolveRead(slot *value.Value, receiver *value.Value) (*value.Value, error) {
	switch {
	case value.IsDataDescriptor(slot):
		return slot.DataDescriptor().Val, nil
	case value.IsAccessorDescriptor(slot):
		get := slot.AccessorDescriptor().Get
		if get == nil || !value.IsCallable(get) {
			return value.UndefinedValue, nil
		}
		return Call(get, receiver, nil)
	default:
		return slot, nil
	}
}

// SetOwnProperty implements §4.1 set_own_property / the §4.3 write
// algorithm: if the name already has a live own slot holding a data
// descriptor, the writable flag gates the write; an accessor descriptor's
// setter is invoked against receiver; a raw value is simply overwritten.
// If the own shape has no slot for name, the prototype chain is searched
// for an accessor (invoked against receiver) or a non-writable data
// descriptor (TypeError); otherwise a brand-new own slot is appended via a
// shape transition.
func SetOwnProperty(v *value.Value, name string, val *value.Value) error {
	return setWithReceiver(v, name, val, v)
}

func setWithReceiver(v *value.Value, name string, val *value.Value, receiver *value.Value) error {
	cell, err := host(v)
	if err != nil {
		return err
	}
	if slot := ownSlot(cell, name); slot != nil {
		switch {
		case value.IsDataDescriptor(slot):
			dd := slot.DataDescriptor()
			if !dd.Writable {
				return value.ThrowKind(value.KindTypeError, "Cannot assign to read only property %q", name)
			}
			value.Retain(val)
			old := dd.Val
			dd.Val = val
			value.Release(old)
			return nil
		case value.IsAccessorDescriptor(slot):
			set := slot.AccessorDescriptor().Set
			if set == nil || !value.IsCallable(set) {
				return nil // no setter: silently ignored per loose-mode assignment semantics
			}
			_, err := Call(set, receiver, []*value.Value{val})
			return err
		default:
			idx, _ := cell.Shape.SlotOf(name)
			value.Retain(val)
			old := cell.Slots[idx]
			cell.Slots[idx] = val
			value.Release(old)
			return nil
		}
	}

	// Not found own: search the prototype chain for an inherited accessor or
	// a non-writable data descriptor before falling through to append.
	for cur := value.Prototype(v); cur != nil; cur = value.Prototype(cur) {
		if value.IsNull(cur) || value.IsUndefined(cur) {
			break
		}
		protoCell, ok := value.OwnPropertyHost(cur)
		if !ok {
			break
		}
		slot := ownSlot(protoCell, name)
		if slot == nil {
			continue
		}
		switch {
		case value.IsAccessorDescriptor(slot):
			set := slot.AccessorDescriptor().Set
			if set == nil || !value.IsCallable(set) {
				return nil
			}
			_, err := Call(set, receiver, []*value.Value{val})
			return err
		case value.IsDataDescriptor(slot):
			if !slot.DataDescriptor().Writable {
				return value.ThrowKind(value.KindTypeError, "Cannot assign to read only property %q", name)
			}
		}
		break
	}

	appendSlot(cell, name, val)
	return nil
}

// appendSlot performs the shape-transition write for a property the own
// shape has never seen (or had deleted): a new child shape is adopted and
// the value is appended to the slot vector (§4.3 "the new slot index equals
// the new name count minus one").
func appendSlot(cell *value.ObjectCell, name string, val *value.Value) {
	value.Retain(val)
	if _, ok := cell.Shape.SlotOf(name); ok && cell.Deleted[name] {
		// Re-adding after delete: a live slot index for a deleted name is
		// always < len(cell.Slots) (the slot vector grows in lockstep with
		// every shape transition), so reuse never applies here — clear the
		// mask and fall through to a fresh transition so the slot still
		// "transitions as if it were new" (§4.3).
		delete(cell.Deleted, name)
	}
	cell.Shape = cell.Shape.Transition(name)
	cell.Slots = append(cell.Slots, val)
}

// DefineDataProperty implements §4.1 define_data_property, bypassing the
// writable/accessor checks SetOwnProperty applies and installing a fresh
// data descriptor directly in the own slot (§4.3 "defineProperty bypasses
// these rules").
func DefineDataProperty(v *value.Value, name string, val *value.Value, writable, enumerable, configurable bool) error {
	cell, err := host(v)
	if err != nil {
		return err
	}
	desc := value.NewDataDescriptor(val, writable, enumerable, configurable)
	installDescriptor(cell, name, desc)
	return nil
}

// DefineGetter installs or updates an accessor descriptor's getter,
// preserving any existing setter on the same name (§4.1 define_getter).
func DefineGetter(v *value.Value, name string, fn *value.Value) error {
	return defineAccessor(v, name, fn, nil, true, false)
}

// DefineSetter installs or updates an accessor descriptor's setter,
// preserving any existing getter on the same name (§4.1 define_setter).
func DefineSetter(v *value.Value, name string, fn *value.Value) error {
	return defineAccessor(v, name, nil, fn, false, true)
}

func defineAccessor(v *value.Value, name string, get, set *value.Value, wantGet, wantSet bool) error {
	cell, err := host(v)
	if err != nil {
		return err
	}
	existing := ownSlot(cell, name)
	enumerable, configurable := true, true
	if existing != nil && value.IsAccessorDescriptor(existing) {
		prev := existing.AccessorDescriptor()
		if wantGet {
			set = prev.Set
		}
		if wantSet {
			get = prev.Get
		}
		enumerable, configurable = prev.Enumerable, prev.Configurable
	}
	desc := value.NewAccessorDescriptor(get, set, enumerable, configurable)
	installDescriptor(cell, name, desc)
	return nil
}

func installDescriptor(cell *value.ObjectCell, name string, desc *value.Value) {
	if idx, ok := cell.Shape.SlotOf(name); ok && !cell.Deleted[name] && idx < len(cell.Slots) {
		value.Retain(desc)
		old := cell.Slots[idx]
		cell.Slots[idx] = desc
		value.Release(old)
		return
	}
	appendSlot(cell, name, desc)
}

// Delete implements §4.10 delete: masks name in the deleted-keys set without
// transitioning the shape, and always reports success for own-property
// deletion the way this runtime's object model allows (no non-configurable
// own properties are modeled on plain objects).
func Delete(v *value.Value, name string) (bool, error) {
	cell, err := host(v)
	if err != nil {
		return false, err
	}
	if _, ok := cell.Shape.SlotOf(name); !ok {
		return true, nil
	}
	if cell.Deleted == nil {
		cell.Deleted = make(map[string]bool)
	}
	cell.Deleted[name] = true
	return true, nil
}

// Keys implements the `Object.keys` enumeration order: the shape's name
// vector in insertion order, skipping deleted names and non-enumerable
// descriptors (§4.3).
func Keys(v *value.Value) []string {
	cell, err := host(v)
	if err != nil {
		return nil
	}
	names := cell.Shape.Names()
	out := make([]string, 0, len(names))
	for position, name := range names {
		if cell.Deleted[name] {
			continue
		}
		idx, _ := cell.Shape.SlotOf(name)
		// A name can appear more than once in the shape's lineage when it was
		// deleted and re-added (§4.3 "re-adding ... transitions as if it were
		// new"): SlotOf always resolves to the most recent transition, so an
		// earlier occurrence at a stale position is a dead entry and must be
		// skipped rather than enumerated twice.
		if idx != position {
			continue
		}
		if idx >= len(cell.Slots) {
			continue
		}
		slot := cell.Slots[idx]
		if value.IsDataDescriptor(slot) && !slot.DataDescriptor().Enumerable {
			continue
		}
		if value.IsAccessorDescriptor(slot) && !slot.AccessorDescriptor().Enumerable {
			continue
		}
		out = append(out, name)
	}
	return out
}

// inlineCaches holds the per-call-site inline caches (§9 "small per-call-site
// hint caching last shape seen") that InlineCacheFor hands out, for callers
// that want to skip the hash lookup when the shape hasn't changed since the
// last visit. The property reads in this package do not consult them.
var inlineCaches = map[uintptr]*shape.InlineCache{}

// InlineCacheFor returns the per-call-site cache keyed by site, creating one
// on first use. site is typically the address of a call-site-local
// variable the caller owns, giving each source location a stable identity.
func InlineCacheFor(site uintptr) *shape.InlineCache {
	c, ok := inlineCaches[site]
	if !ok {
		c = &shape.InlineCache{}
		inlineCaches[site] = c
	}
	return c
}
