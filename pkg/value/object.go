package value

import "github.com/purplert/jsruntime/pkg/shape"

// ObjectCell is the storage for an ordinary object (§3 "Object cell").
// Property reads/writes at the algorithm level live in pkg/object; this
// struct only owns the data layout so that Value (in this package) can hold
// a field of this type without an import cycle.
type ObjectCell struct {
	cellHeader
	Proto   *Value          // prototype reference, typically Null or an object/function
	Shape   *shape.Shape    // current hidden-class shape
	Slots   []*Value        // parallel to Shape's name order; holds a raw value OR a *Value wrapping a descriptor
	Deleted map[string]bool // masks shape entries without a reverse shape transition (§4.3)
}

// NewObjectCell allocates an object in the empty root shape with the given
// prototype (§4.3 "An object is born in the empty shape").
func NewObjectCell(proto *Value) *ObjectCell {
	return &ObjectCell{
		cellHeader: cellHeader{tag: TObject, refs: 1},
		Proto:      proto,
		Shape:      shape.Root,
		Slots:      nil,
		Deleted:    nil,
	}
}

// NewObject wraps a fresh ObjectCell in a Value.
func NewObject(proto *Value) *Value {
	return &Value{Tag: TObject, obj: NewObjectCell(proto)}
}

func (v *Value) Object() *ObjectCell { return v.obj }

// DataDescriptor holds a value plus the ECMA-262 attribute flags (§3
// "Descriptors").
type DataDescriptor struct {
	cellHeader
	Val          *Value
	Writable     bool
	Enumerable   bool
	Configurable bool
}

func NewDataDescriptor(val *Value, writable, enumerable, configurable bool) *Value {
	return &Value{Tag: TDataDescriptor, ddesc: &DataDescriptor{
		cellHeader: cellHeader{tag: TDataDescriptor, refs: 1},
		Val:        val, Writable: writable, Enumerable: enumerable, Configurable: configurable,
	}}
}

func (v *Value) DataDescriptor() *DataDescriptor { return v.ddesc }

// AccessorDescriptor holds an optional getter/setter pair (§3 "Descriptors").
type AccessorDescriptor struct {
	cellHeader
	Get          *Value // function value or nil
	Set          *Value // function value or nil
	Enumerable   bool
	Configurable bool
}

func NewAccessorDescriptor(get, set *Value, enumerable, configurable bool) *Value {
	return &Value{Tag: TAccessorDescriptor, adesc: &AccessorDescriptor{
		cellHeader: cellHeader{tag: TAccessorDescriptor, refs: 1},
		Get:        get, Set: set, Enumerable: enumerable, Configurable: configurable,
	}}
}

func (v *Value) AccessorDescriptor() *AccessorDescriptor { return v.adesc }

// OwnPropertyHost returns the ObjectCell backing v's own-property table for
// the two tags that carry one the uniform way (object and function — §4.5
// "Every function cell's own-property table is checked before its
// prototype" uses the identical slot/shape algorithm as an ordinary
// object). Arrays are deliberately excluded: their own-property storage is
// the dense/sparse/string-keyed layout in ArrayCell (§4.4), not a shape.
func OwnPropertyHost(v *Value) (*ObjectCell, bool) {
	switch v.Tag {
	case TObject:
		return v.obj, true
	case TFunction:
		return v.fn.OwnShape, true
	default:
		return nil, false
	}
}

// Prototype returns the value that starts v's prototype-chain walk (§4.3).
func Prototype(v *Value) *Value {
	switch v.Tag {
	case TObject:
		return v.obj.Proto
	case TFunction:
		return v.fn.Proto
	case TArray:
		return v.arr.Proto
	default:
		return NullValue
	}
}

// SetPrototype rewires v's prototype-chain start (§4.1 set_prototype).
func SetPrototype(v, proto *Value) {
	switch v.Tag {
	case TObject:
		v.obj.Proto = proto
	case TFunction:
		v.fn.Proto = proto
	case TArray:
		v.arr.Proto = proto
	}
}

// IsDataDescriptor / IsAccessorDescriptor are the tag predicates for slot
// contents (a slot may hold a plain value, a data descriptor, or an
// accessor descriptor — §3 "Descriptors are themselves first-class values
// so that slot storage is uniform").
func IsDataDescriptor(v *Value) bool     { return v != nil && v.Tag == TDataDescriptor }
func IsAccessorDescriptor(v *Value) bool { return v != nil && v.Tag == TAccessorDescriptor }
