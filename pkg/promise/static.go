package promise

import (
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

// ResolveValue implements the static Promise.resolve(x) (§4.7): forwards an
// existing promise unchanged, wraps anything else (a non-promise object with
// a then method included) in a freshly fulfilled promise.
func ResolveValue(x *value.Value) *value.Value {
	if value.IsPromise(x) {
		return x
	}
	p := New()
	Resolve(p, x)
	return p
}

// RejectValue implements the static Promise.reject(r): a pre-rejected
// promise.
func RejectValue(reason *value.Value) *value.Value {
	p := New()
	Reject(p, reason)
	return p
}

// All implements Promise.all(iter) (§4.7): resolves when every input
// fulfills, preserving input order in the result array's slots, and
// rejects as soon as any input rejects.
func All(inputs []*value.Value) *value.Value {
	result := New()
	if len(inputs) == 0 {
		Resolve(result, newResultArray(nil))
		return result
	}
	values := make([]*value.Value, len(inputs))
	remaining := len(inputs)
	settled := false
	for i, in := range inputs {
		i := i
		AttachReaction(ResolveValue(in), value.Reaction{
			Resolve: func(v *value.Value) {
				if settled {
					return
				}
				values[i] = v
				remaining--
				if remaining == 0 {
					settled = true
					Resolve(result, newResultArray(values))
				}
			},
			Reject: func(err error) {
				if settled {
					return
				}
				settled = true
				Reject(result, errorValue(err))
			},
		})
	}
	return result
}

// settledDescriptor builds the {status, value|reason} pair
// Promise.allSettled collects per input (§4.7).
func settledDescriptor(status string, payload *value.Value, payloadKey string) *value.Value {
	obj := value.NewObject(value.NullValue)
	_ = object.SetOwnProperty(obj, "status", value.NewString(status))
	_ = object.SetOwnProperty(obj, payloadKey, payload)
	return obj
}

// AllSettled implements Promise.allSettled(iter): waits for every input to
// settle (fulfilled or rejected) and resolves with the ordered list of
// outcome descriptors; it never itself rejects.
func AllSettled(inputs []*value.Value) *value.Value {
	result := New()
	if len(inputs) == 0 {
		Resolve(result, newResultArray(nil))
		return result
	}
	values := make([]*value.Value, len(inputs))
	remaining := len(inputs)
	for i, in := range inputs {
		i := i
		AttachReaction(ResolveValue(in), value.Reaction{
			Resolve: func(v *value.Value) {
				values[i] = settledDescriptor("fulfilled", v, "value")
				remaining--
				if remaining == 0 {
					Resolve(result, newResultArray(values))
				}
			},
			Reject: func(err error) {
				values[i] = settledDescriptor("rejected", errorValue(err), "reason")
				remaining--
				if remaining == 0 {
					Resolve(result, newResultArray(values))
				}
			},
		})
	}
	return result
}

// Race implements Promise.race(iter): adopts whichever input settles
// first, in either direction.
func Race(inputs []*value.Value) *value.Value {
	result := New()
	settled := false
	for _, in := range inputs {
		AttachReaction(ResolveValue(in), value.Reaction{
			Resolve: func(v *value.Value) {
				if settled {
					return
				}
				settled = true
				Resolve(result, v)
			},
			Reject: func(err error) {
				if settled {
					return
				}
				settled = true
				Reject(result, errorValue(err))
			},
		})
	}
	return result
}

// Any implements Promise.any(iter): resolves on the first fulfillment,
// rejects with an AggregateError carrying every rejection reason in input
// order if all inputs reject (§4.7, SPEC_FULL.md SUPPLEMENTED FEATURES
// "AggregateError carries ordered rejection list").
func Any(inputs []*value.Value) *value.Value {
	result := New()
	if len(inputs) == 0 {
		Reject(result, newAggregateError(nil))
		return result
	}
	reasons := make([]*value.Value, len(inputs))
	remaining := len(inputs)
	settled := false
	for i, in := range inputs {
		i := i
		AttachReaction(ResolveValue(in), value.Reaction{
			Resolve: func(v *value.Value) {
				if settled {
					return
				}
				settled = true
				Resolve(result, v)
			},
			Reject: func(err error) {
				if settled {
					return
				}
				reasons[i] = errorValue(err)
				remaining--
				if remaining == 0 {
					settled = true
					Reject(result, newAggregateError(reasons))
				}
			},
		})
	}
	return result
}

func newAggregateError(reasons []*value.Value) *value.Value {
	errObj := value.NewErrorObject(value.KindAggregateError, "All promises were rejected")
	_ = object.SetOwnProperty(errObj, "errors", newResultArray(reasons))
	return errObj
}

// newResultArray is a thin array-literal builder kept in this package (not
// pkg/arrayobj) to avoid a dependency in the wrong direction: pkg/arrayobj
// does not need to know about promises, but the static helpers here need a
// plain indexable array to return.
func newResultArray(items []*value.Value) *value.Value {
	arr := value.NewArray(value.NullValue)
	cell := arr.Array()
	cell.Dense = make([]*value.Value, len(items))
	for i, it := range items {
		if it == nil {
			it = value.UndefinedValue
		}
		cell.Dense[i] = it
	}
	cell.Length = uint32(len(items))
	return arr
}
