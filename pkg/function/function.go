// Package function implements call/construct dispatch over function-cell
// variants (component #5, §4.5): a plain callable runs synchronously, a
// generator callable produces an iterator cell, an async callable produces
// a promise cell and schedules its body, and `new F(args)` follows the
// ECMA-262 construct algorithm.
package function

import (
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

func init() {
	object.CallHook = Call
}

// GeneratorStart is set by pkg/iterator: given a plain-generator function
// cell and the call arguments, it starts the coroutine and returns the
// iterator cell value (§4.6). Kept as a hook so pkg/function never imports
// pkg/iterator back.
var GeneratorStart func(fn *value.Value, this *value.Value, args []*value.Value) (*value.Value, error)

// AsyncGeneratorStart is set by pkg/asynciter: given an async-generator
// function cell, starts the coroutine and returns the async-iterator cell
// value (§4.8).
var AsyncGeneratorStart func(fn *value.Value, this *value.Value, args []*value.Value) (*value.Value, error)

// AsyncStart is set by pkg/promise: given an async function cell, starts
// its coroutine body and returns the promise cell tracking its eventual
// settlement (§4.7, §4.5 "an async callable produces a freshly created
// promise cell and schedules its coroutine body").
var AsyncStart func(fn *value.Value, this *value.Value, args []*value.Value) (*value.Value, error)

// Call implements §4.1's call(this, args), dispatching on the function
// cell's variant (§4.5). Calling a non-function value raises a TypeError
// (§4.1 Failure).
func Call(fn, this *value.Value, args []*value.Value) (*value.Value, error) {
	if !value.IsCallable(fn) {
		return nil, value.ThrowKind(value.KindTypeError, "value is not a function")
	}
	cell := fn.Function()
	switch cell.Variant {
	case value.VariantPlain:
		if cell.Native != nil {
			return cell.Native(this, args)
		}
		return runPlainBody(fn, this, args)
	case value.VariantGenerator:
		if GeneratorStart == nil {
			return nil, value.ThrowKind(value.KindTypeError, "generator dispatch unavailable")
		}
		return GeneratorStart(fn, this, args)
	case value.VariantAsyncGenerator:
		if AsyncGeneratorStart == nil {
			return nil, value.ThrowKind(value.KindTypeError, "async-generator dispatch unavailable")
		}
		return AsyncGeneratorStart(fn, this, args)
	case value.VariantAsync:
		if AsyncStart == nil {
			return nil, value.ThrowKind(value.KindTypeError, "async dispatch unavailable")
		}
		return AsyncStart(fn, this, args)
	default:
		return nil, value.ThrowKind(value.KindTypeError, "unknown function variant")
	}
}

// runPlainBody invokes a plain (non-native, non-generator, non-async)
// function cell's body synchronously via the CoroutineIO abstraction with
// yield/await disabled, so translated plain-function bodies and
// coroutine-backed bodies share one GeneratorBody shape.
func runPlainBody(fn, this *value.Value, args []*value.Value) (*value.Value, error) {
	cell := fn.Function()
	if cell.Body == nil {
		return value.UndefinedValue, nil
	}
	io := &syncIO{this: this, args: args}
	var result *value.Value
	func() {
		defer func() {
			if r := recover(); r != nil {
				if ret, ok := r.(plainReturn); ok {
					result = ret.value
					return
				}
				panic(r)
			}
		}()
		cell.Body(io)
	}()
	if result == nil {
		return value.UndefinedValue, nil
	}
	return result, nil
}

// plainReturn is how a plain GeneratorBody signals its return value through
// the shared entry point; translated code calls io.Yield exactly never and
// instead panics with this sentinel on `return`, the pattern the codegen
// side emits for a plain function body wrapped as a GeneratorBody.
type plainReturn struct{ value *value.Value }

// syncIO is the CoroutineIO used for plain function bodies: Yield and
// Await are not legal in plain functions, so both panic loudly if invoked,
// a codegen bug rather than a runtime condition.
type syncIO struct {
	this *value.Value
	args []*value.Value
}

func (s *syncIO) Yield(v *value.Value) *value.Value {
	panic("function: yield used outside a generator body")
}

func (s *syncIO) Await(p *value.Value) (*value.Value, error) {
	panic("function: await used outside an async body")
}

// Construct implements §4.5's `new F(args)` algorithm: read F.prototype (an
// object, defaulting to a fresh empty one), allocate a receiver with that
// prototype, invoke F against the receiver, and return the call's result if
// it is object-kind, else the allocated receiver.
func Construct(fn *value.Value, args []*value.Value) (*value.Value, error) {
	if !value.IsCallable(fn) {
		return nil, value.ThrowKind(value.KindTypeError, "value is not a constructor")
	}
	cell := fn.Function()
	proto := cell.Prototype
	if proto == nil || !value.IsObjectKind(proto) {
		proto = value.NewObject(value.NullValue)
	}
	receiver := value.NewObject(proto)
	result, err := Call(fn, receiver, args)
	if err != nil {
		return nil, err
	}
	if value.IsObjectKind(result) {
		return result, nil
	}
	return receiver, nil
}

// NewFunction wires a freshly built function cell's `.prototype` object with
// a `constructor` back-reference (§4.5 "initialized on construction to an
// object with a constructor back-reference").
func NewFunction(name string, variant value.FunctionVariant, body value.GeneratorBody) *value.Value {
	fn := value.NewFunction(name, variant)
	cell := fn.Function()
	cell.Body = body
	proto := value.NewObject(value.NullValue)
	_ = object.DefineDataProperty(proto, "constructor", fn, true, false, true)
	cell.Prototype = proto
	return fn
}
