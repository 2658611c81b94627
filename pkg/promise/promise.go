// Package promise implements the three-state promise machine (component
// #7, §4.7): construction, resolve/reject, then/catch/finally, and the
// static helpers (all/allSettled/race/any). Settlement always schedules
// reactions onto an event loop's microtask queue rather than invoking them
// inline, preserving the "promise interleaving" invariant (§4.9) even for
// an already-settled promise.
package promise

import (
	"github.com/purplert/jsruntime/pkg/eventloop"
	"github.com/purplert/jsruntime/pkg/function"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

func init() {
	function.AsyncStart = startAsync
}

// loop is the process-wide event loop every promise reaction is scheduled
// onto. pkg/runtime owns its lifecycle (Run/RunOnce); this package only
// ever calls QueueMicrotask.
var loop *eventloop.Loop

// SetLoop wires the event loop this package schedules reactions onto. Must
// be called once during runtime init before any promise settles.
func SetLoop(l *eventloop.Loop) {
	loop = l
}

// New returns a fresh pending promise value (§4.7 "Construction creates a
// pending promise").
func New() *value.Value {
	return value.NewPendingPromise()
}

// Resolve implements §4.7 resolve(v): a no-op if already settled; if v is
// itself a promise, attaches reactions mirroring its eventual settlement
// (detecting the self-resolution cycle as a TypeError); otherwise
// transitions to fulfilled and schedules every attached reaction.
func Resolve(p *value.Value, v *value.Value) {
	cell := p.Promise()
	if cell.Status != value.Pending {
		return
	}
	if v == p {
		Reject(p, selfResolutionError())
		return
	}
	if value.IsPromise(v) {
		adopt(p, v)
		return
	}
	settle(p, value.Fulfilled, v)
}

// Reject implements §4.7 reject(r): a no-op if already settled, otherwise
// transitions to rejected and schedules every attached rejection reaction.
func Reject(p *value.Value, reason *value.Value) {
	cell := p.Promise()
	if cell.Status != value.Pending {
		return
	}
	settle(p, value.Rejected, reason)
}

func selfResolutionError() *value.Value {
	return value.NewErrorObject(value.KindTypeError, "Chaining cycle detected for promise")
}

// adopt wires p to mirror src's eventual settlement (§4.7 "attach reactions
// that mirror v's eventual settlement").
func adopt(p, src *value.Value) {
	AttachReaction(src, value.Reaction{
		Resolve: func(v *value.Value) { Resolve(p, v) },
		Reject:  func(err error) { Reject(p, errorValue(err)) },
	})
}

func errorValue(err error) *value.Value {
	if payload, ok := value.AsThrown(err); ok {
		return payload
	}
	return value.NewErrorObject(value.KindTypeError, err.Error())
}

func settle(p *value.Value, status value.PromiseStatus, result *value.Value) {
	cell := p.Promise()
	value.Retain(result)
	cell.Status = status
	cell.Result = result
	reactions := cell.Reactions
	cell.Reactions = nil
	for _, r := range reactions {
		scheduleReaction(status, result, r)
	}
}

// AttachReaction implements the reaction-attachment half of then(): if p is
// still pending, the reaction is queued for settlement; if already settled,
// the reaction is scheduled as a microtask immediately (still asynchronous,
// §4.9 "even an already-settled promise suspends its continuation").
func AttachReaction(p *value.Value, r value.Reaction) {
	cell := p.Promise()
	if cell.Status == value.Pending {
		cell.Reactions = append(cell.Reactions, r)
		return
	}
	scheduleReaction(cell.Status, cell.Result, r)
}

func scheduleReaction(status value.PromiseStatus, result *value.Value, r value.Reaction) {
	loop.QueueMicrotask(func() {
		if status == value.Fulfilled {
			if r.Resolve != nil {
				r.Resolve(result)
			}
		} else {
			if r.Reject != nil {
				r.Reject(value.Throw(result))
			}
		}
	})
}

// Then implements §4.7 then(onF, onR): returns a new promise; the handler
// runs if callable, otherwise forwards the value/reason; a thrown
// exception rejects the new promise; a returned promise is adopted.
func Then(p *value.Value, onFulfilled, onRejected *value.Value) *value.Value {
	result := New()
	AttachReaction(p, value.Reaction{
		Resolve: func(v *value.Value) { runHandler(result, onFulfilled, v, true) },
		Reject:  func(err error) { runHandler(result, onRejected, errorValue(err), false) },
	})
	return result
}

func runHandler(result *value.Value, handler *value.Value, input *value.Value, wasFulfilled bool) {
	if !value.IsCallable(handler) {
		if wasFulfilled {
			Resolve(result, input)
		} else {
			Reject(result, input)
		}
		return
	}
	out, err := function.Call(handler, value.UndefinedValue, []*value.Value{input})
	if err != nil {
		Reject(result, errorValue(err))
		return
	}
	Resolve(result, out)
}

// Catch implements §4.7 catch(h) = then(undefined, h).
func Catch(p *value.Value, onRejected *value.Value) *value.Value {
	return Then(p, nil, onRejected)
}

// Finally implements §4.7 finally(h): runs h regardless of outcome and
// preserves the original settlement unless h itself throws, in which case
// the throw propagates instead.
func Finally(p *value.Value, h *value.Value) *value.Value {
	onFulfilled := value.NewNativeFunction("", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		if _, err := function.Call(h, value.UndefinedValue, nil); err != nil {
			return nil, err
		}
		if len(args) > 0 {
			return args[0], nil
		}
		return value.UndefinedValue, nil
	})
	onRejected := value.NewNativeFunction("", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		if _, err := function.Call(h, value.UndefinedValue, nil); err != nil {
			return nil, err
		}
		var reason *value.Value = value.UndefinedValue
		if len(args) > 0 {
			reason = args[0]
		}
		return nil, value.Throw(reason)
	})
	return Then(p, onFulfilled, onRejected)
}

// startAsync drives an async function's coroutine body to completion,
// returning a promise cell that settles with its eventual return value or
// thrown exception (§4.5, §4.7). Await suspends the body on the awaited
// promise's settlement and resumes it via a scheduled reaction, so the
// Go goroutine backing the body only ever blocks waiting for that one
// reaction, never for arbitrary wall-clock time.
func startAsync(fn, this *value.Value, args []*value.Value) (*value.Value, error) {
	p := New()
	cell := fn.Function()
	if cell.Body == nil {
		Resolve(p, value.UndefinedValue)
		return p, nil
	}

	io := &asyncIO{
		resumeCh: make(chan asyncResume),
		awaitReq: make(chan awaitRequest),
		done:     make(chan asyncOutcome),
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				if ret, ok := r.(asyncReturn); ok {
					io.done <- asyncOutcome{value: ret.value}
					return
				}
				panic(r)
			}
		}()
		cell.Body(io)
		io.done <- asyncOutcome{value: value.UndefinedValue}
	}()

	advance(p, io)
	return p, nil
}

// advance pumps an async body's goroutine exactly one leg: either to its
// next Await suspension or to completion. It is always invoked from the
// single driving goroutine — the initial synchronous call in startAsync
// (matching real async-function semantics: the body runs synchronously up
// to its first await before the call returns), or later from inside a
// microtask reaction once an awaited promise settles. The body's own
// goroutine is therefore only ever "live" (touching shared heap state)
// while the driving goroutine is blocked on this select, never the two at
// once — the same ping-pong handoff pkg/iterator's drain uses.
func advance(p *value.Value, io *asyncIO) {
	select {
	case out := <-io.done:
		if out.err != nil {
			Reject(p, errorValue(out.err))
		} else {
			Resolve(p, out.value)
		}
	case req := <-io.awaitReq:
		target := req.promise
		if !value.IsPromise(target) {
			wrapped := New()
			Resolve(wrapped, target)
			target = wrapped
		}
		AttachReaction(target, value.Reaction{
			Resolve: func(v *value.Value) {
				io.resumeCh <- asyncResume{value: v}
				advance(p, io)
			},
			Reject: func(err error) {
				io.resumeCh <- asyncResume{err: err}
				advance(p, io)
			},
		})
	}
}

type asyncOutcome struct {
	value *value.Value
	err   error
}

type asyncResume struct {
	value *value.Value
	err   error
}

type awaitRequest struct {
	promise *value.Value
}

// asyncReturn is the panic sentinel translated `return expr;` statements
// inside an async function body raise to escape the GeneratorBody
// signature, mirroring pkg/iterator's genReturn and pkg/function's
// plainReturn for the other two callable variants.
type asyncReturn struct{ value *value.Value }

// asyncIO implements value.CoroutineIO for an async function body: Await
// suspends the caller's goroutine until the awaited promise settles,
// without blocking the event loop (settlement happens on the loop's own
// goroutine via a scheduled microtask reaction).
type asyncIO struct {
	resumeCh chan asyncResume
	awaitReq chan awaitRequest
	done     chan asyncOutcome
}

func (io *asyncIO) Yield(v *value.Value) *value.Value {
	panic("promise: yield used inside an async (non-generator) body")
}

func (io *asyncIO) Await(p *value.Value) (*value.Value, error) {
	io.awaitReq <- awaitRequest{promise: p}
	resume := <-io.resumeCh
	if resume.err != nil {
		return nil, resume.err
	}
	return resume.value, nil
}

// IsThenable reports whether v is a promise, or an object-kind value whose
// "then" property (read through object.GetProperty) is callable, so callers
// outside this package can test "then"-ability without reaching into
// pkg/object directly; kept here since it is a promise-specific predicate
// (§4.7 "Promise.resolve(x) ... wraps any other value").
func IsThenable(v *value.Value) bool {
	if value.IsPromise(v) {
		return true
	}
	if !value.IsObjectKind(v) {
		return false
	}
	then, err := object.GetProperty(v, "then")
	if err != nil {
		return false
	}
	return value.IsCallable(then)
}
