// Package asynciter implements the async-iterator protocol (component #8,
// §4.8): a FIFO of pending (promise, input) pairs, an awaiting/running
// guard, and the drain semantics that fulfill or reject queued promises as
// the underlying async-generator coroutine yields, awaits, returns, or
// throws.
//
// The coroutine itself reuses pkg/iterator's goroutine/channel handshake
// (same suspend-by-channel-receive primitive); what this package adds on
// top is the promise-producing queue §4.8 describes, plus the await leg
// pkg/promise's advance() pumps — a plain synchronous iterator (§4.6) has
// neither.
package asynciter

import (
	"github.com/purplert/jsruntime/pkg/function"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/promise"
	"github.com/purplert/jsruntime/pkg/value"
)

func init() {
	function.AsyncGeneratorStart = Start
}

type outcomeKind uint8

const (
	outcomeYield outcomeKind = iota
	outcomeReturn
	outcomeThrow
	outcomeAwait
)

type outcome struct {
	kind  outcomeKind
	value *value.Value // yielded value, return value, or awaited promise
	err   error
}

type resumeKind uint8

const (
	resumeNormal resumeKind = iota
	resumeReturn
	resumeThrow
	resumeAwaitSettled
)

type resumeMsg struct {
	kind  resumeKind
	value *value.Value
	err   error
}

type genReturn struct{ value *value.Value }
type genThrow struct{ err error }

// coroutine is the goroutine-backed engine driving one async-generator
// body, structurally parallel to pkg/iterator's (kept as a separate type
// rather than shared: the two suspension vocabularies stay decoupled since
// async-generator bodies also support Await, which a plain generator's
// CoroutineIO rejects outright).
type coroutine struct {
	resumeCh chan resumeMsg
	outCh    chan outcome
	started  bool
	body     value.GeneratorBody
	this     *value.Value
	args     []*value.Value
}

func (c *coroutine) start() {
	c.started = true
	go func() {
		io := &coroutineIO{c: c}
		defer func() {
			if r := recover(); r != nil {
				switch e := r.(type) {
				case genReturn:
					c.outCh <- outcome{kind: outcomeReturn, value: e.value}
				case genThrow:
					c.outCh <- outcome{kind: outcomeThrow, err: e.err}
				default:
					panic(r)
				}
			}
		}()
		c.body(io)
		c.outCh <- outcome{kind: outcomeReturn, value: value.UndefinedValue}
	}()
}

// coroutineIO implements value.CoroutineIO for an async-generator body:
// Yield suspends for the next next()/return()/throw() call; Await reports
// the target promise to the driving side via outCh and then blocks for the
// corresponding settlement to arrive on resumeCh — the driving side
// attaches the actual promise reaction (see step's outcomeAwait case), so
// this body goroutine never itself touches promise/event-loop state.
type coroutineIO struct {
	c *coroutine
}

func (io *coroutineIO) Yield(v *value.Value) *value.Value {
	io.c.outCh <- outcome{kind: outcomeYield, value: v}
	resume := <-io.c.resumeCh
	switch resume.kind {
	case resumeReturn:
		panic(genReturn{value: resume.value})
	case resumeThrow:
		panic(genThrow{err: resume.err})
	default:
		return resume.value
	}
}

func (io *coroutineIO) Await(p *value.Value) (*value.Value, error) {
	io.c.outCh <- outcome{kind: outcomeAwait, value: p}
	resume := <-io.c.resumeCh
	switch resume.kind {
	case resumeReturn:
		panic(genReturn{value: resume.value})
	case resumeThrow:
		panic(genThrow{err: resume.err})
	default:
		if resume.err != nil {
			return nil, resume.err
		}
		return resume.value, nil
	}
}

// Start implements the async-generator call side of §4.5/§4.8: allocates a
// fresh async-iterator cell; the coroutine does not run until the first
// Next drains it.
func Start(fn, this *value.Value, args []*value.Value) (*value.Value, error) {
	itVal := value.NewAsyncIterator()
	cell := itVal.AsyncIterator()
	cell.Input = value.UndefinedValue
	cell.Coroutine = &coroutine{
		resumeCh: make(chan resumeMsg),
		outCh:    make(chan outcome),
		body:     fn.Function().Body,
		this:     this,
		args:     args,
	}
	return itVal, nil
}

// resultObj builds the {value, done} pair §4.8 wraps in a promise, the
// same shape pkg/iterator's plain generator result uses.
func resultObj(val *value.Value, done bool) *value.Value {
	obj := value.NewObject(value.NullValue)
	_ = object.SetOwnProperty(obj, "value", val)
	doneVal := value.FalseValue
	if done {
		doneVal = value.TrueValue
	}
	_ = object.SetOwnProperty(obj, "done", doneVal)
	return obj
}

// Next implements §4.8 next(v): if done, returns a pre-resolved
// {undefined, true}. Otherwise enqueues a fresh (promise, v) pair in the
// FIFO and attempts to advance; if the coroutine is already running
// (mid-await, or nested re-entry), the request just waits its turn.
func Next(itVal *value.Value, v *value.Value) *value.Value {
	cell := itVal.AsyncIterator()
	if cell.Done {
		return promise.ResolveValue(resultObj(value.UndefinedValue, true))
	}
	p := promise.New()
	cell.Queue = append(cell.Queue, value.PendingNext{Promise: p, Input: v})
	pump(cell)
	return p
}

// pump resumes the coroutine for the head of the FIFO unless resumption is
// blocked by re-entry or an outstanding await (§4.8 "Resumption is guarded
// by running ... and awaiting").
func pump(cell *value.AsyncIteratorCell) {
	if cell.Running || cell.Awaiting || cell.Done || len(cell.Queue) == 0 {
		return
	}
	co := cell.Coroutine.(*coroutine)
	cell.Running = true
	if !co.started {
		co.start()
	} else {
		co.resumeCh <- resumeMsg{kind: resumeNormal, value: cell.Queue[0].Input}
	}
	step(cell, co)
}

// step receives exactly one outcome from the coroutine and either settles
// the head request and keeps draining (yield/return/throw), or — on await
// — registers a promise reaction and returns without blocking, letting the
// driving goroutine go do other work (run the event loop). The reaction's
// own callbacks, invoked later from inside a microtask, resume the
// coroutine and call step again; that call always happens on whatever
// goroutine is draining the event loop's microtask queue, never on the
// body's own goroutine, preserving the single-live-goroutine invariant
// pkg/promise's advance() established first.
func step(cell *value.AsyncIteratorCell, co *coroutine) {
	out := <-co.outCh
	switch out.kind {
	case outcomeYield:
		cell.Running = false
		head := popQueue(cell)
		promise.Resolve(head.Promise, resultObj(out.value, false))
		pump(cell)
	case outcomeReturn:
		cell.Running = false
		cell.Done = true
		head := popQueue(cell)
		promise.Resolve(head.Promise, resultObj(out.value, true))
		drainRemainingAsDone(cell)
	case outcomeThrow:
		cell.Running = false
		cell.Done = true
		head := popQueue(cell)
		promise.Reject(head.Promise, errorValue(out.err))
		drainRemainingRejected(cell, out.err)
	case outcomeAwait:
		cell.Running = false
		cell.Awaiting = true
		target := out.value
		if !value.IsPromise(target) {
			target = promise.ResolveValue(target)
		}
		promise.AttachReaction(target, value.Reaction{
			Resolve: func(v *value.Value) {
				cell.Awaiting = false
				cell.Running = true
				co.resumeCh <- resumeMsg{kind: resumeAwaitSettled, value: v}
				step(cell, co)
			},
			Reject: func(err error) {
				cell.Awaiting = false
				cell.Running = true
				co.resumeCh <- resumeMsg{kind: resumeAwaitSettled, err: err}
				step(cell, co)
			},
		})
		// the head request (and anything enqueued after it) remains parked
		// until the await settles and a later step() call reaches a
		// yield/return/throw outcome; both guard flags keep pump() from
		// re-entering the coroutine in the meantime.
	}
}

func popQueue(cell *value.AsyncIteratorCell) value.PendingNext {
	head := cell.Queue[0]
	cell.Queue = cell.Queue[1:]
	return head
}

// drainRemainingAsDone fulfills every still-queued request with
// {value: undefined, done: true} once the coroutine has returned (§4.8
// "all remaining queued promises are fulfilled with done: true").
func drainRemainingAsDone(cell *value.AsyncIteratorCell) {
	for _, pending := range cell.Queue {
		promise.Resolve(pending.Promise, resultObj(value.UndefinedValue, true))
	}
	cell.Queue = nil
}

// drainRemainingRejected rejects every still-queued request with the same
// reason once the coroutine has thrown (§4.8 "all remaining queued
// promises are rejected likewise").
func drainRemainingRejected(cell *value.AsyncIteratorCell, err error) {
	reason := errorValue(err)
	for _, pending := range cell.Queue {
		promise.Reject(pending.Promise, reason)
	}
	cell.Queue = nil
}

func errorValue(err error) *value.Value {
	if payload, ok := value.AsThrown(err); ok {
		return payload
	}
	return value.NewErrorObject(value.KindTypeError, err.Error())
}
