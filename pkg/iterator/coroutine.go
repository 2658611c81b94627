// Package iterator implements the generator coroutine protocol (component
// #6, §4.6): next/return/throw over an iterator cell backed by a generator
// function's body.
//
// The teacher drives its green threads (purple_go/pkg/eval/green.go) with a
// hand-rolled continuation scheduler: a run queue of closures and a
// delimited-control "yield escape" panic/recover pair, because the source
// language there has no native coroutine primitive to lean on. Go does have
// one — a goroutine blocked on a channel receive is a real, pre-emptible
// coroutine — so the same "suspend, hand control back, resume later"
// protocol is built here as a goroutine parked on an unbuffered channel
// instead of a re-entrant closure queue. The handshake (one message out to
// resume, one message back with the outcome) mirrors the teacher's
// send/recv pair on a GreenChannel one-for-one; only the underlying
// primitive changes.
package iterator

import "github.com/purplert/jsruntime/pkg/value"

type outcomeKind uint8

const (
	outcomeYield outcomeKind = iota
	outcomeReturn
	outcomeThrow
)

type outcome struct {
	kind  outcomeKind
	value *value.Value
	err   error
}

type resumeKind uint8

const (
	resumeNormal resumeKind = iota
	resumeReturn
	resumeThrow
)

type resumeMsg struct {
	kind  resumeKind
	value *value.Value
	err   error
}

// genReturn/genThrow are the panic sentinels io.Yield raises to unwind a
// suspended body when the driver requested return()/throw() (§4.6 "The
// coroutine observes the flag at the next suspension point ... and
// unwinds").
type genReturn struct{ value *value.Value }
type genThrow struct{ err error }

// Coroutine is the goroutine-backed engine behind one IteratorCell. It is
// started lazily on the first Next call (§4.6 implicitly: a generator
// function call itself only allocates the iterator; the body does not run
// until the first next()).
type Coroutine struct {
	resumeCh chan resumeMsg
	outCh    chan outcome
	started  bool
	pending  pendingStart
}

func newCoroutine() *Coroutine {
	return &Coroutine{
		resumeCh: make(chan resumeMsg),
		outCh:    make(chan outcome),
	}
}

func (c *Coroutine) start(body value.GeneratorBody, this *value.Value, args []*value.Value) {
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
		body(io)
		c.outCh <- outcome{kind: outcomeReturn, value: value.UndefinedValue}
	}()
}

// coroutineIO implements value.CoroutineIO for a sync generator body.
type coroutineIO struct {
	c *Coroutine
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

// Await is not legal inside a plain (non-async) generator body; reaching it
// is a codegen bug, not a user-triggerable runtime condition (§4.6 covers
// only next/return/throw — await belongs to pkg/asynciter's variant).
func (io *coroutineIO) Await(p *value.Value) (*value.Value, error) {
	panic("iterator: await used inside a non-async generator body")
}
