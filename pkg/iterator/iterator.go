package iterator

import (
	"github.com/purplert/jsruntime/pkg/function"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

func init() {
	function.GeneratorStart = Start
}

// Start implements the generator-call side of §4.5: calling a generator
// function allocates a fresh iterator cell wrapping a new coroutine frame;
// the body itself does not run until the first Next.
func Start(fn, this *value.Value, args []*value.Value) (*value.Value, error) {
	itVal := value.NewIterator()
	cell := itVal.Iterator()
	cell.Input = value.UndefinedValue

	co := newCoroutine()
	co.pending = pendingStart{body: fn.Function().Body, this: this, args: args}
	cell.Coroutine = co

	return itVal, nil
}

// result builds the {value, done} pair §4.6 describes, as a plain object
// (pkg/object handles the property writes so the result is a real
// inspectable value rather than a Go struct).
func result(val *value.Value, done bool) *value.Value {
	obj := value.NewObject(value.NullValue)
	_ = object.SetOwnProperty(obj, "value", val)
	doneVal := value.FalseValue
	if done {
		doneVal = value.TrueValue
	}
	_ = object.SetOwnProperty(obj, "done", doneVal)
	return obj
}

// Next implements §4.6 next(v): if already done, returns {undefined, true}.
// Otherwise resumes the coroutine (starting it lazily on the first call)
// with v as the resumed value and builds the outcome pair.
func Next(itVal *value.Value, v *value.Value) (*value.Value, error) {
	cell := itVal.Iterator()
	if cell.Done {
		return result(value.UndefinedValue, true), nil
	}
	co := cell.Coroutine.(*Coroutine)
	if !co.started {
		co.start(co.pending.body, co.pending.this, co.pending.args)
	} else {
		co.resumeCh <- resumeMsg{kind: resumeNormal, value: v}
	}
	return drain(cell, co)
}

// Return implements §4.6 return(v): marks a pending return, feeds v in, and
// lets the coroutine unwind at its next suspension point (or immediately,
// if it has not started yet).
func Return(itVal *value.Value, v *value.Value) (*value.Value, error) {
	cell := itVal.Iterator()
	if cell.Done {
		return result(v, true), nil
	}
	co := cell.Coroutine.(*Coroutine)
	if !co.started {
		cell.Done = true
		return result(v, true), nil
	}
	co.resumeCh <- resumeMsg{kind: resumeReturn, value: v}
	return drain(cell, co)
}

// Throw implements §4.6 throw(e): injects an exception at the coroutine's
// next resumption; if uncaught, it propagates out of Throw as an error.
func Throw(itVal *value.Value, thrown *value.Value) (*value.Value, error) {
	cell := itVal.Iterator()
	if cell.Done {
		return nil, value.Throw(thrown)
	}
	co := cell.Coroutine.(*Coroutine)
	if !co.started {
		cell.Done = true
		return nil, value.Throw(thrown)
	}
	co.resumeCh <- resumeMsg{kind: resumeThrow, err: value.Throw(thrown)}
	return drain(cell, co)
}

// drain waits for the coroutine's next outcome and translates it into the
// §4.6 result shape, marking the cell done on return/throw.
func drain(cell *value.IteratorCell, co *Coroutine) (*value.Value, error) {
	out := <-co.outCh
	switch out.kind {
	case outcomeYield:
		cell.Current = out.value
		return result(out.value, false), nil
	case outcomeReturn:
		cell.Done = true
		return result(out.value, true), nil
	case outcomeThrow:
		cell.Done = true
		return nil, out.err
	default:
		cell.Done = true
		return result(value.UndefinedValue, true), nil
	}
}

type pendingStart struct {
	body value.GeneratorBody
	this *value.Value
	args []*value.Value
}
