// Error taxonomy and propagation (§7). Exceptions are carried as Go errors
// whose payload is a runtime Value ("any value is legal as a throw
// target", §7 "User-thrown values") so they unwind through ordinary Go
// control flow (unwinding through generated code and the runtime
// uniformly, §7 "Propagation"). github.com/pkg/errors wraps the payload
// with a stack trace for the embedder's own diagnostics; the wrapped value
// itself, not the Go stack, is what the embedded program observes.
package value

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind names the built-in error constructors §7 enumerates.
type ErrorKind string

const (
	KindError          ErrorKind = "Error"
	KindReferenceError ErrorKind = "ReferenceError"
	KindTypeError      ErrorKind = "TypeError"
	KindRangeError     ErrorKind = "RangeError"
	KindSyntaxError    ErrorKind = "SyntaxError"
	KindAggregateError ErrorKind = "AggregateError"
)

// Thrown wraps a runtime value as a Go error so it can propagate through
// normal (*Value, error) returns.
type Thrown struct {
	Payload *Value
}

func (t *Thrown) Error() string {
	return t.Payload.ToString()
}

// Throw wraps v as a Go error carrying the payload, with a stack attached
// via errors.WithStack for host-side diagnostics.
func Throw(v *Value) error {
	return errors.WithStack(&Thrown{Payload: v})
}

// ThrowKind builds and throws a new Error-object value of the given kind
// with the given message (§7). The constructed object exposes message,
// name, and a stack string the way real Error instances do (§6 "Standard
// Error instances expose message, name, stack").
func ThrowKind(kind ErrorKind, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return Throw(NewErrorObject(kind, msg))
}

// NewErrorObject builds an Error-shaped object value: a plain object whose
// own properties are name/message/stack, mirroring what pkg/builtins wires
// as Error.prototype (kept here so the error taxonomy does not require
// importing pkg/builtins).
func NewErrorObject(kind ErrorKind, message string) *Value {
	cell := NewObjectCell(NullValue)
	shapeAppend(cell, "name", NewString(string(kind)))
	shapeAppend(cell, "message", NewString(message))
	shapeAppend(cell, "stack", NewString(string(kind)+": "+message))
	return &Value{Tag: TObject, obj: cell}
}

// shapeAppend performs the minimal property-append sequence (shape
// transition + slot append) needed to build a built-in error object without
// depending on pkg/object (which in turn depends on this package).
func shapeAppend(cell *ObjectCell, name string, val *Value) {
	cell.Shape = cell.Shape.Transition(name)
	cell.Slots = append(cell.Slots, val)
}

// AsThrown extracts the payload value from err if it (or something it
// wraps) is a *Thrown.
func AsThrown(err error) (*Value, bool) {
	var t *Thrown
	if errors.As(err, &t) {
		return t.Payload, true
	}
	return nil, false
}

// ErrorToValue recovers the thrown payload from err if there is one, or
// wraps a plain Go error as a TypeError value otherwise — the conversion
// every site that must turn a (*Value, error) failure into a rejection
// reason or a caught value performs (§7 "An exception that reaches a
// promise reaction becomes the new promise's rejection").
func ErrorToValue(err error) *Value {
	if payload, ok := AsThrown(err); ok {
		return payload
	}
	return NewErrorObject(KindTypeError, err.Error())
}
