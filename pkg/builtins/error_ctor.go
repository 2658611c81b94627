package builtins

import (
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

// NewErrorCtor builds the Error constructor (§6 "Standard Error instances
// expose message, name, stack, and a toString composing them"). This is the
// user-facing constructor translated `new Error("msg")`/`throw new TypeError(...)`
// expressions call; the runtime's own internally-raised errors go through
// value.NewErrorObject directly (§7), not through this constructor.
func NewErrorCtor(kind value.ErrorKind) *value.Value {
	ctor := newNativeCtor(string(kind), func(this *value.Value, args []*value.Value) (*value.Value, error) {
		msg := ""
		if len(args) > 0 {
			msg = args[0].ToString()
		}
		receiver := this
		if !value.IsObjectKind(receiver) {
			receiver = value.NewObject(value.NullValue)
		}
		_ = object.SetOwnProperty(receiver, "name", value.NewString(string(kind)))
		_ = object.SetOwnProperty(receiver, "message", value.NewString(msg))
		_ = object.SetOwnProperty(receiver, "stack", value.NewString(string(kind)+": "+msg))
		return receiver, nil
	})
	toStringFn := value.NewNativeFunction("toString", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		name, _ := object.GetProperty(this, "name")
		msg, _ := object.GetProperty(this, "message")
		return value.NewString(name.ToString() + ": " + msg.ToString()), nil
	})
	_ = object.DefineDataProperty(ctor.Function().Prototype, "toString", toStringFn, true, false, true)
	return ctor
}
