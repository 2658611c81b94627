package object

import "github.com/purplert/jsruntime/pkg/value"

// CallHook is set by pkg/function once it exists, letting this package
// invoke getters/setters without importing pkg/function back (pkg/function
// needs OwnPropertyHost/shape helpers from this package for construct, so
// the dependency can only run one way).
var CallHook func(fn, this *value.Value, args []*value.Value) (*value.Value, error)

// Call invokes fn via whatever dispatch pkg/function has registered, or
// fails loudly if nothing has (a programming error: pkg/runtime must wire
// pkg/function before any script runs).
func Call(fn, this *value.Value, args []*value.Value) (*value.Value, error) {
	if CallHook == nil {
		return nil, errNoCallHook
	}
	return CallHook(fn, this, args)
}

var errNoCallHook = &hookError{"object: no call dispatcher registered"}

type hookError struct{ msg string }

func (e *hookError) Error() string { return e.msg }

// toStringHook renders object- and function-kind values (§4.1 to_string).
// It chains onto whatever hook was previously registered (if pkg/arrayobj
// loaded first) so each component only needs to own the tags it introduces.
func toStringHook(v *value.Value) string {
	switch v.Tag {
	case objTag():
		return "[object Object]"
	case fnTag():
		name := v.Function().Name
		return "function " + name + "() { [native code] }"
	default:
		if chained != nil {
			return chained(v)
		}
		return "[object " + v.Tag.String() + "]"
	}
}

// chained holds whatever ToStringHook pkg/value already had installed
// before this package's init ran, so composing packages don't clobber each
// other (registration order between pkg/object, pkg/arrayobj, pkg/iterator,
// etc. is otherwise unspecified).
var chained func(v *value.Value) string

func objTag() value.Tag { return value.TObject }
func fnTag() value.Tag  { return value.TFunction }
