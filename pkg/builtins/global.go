package builtins

import (
	"io"

	"github.com/purplert/jsruntime/pkg/eventloop"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

// Globals holds the bindings translated code resolves as free identifiers
// (§6 "External interfaces"), built once per embedding (§9 "Init/Shutdown
// construct and tear down exactly this").
type Globals struct {
	Object *value.Value
}

// New assembles the global object for one runtime instance: console, the
// timer functions, process, Math, the Object/Array/Error-family/Promise/
// Function constructors, and Symbol (§6). loop is the instance's event loop
// (§4.9) that setTimeout/setInterval and every promise reaction schedule
// onto; out/errOut back console.log/warn/error output.
func New(loop *eventloop.Loop, argv []string, out, errOut io.Writer) *Globals {
	g := value.NewObject(value.NullValue)
	set := func(name string, v *value.Value) {
		_ = object.SetOwnProperty(g, name, v)
	}

	set("console", NewConsole(out, errOut))
	set("process", NewProcess(argv))
	set("Math", NewMath())
	set("Object", NewObjectCtor())
	set("Array", NewArrayCtor())
	set("Function", NewFunctionCtor())
	set("Promise", NewPromiseCtor())
	set("Symbol", NewSymbolObj())
	set("Error", NewErrorCtor(value.KindError))
	set("TypeError", NewErrorCtor(value.KindTypeError))
	set("RangeError", NewErrorCtor(value.KindRangeError))
	set("ReferenceError", NewErrorCtor(value.KindReferenceError))
	set("SyntaxError", NewErrorCtor(value.KindSyntaxError))
	set("AggregateError", NewErrorCtor(value.KindAggregateError))
	set("globalThis", g)

	InstallTimers(loop, set)

	return &Globals{Object: g}
}
