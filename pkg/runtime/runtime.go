// Package runtime assembles one embeddable runtime instance (§9 "Init/
// Shutdown construct and tear down exactly this") out of the lower
// components: an event loop, a global object built by pkg/builtins, and the
// promise machinery wired onto that loop. It also exposes the method
// dispatch generated code needs for member-call expressions (`recv.name(...)`)
// whose receiver may be a promise or a function value carrying no
// shape-based own-property table (§3), consulting the tag-based dispatchers
// pkg/builtins exposes for exactly that case.
//
// Grounded on the teacher's top-level `main.go` orchestration (parse, then
// compile-or-interpret, then run to completion) for the shape of a single
// entry point wiring subsystems together, and on `pkg/eval/green.go`'s
// scheduler (`Run executes all green threads until none remain`) for
// "run the loop to completion" as the terminal step of program execution.
package runtime

import (
	"fmt"
	"io"

	"github.com/purplert/jsruntime/internal/rtlog"
	"github.com/purplert/jsruntime/pkg/builtins"
	"github.com/purplert/jsruntime/pkg/eventloop"
	"github.com/purplert/jsruntime/pkg/function"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/promise"
	"github.com/purplert/jsruntime/pkg/value"
)

// Runtime is one embedding's full state: a loop, and the global object built
// on top of it (§5 "the global object is a process-wide mutable map owned
// by the runtime"). A process may hold several Runtimes (each
// single-threaded internally, §5), but pkg/promise's loop is process-wide
// (see Init), so only one may run at a time; cmd/purplert's fanout command
// serializes its Runtimes with a mutex.
type Runtime struct {
	Loop   *eventloop.Loop
	Global *value.Value
}

// Init builds a fresh runtime: a new event loop, pkg/promise wired onto it
// (pkg/promise.SetLoop is process-wide — only one Runtime may be actively
// settling promises at a time per process, §5's "scheduler singleton"), and
// a freshly assembled global object (§6 "Built-in catalog").
func Init(argv []string, out, errOut io.Writer) *Runtime {
	loop := eventloop.New()
	promise.SetLoop(loop)
	g := builtins.New(loop, argv, out, errOut)
	rtlog.Log().Debug().Msg("runtime initialized")
	return &Runtime{Loop: loop, Global: g.Object}
}

// Shutdown releases a runtime's resources. Nothing is persisted between
// processes (§6 "Persisted state: None"); this exists so an embedder that
// runs several translation units in sequence has a place to mark the
// boundary and flush diagnostics.
func (rt *Runtime) Shutdown() {
	rtlog.Log().Debug().Msg("runtime shutdown")
}

// CallMethod resolves and invokes recv.name(args...) (§4.5, §4.7's
// `.then`/`.catch`/`.finally`, §8's `f.call(t, a, b) ≡ f(a, b)`,
// `hasOwnProperty`). Promise, function, and plain-object/array receivers
// are checked first against the tag-based dispatchers pkg/builtins
// exposes, since none of PromiseCell, an ordinary function value's
// prototype chain, or a shared Array/Object.prototype carries these
// methods as ordinary own/inherited properties (see DESIGN.md); anything
// else falls through to the standard property-resolution + call path.
func CallMethod(recv *value.Value, name string, args []*value.Value) (*value.Value, error) {
	if value.IsPromise(recv) {
		if result, handled, err := builtins.CallPromiseMethod(recv, name, args); handled {
			return result, err
		}
	}
	if value.IsCallable(recv) {
		if result, handled, err := builtins.CallFunctionMethod(recv, name, args); handled {
			return result, err
		}
	}
	if result, handled, err := builtins.CallObjectMethod(recv, name, args); handled {
		return result, err
	}
	callee, err := object.GetProperty(recv, name)
	if err != nil {
		return nil, err
	}
	if !value.IsCallable(callee) {
		return nil, value.ThrowKind(value.KindTypeError, "%s is not a function", name)
	}
	return function.Call(callee, recv, args)
}

// RunContainer implements the §6 embedding contract: invoke container
// inside a try/catch equivalent, print any escaped exception through
// console.error, run the event loop to completion, and return the process
// exit code (0 on success, 1 if container's panic/error escaped, or the
// code a process.exit call requested).
func RunContainer(rt *Runtime, container func() (*value.Value, error)) (code int) {
	defer func() {
		if r := recover(); r != nil {
			if exitReq, ok := r.(builtins.ExitRequest); ok {
				code = exitReq.Code
				return
			}
			rt.reportEscaped(fmt.Errorf("%v", r))
			code = 1
		}
	}()

	if _, err := container(); err != nil {
		rt.reportEscaped(err)
		code = 1
	}
	rt.Loop.Run()
	return code
}

// reportEscaped prints an exception that reached __container__'s catch
// through the global console.error, matching §6 step (ii) exactly. Error-
// shaped payloads print their composed "name: message" (the same string
// value.NewErrorObject and builtins' Error.prototype.toString both produce,
// via the "stack" own property every Error-shaped object carries regardless
// of which path constructed it); anything else prints its plain ToString.
func (rt *Runtime) reportEscaped(err error) {
	payload := value.ErrorToValue(err)
	console, cErr := object.GetProperty(rt.Global, "console")
	if cErr != nil {
		rtlog.Log().Error().Err(err).Msg("failed to resolve console for escaped exception")
		return
	}
	errorFn, cErr := object.GetProperty(console, "error")
	if cErr != nil || !value.IsCallable(errorFn) {
		rtlog.Log().Error().Err(err).Msg("console.error is not callable")
		return
	}
	_, _ = function.Call(errorFn, value.UndefinedValue, []*value.Value{displayValue(payload)})
}

func displayValue(payload *value.Value) *value.Value {
	if value.IsObjectKind(payload) {
		if stack, err := object.GetProperty(payload, "stack"); err == nil && value.IsString(stack) {
			return stack
		}
	}
	return payload
}
