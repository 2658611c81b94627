// Package builtins wires the global object's behavioral surface (§6 "Built-in
// catalog"): console, timers, process, Math, Symbol, and the Object/Array/
// Error/Promise/Function constructors. None of this has a direct teacher
// analogue (purple_go has no host-object surface at all — its "native
// handler" dispatch in pkg/eval/eval.go's with-handlers/get-meta is the
// closest precedent: a name resolved against a small fixed table of Go
// functions, surfacing ast.NewError("unknown handler: ...") for anything
// missing). Every builtin here follows that same "native function value
// backed by a Go closure" shape, via pkg/value.NewNativeFunction.
package builtins

import (
	"fmt"
	"io"
	"strings"

	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

// NewConsole builds the console object (§6 "console with log, warn, error,
// time, timeEnd"). out is the stream log (and timeEnd's report) writes to
// and errOut the stream warn and error write to, letting cmd/purplert and
// tests redirect program output without
// touching rtlog (console output is the embedded program's own observable
// behavior, §8's concrete scenarios assert on it directly — it is not a
// host diagnostic, so it does not go through the internal/rtlog logger).
func NewConsole(out, errOut io.Writer) *value.Value {
	console := value.NewObject(value.NullValue)
	timers := make(map[string]int64)

	logFn := func(w io.Writer) value.NativeFn {
		return func(this *value.Value, args []*value.Value) (*value.Value, error) {
			fmt.Fprintln(w, formatArgs(args))
			return value.UndefinedValue, nil
		}
	}

	_ = object.SetOwnProperty(console, "log", value.NewNativeFunction("log", logFn(out)))
	_ = object.SetOwnProperty(console, "warn", value.NewNativeFunction("warn", logFn(errOut)))
	_ = object.SetOwnProperty(console, "error", value.NewNativeFunction("error", logFn(errOut)))

	_ = object.SetOwnProperty(console, "time", value.NewNativeFunction("time", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		label := consoleLabel(args)
		timers[label] = nowMillis()
		return value.UndefinedValue, nil
	}))
	_ = object.SetOwnProperty(console, "timeEnd", value.NewNativeFunction("timeEnd", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		label := consoleLabel(args)
		start, ok := timers[label]
		if !ok {
			fmt.Fprintf(errOut, "Timer '%s' does not exist\n", label)
			return value.UndefinedValue, nil
		}
		delete(timers, label)
		fmt.Fprintf(out, "%s: %dms\n", label, nowMillis()-start)
		return value.UndefinedValue, nil
	}))

	return console
}

func consoleLabel(args []*value.Value) string {
	if len(args) == 0 {
		return "default"
	}
	return args[0].ToString()
}

// formatArgs renders a console call's arguments the way a JS console joins
// them: space-separated ToString conversions.
func formatArgs(args []*value.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.ToString()
	}
	return strings.Join(parts, " ")
}
