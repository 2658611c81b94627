package main

import (
	"sort"

	"github.com/purplert/jsruntime/pkg/function"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/promise"
	"github.com/purplert/jsruntime/pkg/runtime"
	"github.com/purplert/jsruntime/pkg/value"
)

// demo is one hand-built __container__ (§6 "Generated code invokes the
// runtime through a header-only API"): since the source-to-native code
// generator is an external collaborator this module does not implement
// (SPEC_FULL.md §1), these demos are what a translation unit's emitted Go
// would look like for the fixed scenarios §8 names, built directly against
// the runtime's Value/object/function API instead of against generated
// code.
type demo struct {
	name        string
	description string
	run         func(rt *runtime.Runtime) (*value.Value, error)
}

var demos = map[string]demo{
	"microtask-interleaving": {
		name:        "microtask-interleaving",
		description: "Promise.resolve(1).then(v => log(v)); log(2);  => 2, 1",
		run: func(rt *runtime.Runtime) (*value.Value, error) {
			logFn, err := consoleLog(rt)
			if err != nil {
				return nil, err
			}
			p := promise.ResolveValue(value.NewNumber(1))
			promise.Then(p, value.NewNativeFunction("", func(this *value.Value, args []*value.Value) (*value.Value, error) {
				return function.Call(logFn, value.UndefinedValue, args)
			}), nil)
			return function.Call(logFn, value.UndefinedValue, []*value.Value{value.NewNumber(2)})
		},
	},
	"timer-ordering": {
		name:        "timer-ordering",
		description: "setTimeout(t1, 10); setTimeout(t0, 0); Promise.resolve().then(mt);  => mt, t0, t1",
		run: func(rt *runtime.Runtime) (*value.Value, error) {
			logFn, err := consoleLog(rt)
			if err != nil {
				return nil, err
			}
			setTimeout, err := object.GetProperty(rt.Global, "setTimeout")
			if err != nil {
				return nil, err
			}
			logStr := func(s string) *value.Value {
				return value.NewNativeFunction("", func(this *value.Value, args []*value.Value) (*value.Value, error) {
					return function.Call(logFn, value.UndefinedValue, []*value.Value{value.NewString(s)})
				})
			}
			if _, err := function.Call(setTimeout, value.UndefinedValue, []*value.Value{logStr("t1"), value.NewNumber(10)}); err != nil {
				return nil, err
			}
			if _, err := function.Call(setTimeout, value.UndefinedValue, []*value.Value{logStr("t0"), value.NewNumber(0)}); err != nil {
				return nil, err
			}
			promise.Then(promise.ResolveValue(value.UndefinedValue), logStr("mt"), nil)
			return value.UndefinedValue, nil
		},
	},
	"process-exit": {
		name:        "process-exit",
		description: "process.exit(3) unwinds straight to the exit code",
		run: func(rt *runtime.Runtime) (*value.Value, error) {
			proc, err := object.GetProperty(rt.Global, "process")
			if err != nil {
				return nil, err
			}
			exitFn, err := object.GetProperty(proc, "exit")
			if err != nil {
				return nil, err
			}
			return function.Call(exitFn, value.UndefinedValue, []*value.Value{value.NewNumber(3)})
		},
	},
}

func consoleLog(rt *runtime.Runtime) (*value.Value, error) {
	console, err := object.GetProperty(rt.Global, "console")
	if err != nil {
		return nil, err
	}
	return object.GetProperty(console, "log")
}

func demoNames() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
