package builtins

import (
	"time"

	"github.com/purplert/jsruntime/pkg/eventloop"
	"github.com/purplert/jsruntime/pkg/function"
	"github.com/purplert/jsruntime/pkg/value"
)

// InstallTimers wires setTimeout/clearTimeout/setInterval/clearInterval
// onto global (§6), each scheduling/cancelling against loop (§4.9). Extra
// arguments past (fn, delay) are forwarded to the callback on each firing,
// matching `setTimeout(fn, delay, ...args)`.
func InstallTimers(loop *eventloop.Loop, set func(name string, v *value.Value)) {
	set("setTimeout", value.NewNativeFunction("setTimeout", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		fn, delay, extra, err := timerArgs(args)
		if err != nil {
			return nil, err
		}
		id := loop.SetTimeout(delay, func() {
			_, _ = function.Call(fn, value.UndefinedValue, extra)
		})
		return value.NewNumber(float64(id)), nil
	}))
	set("clearTimeout", value.NewNativeFunction("clearTimeout", clearTimer(loop)))

	set("setInterval", value.NewNativeFunction("setInterval", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		fn, interval, extra, err := timerArgs(args)
		if err != nil {
			return nil, err
		}
		id := loop.SetInterval(interval, func() {
			_, _ = function.Call(fn, value.UndefinedValue, extra)
		})
		return value.NewNumber(float64(id)), nil
	}))
	set("clearInterval", value.NewNativeFunction("clearInterval", clearTimer(loop)))
}

func clearTimer(loop *eventloop.Loop) value.NativeFn {
	return func(this *value.Value, args []*value.Value) (*value.Value, error) {
		if len(args) == 0 || !value.IsNumber(args[0]) {
			return value.UndefinedValue, nil
		}
		loop.ClearTimer(uint64(args[0].Num()))
		return value.UndefinedValue, nil
	}
}

func timerArgs(args []*value.Value) (fn *value.Value, delay time.Duration, extra []*value.Value, err error) {
	if len(args) == 0 || !value.IsCallable(args[0]) {
		return nil, 0, nil, value.ThrowKind(value.KindTypeError, "timer callback must be a function")
	}
	fn = args[0]
	ms := float64(0)
	if len(args) > 1 && value.IsNumber(args[1]) {
		ms = args[1].Num()
	}
	if len(args) > 2 {
		extra = args[2:]
	}
	return fn, time.Duration(ms * float64(time.Millisecond)), extra, nil
}
