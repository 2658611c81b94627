package builtins

import (
	"os"
	"runtime"

	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

// ExitRequest is panicked by process.exit to unwind out of the running
// program back to the embedding main, mirroring how process.exit in a real
// host terminates before any further script code runs (§6 "process.exit").
type ExitRequest struct{ Code int }

// NewProcess builds the process object (§6 "process.argv, process.env,
// process.platform, process.exit"). argv is the CLI's own os.Args (or a
// caller-supplied substitute for embedding contexts that are not a CLI).
func NewProcess(argv []string) *value.Value {
	proc := value.NewObject(value.NullValue)

	argvArr := value.NewArray(value.NullValue)
	for i, a := range argv {
		_ = arraySet(argvArr, i, value.NewString(a))
	}
	_ = object.SetOwnProperty(proc, "argv", argvArr)

	env := value.NewObject(value.NullValue)
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				_ = object.SetOwnProperty(env, kv[:i], value.NewString(kv[i+1:]))
				break
			}
		}
	}
	_ = object.SetOwnProperty(proc, "env", env)

	_ = object.SetOwnProperty(proc, "platform", value.NewString(runtime.GOOS))

	_ = object.SetOwnProperty(proc, "exit", value.NewNativeFunction("exit", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		code := 0
		if len(args) > 0 && value.IsNumber(args[0]) {
			code = int(args[0].Num())
		}
		panic(ExitRequest{Code: code})
	}))

	return proc
}
