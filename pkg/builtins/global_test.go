package builtins

import (
	"bytes"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/purplert/jsruntime/pkg/eventloop"
	"github.com/purplert/jsruntime/pkg/object"
)

func TestNewAssemblesExpectedGlobalBindings(t *testing.T) {
	loop := eventloop.New()
	var out, errOut bytes.Buffer
	g := New(loop, []string{"purplert", "script.js"}, &out, &errOut)

	want := []string{
		"AggregateError", "Array", "Error", "Function", "Math", "Object",
		"Promise", "RangeError", "ReferenceError", "Symbol", "SyntaxError",
		"TypeError", "clearInterval", "clearTimeout", "console",
		"globalThis", "process", "setInterval", "setTimeout",
	}

	got := object.Keys(g.Object)
	sort.Strings(got)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("global bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestNewGlobalBindingsAreNotUndefined(t *testing.T) {
	loop := eventloop.New()
	var out, errOut bytes.Buffer
	g := New(loop, []string{"purplert", "script.js"}, &out, &errOut)

	for _, name := range object.Keys(g.Object) {
		v, err := object.GetProperty(g.Object, name)
		require.NoError(t, err, name)
		require.NotNil(t, v, name)
	}
}
