package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purplert/jsruntime/pkg/runtime"
	"github.com/purplert/jsruntime/pkg/value"
)

func TestDemoNamesSorted(t *testing.T) {
	names := demoNames()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.True(t, names[i-1] < names[i])
	}
}

func TestMicrotaskInterleavingDemoOrdersOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	rt := runtime.Init(nil, &out, &errOut)
	code := runtime.RunContainer(rt, func() (*value.Value, error) {
		return demos["microtask-interleaving"].run(rt)
	})
	assert.Equal(t, 0, code)
	assert.Equal(t, "2\n1\n", out.String())
}

func TestTimerOrderingDemoOrdersOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	rt := runtime.Init(nil, &out, &errOut)
	code := runtime.RunContainer(rt, func() (*value.Value, error) {
		return demos["timer-ordering"].run(rt)
	})
	assert.Equal(t, 0, code)
	assert.Equal(t, "mt\nt0\nt1\n", out.String())
}

func TestProcessExitDemoReturnsItsCode(t *testing.T) {
	var out, errOut bytes.Buffer
	rt := runtime.Init(nil, &out, &errOut)
	code := runtime.RunContainer(rt, func() (*value.Value, error) {
		return demos["process-exit"].run(rt)
	})
	assert.Equal(t, 3, code)
	assert.Empty(t, errOut.String())
}
