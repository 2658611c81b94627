package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purplert/jsruntime/pkg/function"
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

func TestErrorCtorSetsNameMessageStack(t *testing.T) {
	ctor := NewErrorCtor(value.KindTypeError)
	err, errv := function.Construct(ctor, []*value.Value{value.NewString("bad value")})
	require.NoError(t, errv)

	name, _ := object.GetProperty(err, "name")
	msg, _ := object.GetProperty(err, "message")
	assert.Equal(t, "TypeError", name.ToString())
	assert.Equal(t, "bad value", msg.ToString())
}

func TestErrorCtorToStringComposesNameAndMessage(t *testing.T) {
	ctor := NewErrorCtor(value.KindRangeError)
	errObj, err := function.Construct(ctor, []*value.Value{value.NewString("too big")})
	require.NoError(t, err)

	toStringFn, err := object.GetProperty(errObj, "toString")
	require.NoError(t, err)
	result, err := function.Call(toStringFn, errObj, nil)
	require.NoError(t, err)
	assert.Equal(t, "RangeError: too big", result.ToString())
}
