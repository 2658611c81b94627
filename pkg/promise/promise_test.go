package promise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purplert/jsruntime/pkg/eventloop"
	"github.com/purplert/jsruntime/pkg/value"
)

func newLoop(t *testing.T) *eventloop.Loop {
	t.Helper()
	l := eventloop.New()
	SetLoop(l)
	return l
}

func TestResolveSettlesFulfilled(t *testing.T) {
	newLoop(t)
	p := New()
	Resolve(p, value.NewNumber(42))
	assert.Equal(t, value.Fulfilled, p.Promise().Status)
	assert.Equal(t, float64(42), p.Promise().Result.Num())
}

func TestResolveIsNoOpOnceSettled(t *testing.T) {
	newLoop(t)
	p := New()
	Resolve(p, value.NewNumber(1))
	Resolve(p, value.NewNumber(2))
	assert.Equal(t, float64(1), p.Promise().Result.Num())
}

func TestSelfResolutionRejectsWithTypeError(t *testing.T) {
	newLoop(t)
	p := New()
	Resolve(p, p)
	require.Equal(t, value.Rejected, p.Promise().Status)
	assert.Equal(t, "TypeError", p.Promise().Result.Object().Slots[0].ToString())
}

func TestThenRunsAsMicrotask(t *testing.T) {
	l := newLoop(t)
	p := New()
	Resolve(p, value.NewNumber(1))

	var got *value.Value
	onF := value.NewNativeFunction("", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		got = args[0]
		return value.UndefinedValue, nil
	})
	Then(p, onF, nil)
	assert.Nil(t, got, "handler must not run synchronously even on an already-settled promise")
	l.RunOnce()
	require.NotNil(t, got)
	assert.Equal(t, float64(1), got.Num())
}

func TestThenForwardsWhenHandlerMissing(t *testing.T) {
	l := newLoop(t)
	p := New()
	Resolve(p, value.NewString("x"))
	chained := Then(p, nil, nil)
	l.RunOnce()
	assert.Equal(t, value.Fulfilled, chained.Promise().Status)
	assert.Equal(t, "x", chained.Promise().Result.ToString())
}

func TestCatchHandlesRejection(t *testing.T) {
	l := newLoop(t)
	p := New()
	Reject(p, value.NewString("bad"))

	var got *value.Value
	onR := value.NewNativeFunction("", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		got = args[0]
		return value.NewString("handled"), nil
	})
	chained := Catch(p, onR)
	l.RunOnce()
	require.NotNil(t, got)
	assert.Equal(t, "bad", got.ToString())
	assert.Equal(t, value.Fulfilled, chained.Promise().Status)
	assert.Equal(t, "handled", chained.Promise().Result.ToString())
}

func TestFinallyRunsOnBothPaths(t *testing.T) {
	l := newLoop(t)
	calls := 0
	h := value.NewNativeFunction("", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		calls++
		return value.UndefinedValue, nil
	})

	fulfilled := New()
	Resolve(fulfilled, value.NewNumber(7))
	chained1 := Finally(fulfilled, h)
	l.RunOnce()
	assert.Equal(t, float64(7), chained1.Promise().Result.Num())

	rejected := New()
	Reject(rejected, value.NewString("oops"))
	chained2 := Finally(rejected, h)
	l.RunOnce()
	assert.Equal(t, value.Rejected, chained2.Promise().Status)
	assert.Equal(t, 2, calls)
}

func TestAllResolvesInOrder(t *testing.T) {
	l := newLoop(t)
	a, b, c := New(), New(), New()
	result := All([]*value.Value{a, b, c})
	Resolve(b, value.NewNumber(2))
	Resolve(c, value.NewNumber(3))
	Resolve(a, value.NewNumber(1))
	l.RunOnce()
	require.Equal(t, value.Fulfilled, result.Promise().Status)
	arr := result.Promise().Result.Array()
	assert.Equal(t, []float64{1, 2, 3}, []float64{arr.Dense[0].Num(), arr.Dense[1].Num(), arr.Dense[2].Num()})
}

func TestAllRejectsOnFirstRejection(t *testing.T) {
	l := newLoop(t)
	a, b := New(), New()
	result := All([]*value.Value{a, b})
	Reject(b, value.NewString("fail"))
	l.RunOnce()
	assert.Equal(t, value.Rejected, result.Promise().Status)
}

func TestAllSettledCollectsBoth(t *testing.T) {
	l := newLoop(t)
	a, b := New(), New()
	result := AllSettled([]*value.Value{a, b})
	Resolve(a, value.NewNumber(1))
	Reject(b, value.NewString("bad"))
	l.RunOnce()
	require.Equal(t, value.Fulfilled, result.Promise().Status)
	arr := result.Promise().Result.Array()
	require.Len(t, arr.Dense, 2)
}

func TestRaceAdoptsFirstSettlement(t *testing.T) {
	l := newLoop(t)
	a, b := New(), New()
	result := Race([]*value.Value{a, b})
	Resolve(b, value.NewString("fast"))
	Resolve(a, value.NewString("slow"))
	l.RunOnce()
	assert.Equal(t, "fast", result.Promise().Result.ToString())
}

func TestAnyRejectsWithAggregateErrorWhenAllReject(t *testing.T) {
	l := newLoop(t)
	a, b := New(), New()
	result := Any([]*value.Value{a, b})
	Reject(a, value.NewString("e1"))
	Reject(b, value.NewString("e2"))
	l.RunOnce()
	require.Equal(t, value.Rejected, result.Promise().Status)
	errObj := result.Promise().Result
	assert.Equal(t, "AggregateError", errObj.Object().Slots[0].ToString())
}

func TestAsyncFunctionAwaitsThenResolves(t *testing.T) {
	l := newLoop(t)
	inner := New()
	fn := value.NewFunction("f", value.VariantAsync)
	fn.Function().Body = func(io value.CoroutineIO) {
		v, err := io.Await(inner)
		if err != nil {
			panic(asyncReturn{value: value.NewString("error")})
		}
		panic(asyncReturn{value: value.NewNumber(v.Num() + 1)})
	}

	p, err := startAsync(fn, value.UndefinedValue, nil)
	require.NoError(t, err)

	Resolve(inner, value.NewNumber(41))
	for i := 0; i < 5 && p.Promise().Status == value.Pending; i++ {
		l.RunOnce()
	}
	require.Equal(t, value.Fulfilled, p.Promise().Status)
	assert.Equal(t, float64(42), p.Promise().Result.Num())
}
