package value

// FunctionVariant selects the callable dispatch kind (§4.5, §9 "Dynamic
// dispatch to callables").
type FunctionVariant uint8

const (
	VariantPlain FunctionVariant = iota
	VariantGenerator
	VariantAsync
	VariantAsyncGenerator
)

// NativeFn is a function implemented in Go (a built-in) rather than
// translated JS. It receives the receiver (`this`) and the argument span.
type NativeFn func(this *Value, args []*Value) (*Value, error)

// FunctionCell is a callable cell (§3 "Function cell").
type FunctionCell struct {
	cellHeader
	Variant    FunctionVariant
	Name       string
	IsCtor     bool     // flags it as a class constructor
	Proto      *Value   // proto back-pointer for inheritance (the `__proto__`-style chain)
	OwnShape   *ObjectCell // own-property table, reuses the object layout (§4.5)
	Prototype  *Value   // the function's own `.prototype` object, wired at construction
	Native     NativeFn // non-nil for built-ins
	Body       GeneratorBody
}

// GeneratorBody is the coroutine entry point for generator/async-generator
// functions and the plain body for async functions; it is invoked on a
// dedicated goroutine by pkg/iterator / pkg/asynciter / pkg/promise.
// Yield/Await/Return are supplied by the driving coroutine runner.
type GeneratorBody func(io CoroutineIO)

// CoroutineIO is implemented by the coroutine driver (pkg/iterator,
// pkg/asynciter) and passed into a GeneratorBody so translated code can
// yield/await without the value package depending on those packages.
type CoroutineIO interface {
	Yield(v *Value) *Value // suspend, resume with the next input value
	Await(p *Value) (*Value, error)
}

func NewFunctionCell(name string, variant FunctionVariant) *FunctionCell {
	return &FunctionCell{
		cellHeader: cellHeader{tag: TFunction, refs: 1},
		Variant:    variant,
		Name:       name,
		OwnShape:   NewObjectCell(NullValue),
	}
}

func NewFunction(name string, variant FunctionVariant) *Value {
	return &Value{Tag: TFunction, fn: NewFunctionCell(name, variant)}
}

func NewNativeFunction(name string, fn NativeFn) *Value {
	cell := NewFunctionCell(name, VariantPlain)
	cell.Native = fn
	return &Value{Tag: TFunction, fn: cell}
}

func (v *Value) Function() *FunctionCell { return v.fn }
