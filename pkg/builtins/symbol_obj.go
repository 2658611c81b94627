package builtins

import (
	"github.com/purplert/jsruntime/pkg/object"
	"github.com/purplert/jsruntime/pkg/value"
)

// NewSymbolObj builds the global `Symbol` binding: a callable that mints a
// fresh symbol (never a constructor — `new Symbol()` is a TypeError, same as
// real engines), carrying the four well-known symbols this runtime's
// iteration/coercion protocols dispatch on (§3 "Well-known symbols are
// process singletons with fixed keys") plus the for/keyFor registry pair.
func NewSymbolObj() *value.Value {
	fn := value.NewNativeFunction("Symbol", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		desc := ""
		if len(args) > 0 && !value.IsUndefined(args[0]) {
			desc = args[0].ToString()
		}
		return value.NewSymbol(desc), nil
	})

	_ = object.SetOwnProperty(fn, "iterator", value.SymbolIterator)
	_ = object.SetOwnProperty(fn, "asyncIterator", value.SymbolAsyncIterator)
	_ = object.SetOwnProperty(fn, "toStringTag", value.SymbolToStringTag)
	_ = object.SetOwnProperty(fn, "toPrimitive", value.SymbolToPrimitive)

	_ = object.SetOwnProperty(fn, "for", value.NewNativeFunction("for", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		return value.SymbolFor(arg(args, 0).ToString()), nil
	}))
	_ = object.SetOwnProperty(fn, "keyFor", value.NewNativeFunction("keyFor", func(this *value.Value, args []*value.Value) (*value.Value, error) {
		sym := arg(args, 0)
		if sym.Tag != value.TSymbol {
			return nil, value.ThrowKind(value.KindTypeError, "Symbol.keyFor called on a non-symbol")
		}
		if key, ok := value.SymbolKeyFor(sym); ok {
			return value.NewString(key), nil
		}
		return value.UndefinedValue, nil
	}))

	return fn
}
