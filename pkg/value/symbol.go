package value

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SymbolCell carries a description and a unique internal string key used as
// the property name when the symbol is used as a key (§3 "Symbol cell").
type SymbolCell struct {
	cellHeader
	Description string
	Key         string
}

// NewSymbol allocates a fresh, globally unique symbol. The internal key is
// derived from a UUID so two symbols with the same description are never
// confused as property-name keys (see SPEC_FULL.md DOMAIN STACK).
func NewSymbol(description string) *Value {
	key := fmt.Sprintf("@@sym:%s:%s", description, uuid.NewString())
	cell := &SymbolCell{cellHeader: cellHeader{tag: TSymbol, refs: 1}, Description: description, Key: key}
	return &Value{Tag: TSymbol, sym: cell}
}

func (v *Value) SymbolCell_() *SymbolCell { return v.sym }

// Well-known symbols (§3 "Well-known symbols are process singletons with
// fixed keys").
var (
	SymbolIterator      = newWellKnown("Symbol.iterator")
	SymbolAsyncIterator = newWellKnown("Symbol.asyncIterator")
	SymbolToStringTag   = newWellKnown("Symbol.toStringTag")
	SymbolToPrimitive   = newWellKnown("Symbol.toPrimitive")
)

func newWellKnown(name string) *Value {
	cell := &SymbolCell{cellHeader: cellHeader{tag: TSymbol, refs: 1}, Description: name, Key: "@@wellknown:" + name}
	return &Value{Tag: TSymbol, sym: cell}
}

// symbolRegistry backs Symbol.for/Symbol.keyFor (§3 "a global registry
// maps user-provided strings to shared symbols").
type symbolRegistry struct {
	mu      sync.Mutex
	byKey   map[string]*Value
	keyByID map[*SymbolCell]string
}

var registry = &symbolRegistry{
	byKey:   make(map[string]*Value),
	keyByID: make(map[*SymbolCell]string),
}

// SymbolFor returns the shared symbol registered under key, creating it on
// first use.
func SymbolFor(key string) *Value {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if sym, ok := registry.byKey[key]; ok {
		return sym
	}
	sym := NewSymbol(key)
	registry.byKey[key] = sym
	registry.keyByID[sym.sym] = key
	return sym
}

// SymbolKeyFor returns the registry key for sym, if it was obtained via
// SymbolFor.
func SymbolKeyFor(sym *Value) (string, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	k, ok := registry.keyByID[sym.sym]
	return k, ok
}
