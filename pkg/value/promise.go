package value

// PromiseStatus is the three-state settlement machine (§3 "Promise cell",
// §4.7).
type PromiseStatus uint8

const (
	Pending PromiseStatus = iota
	Fulfilled
	Rejected
)

func (s PromiseStatus) String() string {
	switch s {
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Reaction is a fulfillment or rejection callback attached to a pending
// promise, scheduled as a microtask on settlement (§3 "two
// fulfillment/rejection reaction vectors", GLOSSARY "Reaction").
type Reaction struct {
	OnFulfilled *Value // callable or nil (forward value)
	OnRejected  *Value // callable or nil (forward reason)
	Resolve     func(*Value)
	Reject      func(error)
}

// PromiseCell is the state machine storage (§3 "Promise cell").
type PromiseCell struct {
	cellHeader
	OwnShape  *ObjectCell
	Status    PromiseStatus
	Result    *Value // resolution value or rejection reason
	Reactions []Reaction
	handled   bool
}

func NewPromiseCell() *PromiseCell {
	return &PromiseCell{
		cellHeader: cellHeader{tag: TPromise, refs: 1},
		OwnShape:   NewObjectCell(NullValue),
		Status:     Pending,
	}
}

func NewPendingPromise() *Value {
	return &Value{Tag: TPromise, prom: NewPromiseCell()}
}

func (v *Value) Promise() *PromiseCell { return v.prom }
