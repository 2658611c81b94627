package value

// IteratorCell backs a generator-produced iterator (§3 "Iterator cell",
// §4.6). The coroutine itself is driven by pkg/iterator; this struct only
// holds the state observable from outside the coroutine (current/input
// values, done flag); return/throw injection goes straight through the
// coroutine's resume channel rather than a polled field here.
type IteratorCell struct {
	cellHeader
	OwnShape  *ObjectCell
	Coroutine interface{} // *iterator.Coroutine, opaque here to avoid an import cycle
	Done      bool
	Current   *Value
	Input     *Value
}

func NewIteratorCell() *IteratorCell {
	return &IteratorCell{
		cellHeader: cellHeader{tag: TIterator, refs: 1},
		OwnShape:   NewObjectCell(NullValue),
	}
}

func NewIterator() *Value {
	return &Value{Tag: TIterator, iter: NewIteratorCell()}
}

func (v *Value) Iterator() *IteratorCell { return v.iter }

// AsyncIteratorCell backs an async generator's iterator (§3 "Async-iterator
// cell", §4.8).
type AsyncIteratorCell struct {
	cellHeader
	OwnShape  *ObjectCell
	Coroutine interface{} // *iterator.Coroutine
	Done      bool
	Awaiting  bool
	Running   bool
	Input     *Value
	Queue     []PendingNext
}

// PendingNext is one queued (promise, input) pair produced by a next(v)
// call that has not yet been settled (§3, §4.8).
type PendingNext struct {
	Promise *Value // a TPromise value
	Input   *Value
}

func NewAsyncIteratorCell() *AsyncIteratorCell {
	return &AsyncIteratorCell{
		cellHeader: cellHeader{tag: TAsyncIterator, refs: 1},
		OwnShape:   NewObjectCell(NullValue),
	}
}

func NewAsyncIterator() *Value {
	return &Value{Tag: TAsyncIterator, aiter: NewAsyncIteratorCell()}
}

func (v *Value) AsyncIterator() *AsyncIteratorCell { return v.aiter }
