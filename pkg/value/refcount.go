package value

// Retain increments v's heap cell refcount. Immediates (undefined, null,
// uninitialized, boolean, number) are not refcounted and Retain is a no-op
// for them (§3 "Global constants ... created once and reused").
func Retain(v *Value) {
	if v == nil {
		return
	}
	switch v.Tag {
	case TString:
		v.str.Retain()
	case TObject:
		v.obj.Retain()
	case TArray:
		v.arr.Retain()
	case TFunction:
		v.fn.Retain()
	case TSymbol:
		v.sym.Retain()
	case TIterator:
		v.iter.Retain()
	case TAsyncIterator:
		v.aiter.Retain()
	case TPromise:
		v.prom.Retain()
	case TDataDescriptor:
		v.ddesc.Retain()
	case TAccessorDescriptor:
		v.adesc.Retain()
	}
}

// Release decrements v's heap cell refcount and, if it reaches zero,
// releases every value the cell holds in turn (§3 "Destruction releases
// held values (which decrements their refcounts)"). Reference cycles
// (object <-> object via prototype/constructor back-edges) are tolerated,
// not collected (§9 "Cycles").
func Release(v *Value) {
	if v == nil {
		return
	}
	switch v.Tag {
	case TString:
		v.str.Release()
	case TObject:
		if v.obj.Release() {
			releaseObjectCell(v.obj)
		}
	case TArray:
		if v.arr.Release() {
			releaseArrayCell(v.arr)
		}
	case TFunction:
		if v.fn.Release() {
			releaseFunctionCell(v.fn)
		}
	case TSymbol:
		v.sym.Release()
	case TIterator:
		if v.iter.Release() {
			releaseObjectCell(v.iter.OwnShape)
		}
	case TAsyncIterator:
		if v.aiter.Release() {
			releaseObjectCell(v.aiter.OwnShape)
		}
	case TPromise:
		if v.prom.Release() {
			Release(v.prom.Result)
			releaseObjectCell(v.prom.OwnShape)
		}
	case TDataDescriptor:
		if v.ddesc.Release() {
			Release(v.ddesc.Val)
		}
	case TAccessorDescriptor:
		if v.adesc.Release() {
			Release(v.adesc.Get)
			Release(v.adesc.Set)
		}
	}
}

func releaseObjectCell(c *ObjectCell) {
	Release(c.Proto)
	for _, s := range c.Slots {
		Release(s)
	}
}

func releaseArrayCell(c *ArrayCell) {
	Release(c.Proto)
	for _, d := range c.Dense {
		Release(d)
	}
	for _, s := range c.Sparse {
		Release(s)
	}
	for _, s := range c.StringProps {
		Release(s)
	}
}

func releaseFunctionCell(c *FunctionCell) {
	Release(c.Proto)
	Release(c.Prototype)
	if c.OwnShape != nil {
		releaseObjectCell(c.OwnShape)
	}
}
