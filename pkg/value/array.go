package value

// MaxArrayIndex is the largest valid array index (2^32 - 2); 2^32-1 is
// reserved and is a normal string key, never an index (§3 "Array cell",
// §8 "2^32 - 1 as a string key is a normal string key, not an array
// index").
const MaxArrayIndex = uint32(1<<32 - 2)

// DenseGrowthThreshold bounds how far past the current dense tail a write
// will still extend Dense rather than spilling into Sparse (§4.4 "within a
// fixed growth threshold, e.g. 1024").
const DenseGrowthThreshold = 1024

// ArrayCell is the storage for an array (§3 "Array cell").
type ArrayCell struct {
	cellHeader
	Proto       *Value
	Length      uint32
	Dense       []*Value          // index i holds Uninitialized for a hole
	Sparse      map[uint32]*Value // indices beyond the dense growth threshold
	StringProps map[string]*Value // non-index string-keyed properties
}

func NewArrayCell(proto *Value) *ArrayCell {
	return &ArrayCell{
		cellHeader: cellHeader{tag: TArray, refs: 1},
		Proto:      proto,
	}
}

func NewArray(proto *Value) *Value {
	return &Value{Tag: TArray, arr: NewArrayCell(proto)}
}

func (v *Value) Array() *ArrayCell { return v.arr }

// CanonicalIndex reports whether key is the canonical decimal
// representation of a valid 32-bit array index (§3, §4.4). "007" or "-1" or
// "4294967295" (2^32-1) are not canonical indices.
func CanonicalIndex(key string) (uint32, bool) {
	if key == "" {
		return 0, false
	}
	if key == "0" {
		return 0, true
	}
	if key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	var n uint64
	for _, c := range key {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint64(c-'0')
		if n > uint64(MaxArrayIndex) {
			return 0, false
		}
	}
	return uint32(n), true
}
