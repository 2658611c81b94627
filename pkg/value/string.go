package value

import (
	"golang.org/x/text/encoding/unicode"
)

// utf16Encoding produces the UTF-16 code-unit sequence backing every String
// cell (§3 "String cell ... sequence of Unicode code units"). JS strings are
// UTF-16, not UTF-8 runes, so code-unit indexing and length must not go
// through Go's native rune-oriented string type; golang.org/x/text's
// unicode.UTF16 codec gives an exact, ECMA-262-compatible code-unit view
// (see SPEC_FULL.md DOMAIN STACK).
var utf16Encoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// StringCell is an immutable sequence of UTF-16 code units (§3). Length is
// O(1) because Units is materialized once at construction.
type StringCell struct {
	cellHeader
	Units []uint16
}

// NewString constructs a String value from a Go string, re-encoding it to
// UTF-16 code units.
func NewString(s string) *Value {
	encoded, err := utf16Encoding.NewEncoder().String(s)
	units := make([]uint16, 0, len(s))
	if err == nil {
		for i := 0; i+1 < len(encoded); i += 2 {
			units = append(units, uint16(encoded[i])|uint16(encoded[i+1])<<8)
		}
	} else {
		// Malformed input (lone surrogate, invalid UTF-8): fall back to a
		// direct UTF-16 transcode so construction never fails outright.
		for _, r := range s {
			if r > 0xFFFF {
				r -= 0x10000
				units = append(units, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
			} else {
				units = append(units, uint16(r))
			}
		}
	}
	cell := &StringCell{cellHeader: cellHeader{tag: TString, refs: 1}, Units: units}
	return &Value{Tag: TString, str: cell}
}

// NewStringFromUnits builds a String value directly from UTF-16 code units,
// used by string-slicing and concatenation where units are already known.
func NewStringFromUnits(units []uint16) *Value {
	cell := &StringCell{cellHeader: cellHeader{tag: TString, refs: 1}, Units: units}
	return &Value{Tag: TString, str: cell}
}

// StringCell returns the underlying StringCell; callers must check Tag == TString.
func (v *Value) StringCell() *StringCell { return v.str }

// Len returns the code-unit length (§3 "length is O(1)").
func (c *StringCell) Len() int { return len(c.Units) }

// Go renders the code units back to a native Go string, recombining
// surrogate pairs and leaving lone surrogates as the Unicode replacement
// character so the conversion always succeeds.
func (c *StringCell) Go() string {
	out := make([]rune, 0, len(c.Units))
	for i := 0; i < len(c.Units); i++ {
		u := c.Units[i]
		if u >= 0xD800 && u <= 0xDBFF && i+1 < len(c.Units) && c.Units[i+1] >= 0xDC00 && c.Units[i+1] <= 0xDFFF {
			hi, lo := rune(u), rune(c.Units[i+1])
			out = append(out, 0x10000+(hi-0xD800)<<10+(lo-0xDC00))
			i++
			continue
		}
		if u >= 0xD800 && u <= 0xDFFF {
			out = append(out, 0xFFFD)
			continue
		}
		out = append(out, rune(u))
	}
	return string(out)
}

// At returns the single-code-unit string at index i, per §3's "canonical
// element-access" requirement; ok is false when i is out of range.
func (c *StringCell) At(i int) (*Value, bool) {
	if i < 0 || i >= len(c.Units) {
		return nil, false
	}
	return NewStringFromUnits([]uint16{c.Units[i]}), true
}

// Concat returns a new String cell holding the code-unit concatenation of a
// and b (used by the `+` operator's string-concatenation branch, §4.10).
func Concat(a, b *Value) *Value {
	units := make([]uint16, 0, a.str.Len()+b.str.Len())
	units = append(units, a.str.Units...)
	units = append(units, b.str.Units...)
	return NewStringFromUnits(units)
}
