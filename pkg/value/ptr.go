package value

import "unsafe"

// ptrValue extracts the raw address of a pointer for the NaN-boxing probe
// in ProbeNaNBoxing. This is the only unsafe use in the package and exists
// purely to inspect address width, never to store or alias a pointer as
// data.
func ptrValue(p *int) unsafe.Pointer {
	return unsafe.Pointer(p)
}
