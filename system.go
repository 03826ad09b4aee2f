package memres

import "unsafe"

// System is the platform default resource. Allocation goes through the Go
// runtime; Deallocate is a no-op because the garbage collector reclaims the
// buffer once nothing references it. System never fails.
var System Resource = systemResource{}

type systemResource struct{}

func (systemResource) Allocate(size, align int) ([]byte, error) {
	checkRequest(size, align)
	// Over-allocate and shift so the returned base is MaxAlign-aligned
	// regardless of where the runtime placed the buffer.
	buf := make([]byte, size+MaxAlign)
	addr := int(uintptr(unsafe.Pointer(&buf[0])))
	shift := alignUp(addr, MaxAlign) - addr
	return buf[shift : shift+size : shift+size], nil
}

func (systemResource) Deallocate(buf []byte, align int) {}

// IsEqual reports true for any System resource: all of them delegate to the
// same runtime, so cross-deallocation is always safe.
func (systemResource) IsEqual(other Resource) bool {
	_, ok := other.(systemResource)
	return ok
}
