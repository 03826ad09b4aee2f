package memres

import "unsafe"

// addressOf returns the base address of b.
func addressOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}

// Typed helpers over the Resource interface. T must not contain Go
// pointers: resource memory is byte-typed, so the garbage collector will
// not trace pointers stored inside it.

// Alloc returns a pointer to a zeroed T stored in r. The pointer is valid
// for as long as the resource's strategy keeps the memory alive. Free it
// with Free on an equal resource.
func Alloc[T any](r Resource) (*T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		panic("memres: cannot allocate zero-size type")
	}
	b, err := r.Allocate(size, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	clear(b)
	return (*T)(unsafe.Pointer(&b[0])), nil
}

// AllocSlice allocates a slice of n elements of type T in r. The elements
// are not initialized; pool reuse in particular hands back dirty memory.
func AllocSlice[T any](r Resource, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		panic("memres: cannot allocate zero-size type")
	}
	b, err := r.Allocate(size*n, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), nil
}

// AllocSliceZeroed is AllocSlice with the memory cleared.
func AllocSliceZeroed[T any](r Resource, n int) ([]T, error) {
	s, err := AllocSlice[T](r, n)
	if err != nil {
		return nil, err
	}
	clear(s)
	return s, nil
}

// Free returns a pointer obtained from Alloc to r.
func Free[T any](r Resource, p *T) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	buf := unsafe.Slice((*byte)(unsafe.Pointer(p)), size)
	r.Deallocate(buf, int(unsafe.Alignof(zero)))
}

// FreeSlice returns a slice obtained from AllocSlice to r. The slice must
// have its original length.
func FreeSlice[T any](r Resource, s []T) {
	if len(s) == 0 {
		return
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), size*len(s))
	r.Deallocate(buf, int(unsafe.Alignof(zero)))
}
