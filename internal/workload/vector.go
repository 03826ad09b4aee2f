// Package workload holds containers and benchmark bodies that perform every
// dynamic allocation through an explicitly passed memory resource. A nil
// resource selects the builtin Go allocator, which serves as the baseline in
// strategy comparisons.
//
// Element types must not contain Go pointers; see the memres package notes.
package workload

import "github.com/pavanmanishd/memres"

// Vector is a growable array whose backing buffer lives in a memory
// resource. Growth doubles the capacity, copies, and frees the old buffer
// through the resource.
type Vector[T any] struct {
	res memres.Resource // nil means builtin Go allocation
	buf []T             // backing storage, len(buf) is the capacity
	n   int
}

// NewVector creates an empty vector allocating through res.
func NewVector[T any](res memres.Resource) *Vector[T] {
	return &Vector[T]{res: res}
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.n }

// At returns the element at index i.
func (v *Vector[T]) At(i int) T {
	if i < 0 || i >= v.n {
		panic("workload: vector index out of range")
	}
	return v.buf[i]
}

// Push appends x, growing the backing buffer if needed.
func (v *Vector[T]) Push(x T) error {
	if v.n == len(v.buf) {
		if err := v.grow(); err != nil {
			return err
		}
	}
	v.buf[v.n] = x
	v.n++
	return nil
}

func (v *Vector[T]) grow() error {
	newCap := 2 * len(v.buf)
	if newCap < 4 {
		newCap = 4
	}
	if v.res == nil {
		nb := make([]T, newCap)
		copy(nb, v.buf[:v.n])
		v.buf = nb
		return nil
	}
	nb, err := memres.AllocSlice[T](v.res, newCap)
	if err != nil {
		return err
	}
	copy(nb, v.buf[:v.n])
	if v.buf != nil {
		memres.FreeSlice(v.res, v.buf)
	}
	v.buf = nb
	return nil
}

// Release frees the backing buffer through the resource. The vector is
// empty but reusable afterwards.
func (v *Vector[T]) Release() {
	if v.res != nil && v.buf != nil {
		memres.FreeSlice(v.res, v.buf)
	}
	v.buf = nil
	v.n = 0
}
