package memres

import "github.com/cockroachdb/errors"

// MaxAlign is the strongest alignment any resource guarantees. Every
// resource over-aligns to this boundary, so any requested alignment up to
// MaxAlign is satisfied without per-strategy bookkeeping.
const MaxAlign = 64

// ErrAllocationFailed is the sentinel for an upstream resource that could
// not satisfy a request. Strategies propagate it unchanged: no retries, no
// silent fallback to a different resource.
var ErrAllocationFailed = errors.New("memres: allocation failed")

// Resource is the primitive allocator contract. Implementations hand out
// byte buffers of exactly the requested size, aligned to at least the
// requested power-of-two alignment.
//
// Deallocate must receive the exact slice a prior Allocate on an equal
// resource returned (same base pointer, same length) together with the same
// alignment. Violating that is a programming error, not a recoverable
// condition; implementations panic where they can detect it.
//
// Resources are not safe for concurrent use unless wrapped in Synchronized.
type Resource interface {
	// Allocate returns a buffer of exactly size bytes (size > 0) aligned to
	// align (a power of two <= MaxAlign). Fails only if the upstream
	// resource fails; the returned error wraps ErrAllocationFailed.
	Allocate(size, align int) ([]byte, error)

	// Deallocate returns buf to the resource. Depending on the strategy
	// this may be a no-op (Monotonic, System) or make the memory reusable
	// (Pool).
	Deallocate(buf []byte, align int)

	// IsEqual reports whether memory allocated from this resource may be
	// deallocated through other, and vice versa.
	IsEqual(other Resource) bool
}

// checkRequest validates an Allocate request. Bad arguments are caller bugs,
// so this panics rather than returning an error.
func checkRequest(size, align int) {
	if size <= 0 {
		panic("memres: allocation size must be positive")
	}
	if align <= 0 || align&(align-1) != 0 {
		panic("memres: alignment must be a power of two")
	}
	if align > MaxAlign {
		panic("memres: alignment exceeds MaxAlign")
	}
}

// alignUp rounds n up to the next multiple of align (a power of two).
func alignUp(n, align int) int {
	mask := align - 1
	return (n + mask) &^ mask
}
