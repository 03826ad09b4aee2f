// Package memres implements composable memory resources: swappable
// allocation strategies that can be chained and instrumented.
//
// # Overview
//
// A memory resource hands out byte buffers and takes them back. Strategies
// differ in where the bytes come from and when they are reclaimed:
//
//   - System: the platform default, backed by the Go runtime
//   - Monotonic: a chunked bump allocator; individual frees are no-ops and
//     all memory returns to the upstream resource at once
//   - Pool: fixed size-class free lists with block reuse
//   - Tracking: a transparent wrapper that counts allocations,
//     deallocations, live bytes, and peak bytes
//   - Direct: a plain passthrough to a fixed upstream
//   - Null: always fails; proves no allocation escapes an installed chain
//
// Every strategy except System is constructed with an upstream Resource, so
// strategies nest: a Monotonic resource can draw its chunks from a Pool,
// which draws its blocks from a Tracking wrapper around System. The chain is
// transparent to callers; only the counters differ.
//
// # Basic Usage
//
//	track := memres.NewTracking(memres.System)
//	mono, err := memres.NewMonotonic(track, 0) // default chunk size
//	if err != nil {
//		return err
//	}
//	defer mono.Release() // hand every chunk back to track
//
//	buf, err := mono.Allocate(1024, 8)
//	...
//	fmt.Println(track.Metrics().MaxBytes)
//
// # Process-Wide Default
//
// Code that cannot thread a Resource parameter through can read the
// process-wide handle:
//
//	restore := memres.Install(mono)
//	defer restore()
//	buf, err := memres.Default().Allocate(64, 8)
//
// The handle is plain mutable state with no synchronization. Install the
// resource you want before starting any concurrent work, and release a chain
// only after no further allocation can occur through it.
//
// # Thread Safety
//
// No strategy is safe for concurrent use on its own. Wrap a chain in
// Synchronized for mutex-guarded access:
//
//	shared := memres.NewSynchronized(mono)
//
// # Important Notes
//
//   - Deallocate must receive the exact slice returned by Allocate, with the
//     same alignment; anything else is a programming error and panics
//   - Alignment is a power of two up to MaxAlign (64); every resource
//     over-aligns to MaxAlign, so smaller requests are always satisfied
//   - Values stored in resource memory via the typed helpers must not
//     contain Go pointers; the memory is byte-typed and the garbage
//     collector will not trace pointers placed inside it
//   - Memory handed out by Monotonic is only valid until Reset or Release
package memres
