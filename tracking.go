package memres

// Tracking wraps exactly one upstream resource and counts traffic through
// it: allocations, deallocations, live bytes, and the high-water mark.
// Every request is forwarded unchanged, so wrapping a strategy in Tracking
// never alters the addresses or outcomes the strategy would have produced
// on its own.
//
// Tracking does not own its upstream and performs no locking.
type Tracking struct {
	upstream  Resource
	allocs    int64
	deallocs  int64
	liveBytes int64
	maxBytes  int64
}

// NewTracking creates a tracking wrapper around upstream. A nil upstream
// means System. Counters start at zero.
func NewTracking(upstream Resource) *Tracking {
	if upstream == nil {
		upstream = System
	}
	return &Tracking{upstream: upstream}
}

// Allocate forwards to upstream and, on success, records the allocation.
// Failed requests leave the counters untouched so that live bytes stay
// conserved.
func (t *Tracking) Allocate(size, align int) ([]byte, error) {
	checkRequest(size, align)
	buf, err := t.upstream.Allocate(size, align)
	if err != nil {
		return nil, err
	}
	t.allocs++
	t.liveBytes += int64(size)
	if t.liveBytes > t.maxBytes {
		t.maxBytes = t.liveBytes
	}
	return buf, nil
}

// Deallocate records the return of buf and forwards it to upstream. A live
// byte total going negative means the caller returned memory it never got
// from this instance.
func (t *Tracking) Deallocate(buf []byte, align int) {
	t.deallocs++
	t.liveBytes -= int64(len(buf))
	if t.liveBytes < 0 {
		panic("memres: tracking live bytes went negative (buffer not allocated here)")
	}
	t.upstream.Deallocate(buf, align)
}

// IsEqual is instance identity. Counters are per-instance, so a buffer
// allocated through one Tracking wrapper must be returned through the same
// wrapper even if another wraps the same upstream.
func (t *Tracking) IsEqual(other Resource) bool {
	o, ok := other.(*Tracking)
	return ok && o == t
}

// NumAllocs returns the number of successful allocations so far.
func (t *Tracking) NumAllocs() int64 { return t.allocs }

// NumDeallocs returns the number of deallocations so far.
func (t *Tracking) NumDeallocs() int64 { return t.deallocs }

// LiveBytes returns the total size of currently outstanding buffers.
func (t *Tracking) LiveBytes() int64 { return t.liveBytes }

// MaxBytes returns the highest live byte total ever observed. It never
// decreases.
func (t *Tracking) MaxBytes() int64 { return t.maxBytes }
