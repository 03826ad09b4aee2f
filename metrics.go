package memres

// TrackingMetrics is a snapshot of a Tracking resource's counters.
type TrackingMetrics struct {
	NumAllocs   int64 // successful allocations
	NumDeallocs int64 // deallocations
	LiveBytes   int64 // bytes currently outstanding
	MaxBytes    int64 // high-water mark of LiveBytes
}

// Metrics returns a snapshot of the tracking counters.
func (t *Tracking) Metrics() TrackingMetrics {
	return TrackingMetrics{
		NumAllocs:   t.allocs,
		NumDeallocs: t.deallocs,
		LiveBytes:   t.liveBytes,
		MaxBytes:    t.maxBytes,
	}
}

// SizeInUse returns the number of bytes the cursors have passed over,
// including internal fragmentation due to alignment.
func (m *Monotonic) SizeInUse() int {
	sum := 0
	for _, c := range m.chunks {
		sum += c.offset
	}
	return sum
}

// NumChunks returns the number of chunks currently drawn from upstream.
func (m *Monotonic) NumChunks() int {
	return len(m.chunks)
}

// Capacity returns the total capacity (in bytes) of all chunks.
func (m *Monotonic) Capacity() int {
	sum := 0
	for _, c := range m.chunks {
		sum += len(c.buf)
	}
	return sum
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to
// 1.0). Returns 0.0 if the resource has no capacity.
func (m *Monotonic) Utilization() float64 {
	capacity := m.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(m.SizeInUse()) / float64(capacity)
}

// ChunkSize returns the configured minimum chunk size.
func (m *Monotonic) ChunkSize() int {
	return m.chunkSize
}

// MonotonicMetrics contains statistical information about a Monotonic
// resource.
type MonotonicMetrics struct {
	SizeInUse   int     // bytes currently allocated
	Capacity    int     // total capacity in bytes
	NumChunks   int     // number of chunks
	ChunkSize   int     // configured minimum chunk size
	Utilization float64 // ratio of used to total capacity (0.0-1.0)
}

// Metrics returns a snapshot of the resource's statistics.
func (m *Monotonic) Metrics() MonotonicMetrics {
	return MonotonicMetrics{
		SizeInUse:   m.SizeInUse(),
		Capacity:    m.Capacity(),
		NumChunks:   m.NumChunks(),
		ChunkSize:   m.ChunkSize(),
		Utilization: m.Utilization(),
	}
}

// PoolClassMetrics describes one size class of a Pool.
type PoolClassMetrics struct {
	Size       int   // block size of the class
	FreeBlocks int   // blocks sitting on the free list
	Hits       int64 // allocations served from the free list
	Misses     int64 // allocations that drew a new block from upstream
}

// PoolMetrics is a per-class snapshot of a Pool's statistics.
type PoolMetrics struct {
	Classes []PoolClassMetrics
}

// Metrics returns a snapshot of the pool's per-class statistics.
func (p *Pool) Metrics() PoolMetrics {
	out := PoolMetrics{Classes: make([]PoolClassMetrics, 0, len(p.classes))}
	for i := range p.classes {
		cls := &p.classes[i]
		out.Classes = append(out.Classes, PoolClassMetrics{
			Size:       cls.size,
			FreeBlocks: len(cls.free),
			Hits:       cls.hits,
			Misses:     cls.misses,
		})
	}
	return out
}
