package memres

// DefaultChunkSize is the default chunk size for new Monotonic resources
// (64 KiB).
const DefaultChunkSize = 1 << 16

// chunk is a single buffer drawn from the upstream resource, with the bump
// cursor tracked as an index into it.
type chunk struct {
	buf    []byte // upstream-allocated backing memory
	offset int    // allocation cursor within buf
}

// Monotonic is a chunked bump allocator over an upstream resource. Allocate
// advances a cursor through the current chunk; Deallocate is a no-op.
// Memory goes back to the upstream only when Release is called, all chunks
// at once. Typical usage: build a Monotonic per workload run, allocate many
// temporaries, then Release (or Reset to reuse the chunks).
type Monotonic struct {
	upstream  Resource
	chunks    []chunk
	chunkSize int
	current   *chunk
}

// NewMonotonic creates a Monotonic drawing chunks of at least chunkSize
// bytes from upstream. A nil upstream means System; chunkSize <= 0 means
// DefaultChunkSize. The first chunk is allocated eagerly, so the only
// failure mode is an upstream failure.
func NewMonotonic(upstream Resource, chunkSize int) (*Monotonic, error) {
	if upstream == nil {
		upstream = System
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	m := &Monotonic{upstream: upstream, chunkSize: chunkSize}
	if err := m.grow(chunkSize); err != nil {
		return nil, err
	}
	return m, nil
}

// Allocate bumps the cursor within the current chunk, rounding it forward
// for alignment. If the request does not fit, a fresh chunk sized
// max(size, chunkSize) is drawn from upstream.
func (m *Monotonic) Allocate(size, align int) ([]byte, error) {
	checkRequest(size, align)

	// Fast path: the request fits the current chunk. Chunk bases are
	// MaxAlign-aligned, so aligning the index aligns the address.
	if c := m.current; c != nil {
		off := alignUp(c.offset, align)
		if off+size <= len(c.buf) {
			c.offset = off + size
			return c.buf[off : off+size : off+size], nil
		}
	}
	return m.allocateSlow(size)
}

// allocateSlow draws a new chunk and serves the request from its start.
func (m *Monotonic) allocateSlow(size int) ([]byte, error) {
	m.panicIfReleased()
	if err := m.grow(size); err != nil {
		return nil, err
	}
	c := m.current
	c.offset = size
	return c.buf[0:size:size], nil
}

// Deallocate is a no-op: bytes handed out are never reused until Reset or
// Release.
func (m *Monotonic) Deallocate(buf []byte, align int) {}

// IsEqual is instance identity.
func (m *Monotonic) IsEqual(other Resource) bool {
	o, ok := other.(*Monotonic)
	return ok && o == m
}

// Reset rewinds every cursor to zero but keeps the chunks, invalidating all
// outstanding buffers while making their memory reusable. O(number of
// chunks).
func (m *Monotonic) Reset() {
	m.panicIfReleased()
	for i := range m.chunks {
		m.chunks[i].offset = 0
	}
	m.current = &m.chunks[0]
}

// Release returns every chunk to the upstream resource and makes the
// Monotonic unusable. Any subsequent allocation panics.
func (m *Monotonic) Release() {
	for i := range m.chunks {
		m.upstream.Deallocate(m.chunks[i].buf, MaxAlign)
	}
	m.chunks = nil
	m.current = nil
}

// grow appends a chunk of at least min bytes drawn from upstream.
func (m *Monotonic) grow(min int) error {
	size := m.chunkSize
	if min > size {
		size = min
	}
	buf, err := m.upstream.Allocate(size, MaxAlign)
	if err != nil {
		return err
	}
	m.chunks = append(m.chunks, chunk{buf: buf})
	m.current = &m.chunks[len(m.chunks)-1]
	return nil
}

func (m *Monotonic) panicIfReleased() {
	if m.chunks == nil {
		panic("memres: monotonic resource used after Release")
	}
}
