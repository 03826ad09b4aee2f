package memres

import "unsafe"

// SizeClass configures one block size of a Pool. Prealloc blocks are drawn
// from the upstream resource at construction; further blocks are drawn on
// demand.
type SizeClass struct {
	Size     int
	Prealloc int
}

// PoolConfig is the fixed size-class configuration of a Pool. Class sizes
// must be positive and strictly ascending; class granularity is never
// inferred from usage.
type PoolConfig struct {
	Classes []SizeClass
}

// DefaultPoolConfig covers 16 B through 4 KiB in power-of-two classes with
// no preallocation.
func DefaultPoolConfig() PoolConfig {
	var cfg PoolConfig
	for size := 16; size <= 4096; size *= 2 {
		cfg.Classes = append(cfg.Classes, SizeClass{Size: size})
	}
	return cfg
}

type poolClass struct {
	size   int
	free   [][]byte // blocks ready for reuse, LIFO
	hits   int64
	misses int64
}

// Pool serves requests from per-size-class free lists. Allocate rounds the
// request up to the nearest class and pops a free block, drawing a new block
// of the class size from upstream only when the list is empty. Deallocate
// pushes the block back for reuse; there is no merging or coalescing.
// Requests larger than the largest class pass straight through to upstream.
type Pool struct {
	upstream Resource
	classes  []poolClass
}

// NewPool creates a Pool over upstream with the given configuration. A nil
// upstream means System. A malformed configuration (no classes, non-positive
// sizes, sizes out of order, negative prealloc counts) panics: it is a setup
// bug, checked once here. The only error return is an upstream failure while
// preallocating.
func NewPool(upstream Resource, cfg PoolConfig) (*Pool, error) {
	if upstream == nil {
		upstream = System
	}
	if len(cfg.Classes) == 0 {
		panic("memres: pool needs at least one size class")
	}
	p := &Pool{upstream: upstream}
	prev := 0
	for _, sc := range cfg.Classes {
		if sc.Size <= 0 {
			panic("memres: pool size class must be positive")
		}
		if sc.Size <= prev {
			panic("memres: pool size classes must be strictly ascending")
		}
		if sc.Prealloc < 0 {
			panic("memres: pool prealloc count must not be negative")
		}
		prev = sc.Size
		p.classes = append(p.classes, poolClass{size: sc.Size})
	}
	for i, sc := range cfg.Classes {
		cls := &p.classes[i]
		for n := 0; n < sc.Prealloc; n++ {
			blk, err := upstream.Allocate(cls.size, MaxAlign)
			if err != nil {
				p.Release()
				return nil, err
			}
			cls.free = append(cls.free, blk)
		}
	}
	return p, nil
}

// Allocate rounds size up to the nearest class and serves it from that
// class's free list, falling back to upstream for a fresh block on a miss.
// Oversized requests (larger than the largest class) are forwarded to
// upstream directly; that is the documented escape hatch, and such buffers
// are likewise forwarded on Deallocate rather than pooled.
func (p *Pool) Allocate(size, align int) ([]byte, error) {
	checkRequest(size, align)
	p.panicIfReleased()
	cls := p.classFor(size)
	if cls == nil {
		return p.upstream.Allocate(size, align)
	}
	if n := len(cls.free); n > 0 {
		blk := cls.free[n-1]
		cls.free = cls.free[:n-1]
		cls.hits++
		return blk[0:size:size], nil
	}
	blk, err := p.upstream.Allocate(cls.size, MaxAlign)
	if err != nil {
		return nil, err
	}
	cls.misses++
	return blk[0:size:size], nil
}

// Deallocate pushes buf's backing block onto its class free list. The block
// is recovered from the buffer's base pointer and the class size, so the
// caller must pass the exact slice Allocate returned; a length that matches
// no class is a contract breach.
func (p *Pool) Deallocate(buf []byte, align int) {
	p.panicIfReleased()
	cls := p.classFor(len(buf))
	if cls == nil {
		p.upstream.Deallocate(buf, align)
		return
	}
	blk := unsafe.Slice(&buf[0], cls.size)
	cls.free = append(cls.free, blk)
}

// IsEqual is instance identity.
func (p *Pool) IsEqual(other Resource) bool {
	o, ok := other.(*Pool)
	return ok && o == p
}

// Release drains every free list back to the upstream resource and makes
// the Pool unusable. Blocks still held by callers are the callers' contract
// breach; they cannot be returned afterwards.
func (p *Pool) Release() {
	for i := range p.classes {
		cls := &p.classes[i]
		for _, blk := range cls.free {
			p.upstream.Deallocate(blk, MaxAlign)
		}
		cls.free = nil
	}
	p.classes = nil
}

// classFor returns the smallest class that fits size, or nil if size
// exceeds the largest class.
func (p *Pool) classFor(size int) *poolClass {
	for i := range p.classes {
		if size <= p.classes[i].size {
			return &p.classes[i]
		}
	}
	return nil
}

func (p *Pool) panicIfReleased() {
	if p.classes == nil {
		panic("memres: pool resource used after Release")
	}
}
