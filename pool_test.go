package memres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPoolConfig() PoolConfig {
	return PoolConfig{Classes: []SizeClass{{Size: 16}, {Size: 32}, {Size: 64}}}
}

func TestPoolRoundsUpToClass(t *testing.T) {
	track := NewTracking(System)
	p, err := NewPool(track, testPoolConfig())
	require.NoError(t, err)

	buf, err := p.Allocate(8, 8)
	require.NoError(t, err)
	assert.Len(t, buf, 8, "caller sees the requested size, not the class size")

	// The upstream saw a block of the class size.
	assert.Equal(t, int64(16), track.LiveBytes())
}

func TestPoolReuseReturnsSameBlock(t *testing.T) {
	p, err := NewPool(System, testPoolConfig())
	require.NoError(t, err)

	b1, err := p.Allocate(8, 8)
	require.NoError(t, err)
	addr := addressOf(b1)
	p.Deallocate(b1, 8)

	// Any request that rounds to the same class pops the freed block.
	b2, err := p.Allocate(16, 8)
	require.NoError(t, err)
	assert.Equal(t, addr, addressOf(b2), "freed block must be reused first")

	// A different class does not touch it.
	b3, err := p.Allocate(20, 8)
	require.NoError(t, err)
	assert.NotEqual(t, addr, addressOf(b3))
}

func TestPoolHitMissAccounting(t *testing.T) {
	p, err := NewPool(System, testPoolConfig())
	require.NoError(t, err)

	b, _ := p.Allocate(8, 8)  // miss: fresh block from upstream
	p.Deallocate(b, 8)
	p.Allocate(8, 8) // hit: reuse

	m := p.Metrics()
	require.Len(t, m.Classes, 3)
	assert.Equal(t, int64(1), m.Classes[0].Misses)
	assert.Equal(t, int64(1), m.Classes[0].Hits)
	assert.Equal(t, 0, m.Classes[0].FreeBlocks)
}

func TestPoolOversizedFallsThrough(t *testing.T) {
	track := NewTracking(System)
	p, err := NewPool(track, testPoolConfig())
	require.NoError(t, err)

	buf, err := p.Allocate(100, 8)
	require.NoError(t, err)
	assert.Len(t, buf, 100)
	assert.Equal(t, int64(100), track.LiveBytes(), "oversized requests go straight upstream")

	p.Deallocate(buf, 8)
	assert.Equal(t, int64(0), track.LiveBytes(), "oversized buffers are not pooled")

	for _, cls := range p.Metrics().Classes {
		assert.Zero(t, cls.FreeBlocks)
	}
}

func TestPoolPrealloc(t *testing.T) {
	track := NewTracking(System)
	cfg := PoolConfig{Classes: []SizeClass{
		{Size: 16, Prealloc: 100},
		{Size: 32, Prealloc: 50},
		{Size: 64, Prealloc: 25},
	}}
	p, err := NewPool(track, cfg)
	require.NoError(t, err)

	assert.Equal(t, int64(175), track.NumAllocs())

	m := p.Metrics()
	assert.Equal(t, 100, m.Classes[0].FreeBlocks)
	assert.Equal(t, 50, m.Classes[1].FreeBlocks)
	assert.Equal(t, 25, m.Classes[2].FreeBlocks)

	// Preallocated blocks serve requests without touching upstream.
	_, err = p.Allocate(8, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(175), track.NumAllocs())
	assert.Equal(t, int64(1), p.Metrics().Classes[0].Hits)
}

func TestPoolPreallocUpstreamFailure(t *testing.T) {
	cfg := PoolConfig{Classes: []SizeClass{{Size: 16, Prealloc: 1}}}
	_, err := NewPool(Null, cfg)
	require.ErrorIs(t, err, ErrAllocationFailed)
}

func TestPoolConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  PoolConfig
	}{
		{"no classes", PoolConfig{}},
		{"zero size class", PoolConfig{Classes: []SizeClass{{Size: 0}}}},
		{"negative size class", PoolConfig{Classes: []SizeClass{{Size: -8}}}},
		{"descending sizes", PoolConfig{Classes: []SizeClass{{Size: 32}, {Size: 16}}}},
		{"duplicate sizes", PoolConfig{Classes: []SizeClass{{Size: 16}, {Size: 16}}}},
		{"negative prealloc", PoolConfig{Classes: []SizeClass{{Size: 16, Prealloc: -1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() {
				NewPool(System, tt.cfg)
			})
		})
	}
}

func TestPoolRelease(t *testing.T) {
	track := NewTracking(System)
	p, err := NewPool(track, testPoolConfig())
	require.NoError(t, err)

	b1, _ := p.Allocate(8, 8)
	b2, _ := p.Allocate(30, 8)
	p.Deallocate(b1, 8)
	p.Deallocate(b2, 8)

	p.Release()
	assert.Equal(t, int64(0), track.LiveBytes(), "release drains every free list upstream")

	assert.Panics(t, func() {
		p.Allocate(8, 8)
	})
}

func TestPoolIsEqualIdentity(t *testing.T) {
	a, err := NewPool(System, testPoolConfig())
	require.NoError(t, err)
	b, err := NewPool(System, testPoolConfig())
	require.NoError(t, err)

	assert.True(t, a.IsEqual(a))
	assert.False(t, a.IsEqual(b))
}

func TestPoolDefaultConfig(t *testing.T) {
	cfg := DefaultPoolConfig()
	require.NotEmpty(t, cfg.Classes)
	assert.Equal(t, 16, cfg.Classes[0].Size)
	assert.Equal(t, 4096, cfg.Classes[len(cfg.Classes)-1].Size)

	p, err := NewPool(System, cfg)
	require.NoError(t, err)
	buf, err := p.Allocate(1000, 8)
	require.NoError(t, err)
	assert.Len(t, buf, 1000)
}
