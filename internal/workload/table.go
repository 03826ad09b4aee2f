package workload

import (
	"strconv"

	"github.com/pavanmanishd/memres"
)

// Key is a fixed-width table key. Fixed width keeps the slot array free of
// Go pointers so it can live in resource memory.
type Key [16]byte

// KeyOf formats i as a decimal key.
func KeyOf(i int) Key {
	var k Key
	copy(k[:], strconv.Itoa(i))
	return k
}

const (
	slotEmpty = iota
	slotUsed
)

type slot struct {
	key   Key
	val   int
	state uint8
}

// Table is an open-addressing hash table from Key to int whose slot array
// is allocated through a memory resource. Linear probing, no deletion.
type Table struct {
	res   memres.Resource // nil means builtin Go allocation
	slots []slot
	n     int
}

// NewTable creates an empty table allocating through res.
func NewTable(res memres.Resource) *Table {
	return &Table{res: res}
}

// Len returns the number of stored keys.
func (t *Table) Len() int { return t.n }

// Put stores val under key, replacing any previous value.
func (t *Table) Put(key Key, val int) error {
	// Grow at 3/4 load so probe chains stay short.
	if len(t.slots) == 0 || 4*(t.n+1) > 3*len(t.slots) {
		if err := t.rehash(); err != nil {
			return err
		}
	}
	s := t.lookup(key)
	if s.state == slotEmpty {
		s.state = slotUsed
		s.key = key
		t.n++
	}
	s.val = val
	return nil
}

// Get returns the value stored under key.
func (t *Table) Get(key Key) (int, bool) {
	if len(t.slots) == 0 {
		return 0, false
	}
	s := t.lookup(key)
	if s.state == slotEmpty {
		return 0, false
	}
	return s.val, true
}

// lookup returns the slot holding key, or the empty slot where it would go.
// The load factor cap guarantees an empty slot exists.
func (t *Table) lookup(key Key) *slot {
	mask := len(t.slots) - 1
	i := int(hashKey(key)) & mask
	for {
		s := &t.slots[i]
		if s.state == slotEmpty || s.key == key {
			return s
		}
		i = (i + 1) & mask
	}
}

func (t *Table) rehash() error {
	newCap := 2 * len(t.slots)
	if newCap < 16 {
		newCap = 16
	}
	var ns []slot
	if t.res == nil {
		ns = make([]slot, newCap)
	} else {
		var err error
		ns, err = memres.AllocSliceZeroed[slot](t.res, newCap)
		if err != nil {
			return err
		}
	}
	old := t.slots
	t.slots = ns
	t.n = 0
	for i := range old {
		if old[i].state == slotUsed {
			s := t.lookup(old[i].key)
			*s = old[i]
			t.n++
		}
	}
	if t.res != nil && old != nil {
		memres.FreeSlice(t.res, old)
	}
	return nil
}

// Release frees the slot array through the resource.
func (t *Table) Release() {
	if t.res != nil && t.slots != nil {
		memres.FreeSlice(t.res, t.slots)
	}
	t.slots = nil
	t.n = 0
}

// hashKey is FNV-1a over the fixed-width key.
func hashKey(key Key) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for _, b := range key {
		h ^= uint64(b)
		h *= prime64
	}
	return h
}
