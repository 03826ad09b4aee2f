package memres

import "sync"

// Synchronized is a mutex-protected wrapper around any Resource. It is the
// external locking required to share a strategy between goroutines; every
// call forwards to the wrapped resource under the lock.
type Synchronized struct {
	mu sync.Mutex
	r  Resource
}

// NewSynchronized wraps r for concurrent use. A nil r means System.
func NewSynchronized(r Resource) *Synchronized {
	if r == nil {
		r = System
	}
	return &Synchronized{r: r}
}

func (s *Synchronized) Allocate(size, align int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Allocate(size, align)
}

func (s *Synchronized) Deallocate(buf []byte, align int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.Deallocate(buf, align)
}

// IsEqual is instance identity: the lock is part of the allocation
// discipline, so going around it through the wrapped resource is not an
// equal path.
func (s *Synchronized) IsEqual(other Resource) bool {
	o, ok := other.(*Synchronized)
	return ok && o == s
}
