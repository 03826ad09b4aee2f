package memres

// current is the process-wide resource slot. Plain mutable state: the
// harness is single-threaded by design and the slot carries no atomicity
// guarantee. A driver must install the resource it wants before spawning
// concurrent work and must not mutate the slot while any goroutine may read
// it.
var current Resource = System

// Default returns the presently installed process-wide resource. If none
// was ever installed it returns System. Never fails.
func Default() Resource {
	if current == nil {
		return System
	}
	return current
}

// SetDefault replaces the process-wide resource. A nil argument restores
// System. The slot holds a non-owning reference: the caller must keep the
// installed chain alive until no further allocation can occur through the
// handle.
func SetDefault(r Resource) {
	if r == nil {
		r = System
	}
	current = r
}

// Install sets r as the process-wide resource and returns a function that
// restores the previous one. The install/run/restore discipline keeps chain
// lifetimes scoped:
//
//	restore := memres.Install(chain)
//	defer restore()
func Install(r Resource) (restore func()) {
	prev := current
	SetDefault(r)
	return func() {
		current = prev
	}
}
