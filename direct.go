package memres

// Direct forwards every request to a fixed upstream resource without any
// buffering. It exists so a chain can be capped or split at a known point
// without changing allocation behavior.
type Direct struct {
	upstream Resource
}

// NewDirect creates a passthrough over upstream. A nil upstream means
// System.
func NewDirect(upstream Resource) *Direct {
	if upstream == nil {
		upstream = System
	}
	return &Direct{upstream: upstream}
}

func (d *Direct) Allocate(size, align int) ([]byte, error) {
	return d.upstream.Allocate(size, align)
}

func (d *Direct) Deallocate(buf []byte, align int) {
	d.upstream.Deallocate(buf, align)
}

// IsEqual is instance identity.
func (d *Direct) IsEqual(other Resource) bool {
	o, ok := other.(*Direct)
	return ok && o == d
}
