package memres

// Null is a resource that refuses every request. Install it as the process
// default to prove that a workload performs no allocation outside the
// resource it was explicitly handed: any escape surfaces immediately as
// ErrAllocationFailed instead of silently landing on System.
var Null Resource = nullResource{}

type nullResource struct{}

func (nullResource) Allocate(size, align int) ([]byte, error) {
	checkRequest(size, align)
	return nil, ErrAllocationFailed
}

// Deallocate panics: no buffer can ever originate from Null, so receiving
// one is a contract breach by definition.
func (nullResource) Deallocate(buf []byte, align int) {
	panic("memres: deallocate through Null resource")
}

func (nullResource) IsEqual(other Resource) bool {
	_, ok := other.(nullResource)
	return ok
}
