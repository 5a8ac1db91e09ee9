package hospital

import "sync/atomic"

// IDAllocator issues the identifiers shared by every patient and staff member
// of a hospital. The first call to Next returns 1.
type IDAllocator struct {
	last atomic.Int64
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns the next identifier in the sequence.
func (a *IDAllocator) Next() int {
	return int(a.last.Add(1))
}
