package memutils

import "math"

// Statistics are running counters kept by an allocator. They describe how much has been allocated,
// not which allocations are live.
type Statistics struct {
	AllocationCount int
	AllocationBytes int
	// PeakAllocationBytes is the highest value AllocationBytes has reached since the last Clear
	PeakAllocationBytes int
	ReallocationCount   int
	FailureCount        int

	AllocationSizeMin int
	AllocationSizeMax int
}

func (s *Statistics) Clear() {
	s.AllocationCount = 0
	s.AllocationBytes = 0
	s.PeakAllocationBytes = 0
	s.ReallocationCount = 0
	s.FailureCount = 0
	s.AllocationSizeMin = math.MaxInt
	s.AllocationSizeMax = 0
}

func (s *Statistics) AddAllocation(size int) {
	s.AllocationCount++
	s.AllocationBytes += size

	if s.AllocationBytes > s.PeakAllocationBytes {
		s.PeakAllocationBytes = s.AllocationBytes
	}

	if size < s.AllocationSizeMin {
		s.AllocationSizeMin = size
	}

	if size > s.AllocationSizeMax {
		s.AllocationSizeMax = size
	}
}

func (s *Statistics) RemoveAllocation(size int) {
	s.AllocationCount--
	s.AllocationBytes -= size
}

// ResizeAllocation records a successful reallocation from oldSize to newSize
func (s *Statistics) ResizeAllocation(oldSize, newSize int) {
	s.ReallocationCount++
	s.RemoveAllocation(oldSize)
	s.AddAllocation(newSize)
}

func (s *Statistics) AddFailure() {
	s.FailureCount++
}
