// Package sparse provides a sparse set of state ids.
//
// A sparse set supports O(1) insertion and membership testing while keeping a
// dense list of its elements in insertion order. The automaton compiler uses
// it as a breadth-first worklist: appending a state that is already queued is
// a no-op, and iterating the dense list by index visits states in the order
// they were discovered.
package sparse

// SparseSet is a set of uint32 values drawn from [0, capacity).
type SparseSet struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32 // values in insertion order
}

// NewSparseSet creates a new sparse set with the given capacity.
// The capacity is the exclusive upper bound of the values it can hold.
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set and reports whether it was newly added.
// Panics if value >= capacity.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	//nolint:gosec // G115: len(dense) < capacity <= MaxUint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return uint64(idx) < uint64(len(s.dense)) && s.dense[idx] == value
}

// Len returns the number of elements in the set.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// At returns the i-th inserted element.
func (s *SparseSet) At(i int) uint32 {
	return s.dense[i]
}

// Values returns the elements in insertion order.
// The returned slice is valid until the next Insert.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}
