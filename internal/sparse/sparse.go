// Package sparse provides a sparse set data structure for efficient membership testing.
//
// A sparse set supports O(1) insertion, deletion, and membership testing
// while maintaining a dense list of elements for O(n) iteration and O(1)
// clearing. It is used to track which keys of a grow-on-demand key space are
// live, so that bulk operations over a multimap cost O(live keys) instead of
// O(key capacity).
package sparse

// Set is a set of uint32 values that supports O(1) operations.
// It maintains both a sparse array (for membership testing) and a dense
// array (for iteration). The sparse array maps values to indices in the
// dense array.
//
// Unlike a classic fixed-universe sparse set, the universe grows on demand:
// inserting a value beyond the current capacity extends the sparse array
// (doubling, or to exactly value+1 if larger).
type Set struct {
	sparse []uint32 // Maps value -> index in dense
	dense  []uint32 // Contains the actual values
	size   uint32   // Current number of elements
}

// NewSet creates a new sparse set sized for values in [0, capacity).
// The set grows automatically when larger values are inserted.
func NewSet(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
		size:   0,
	}
}

// Insert adds a value to the set, growing the universe if needed.
// Returns true if the value was newly inserted, false if already present.
func (s *Set) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	if value >= uint32(len(s.sparse)) {
		s.grow(value)
	}

	s.dense = append(s.dense, value)
	s.sparse[value] = s.size
	s.size++
	return true
}

// Contains returns true if the value is in the set.
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Remove removes a value from the set.
// Returns true if the value was present, false otherwise.
func (s *Set) Remove(value uint32) bool {
	if !s.Contains(value) {
		return false
	}

	// Move last element into the vacated dense slot (swap and pop).
	idx := s.sparse[value]
	lastValue := s.dense[s.size-1]
	s.dense[idx] = lastValue
	s.sparse[lastValue] = idx

	s.size--
	s.dense = s.dense[:s.size]
	return true
}

// Clear removes all elements from the set in O(1) time.
// The sparse and dense arrays keep their capacity.
func (s *Set) Clear() {
	s.size = 0
	s.dense = s.dense[:0]
}

// Len returns the number of elements in the set.
func (s *Set) Len() int {
	return int(s.size)
}

// IsEmpty returns true if the set contains no elements.
func (s *Set) IsEmpty() bool {
	return s.size == 0
}

// Values returns a slice of all values in the set, in insertion order
// (except where Remove has swapped elements). The returned slice is valid
// until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense[:s.size]
}

// MemoryUsage returns the heap memory usage of the set's arrays in bytes.
func (s *Set) MemoryUsage() int {
	return (len(s.sparse) + cap(s.dense)) * 4
}

// grow extends the sparse array so it can address value, doubling its
// length or growing to exactly value+1, whichever is larger.
func (s *Set) grow(value uint32) {
	newLen := 2 * len(s.sparse)
	if int(value)+1 > newLen {
		newLen = int(value) + 1
	}
	grown := make([]uint32, newLen)
	copy(grown, s.sparse)
	s.sparse = grown
}
