package rowpattern

// ArrayView is an immutable, zero-copy window over the first Len() elements
// of an IntList's backing buffer.
//
// A view does not own the buffer it reads from. It stays valid for as long
// as the producing IntList (or a handle sharing its buffer) is alive, which
// the single-threaded matcher guarantees by consuming views synchronously,
// before the next mutation of the producing list.
type ArrayView struct {
	values []int
}

// EmptyArrayView is the canonical zero-length view, returned whenever a key
// has no entry.
var EmptyArrayView = ArrayView{}

// Len returns the number of elements visible through the view.
func (v ArrayView) Len() int {
	return len(v.values)
}

// Get returns the i-th element of the view.
//
// Panics if i is out of range [0, Len()).
func (v ArrayView) Get(i int) int {
	return v.values[i]
}
