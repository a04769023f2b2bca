package rowpattern

import (
	"fmt"
	"unsafe"
)

// refCountedIntArray is the shared backing storage of one or more IntList
// handles. While refs > 1, every holder treats values as read-only; a holder
// may only write after ensureUnique has given it sole ownership.
type refCountedIntArray struct {
	values []int
	size   int
	refs   int
}

// IntList is a compact, growable list of ints optimized for the row pattern
// matcher hot path.
//
// The list employs copy-on-write (COW) with reference counting so that
// logical copies are essentially free until one of the copies is mutated.
// This matters because the matcher forks execution threads (on a split in
// the pattern automaton) potentially once per input row per alternative,
// duplicating thread state each time.
//
// Memory accounting: to avoid double counting shared buffers,
// SizeInBytes includes the backing array only when this handle is the sole
// owner (refs == 1). The instance header is always counted.
//
// Not safe for concurrent use. Instances are confined to a single operator
// execution.
type IntList struct {
	data *refCountedIntArray
}

const (
	bytesPerInt = int64(unsafe.Sizeof(int(0)))
	bytesPerPtr = int64(unsafe.Sizeof(uintptr(0)))

	intListInstanceSize = int64(unsafe.Sizeof(IntList{}) + unsafe.Sizeof(refCountedIntArray{}))
)

// NewIntList creates an empty IntList with the given initial buffer
// capacity. Capacity may be 0.
func NewIntList(capacity int) *IntList {
	return &IntList{
		data: &refCountedIntArray{
			values: make([]int, capacity),
			size:   0,
			refs:   1,
		},
	}
}

// Add appends a value to the end of the list, materializing an independent
// buffer first if storage is shared. Amortized O(1).
func (l *IntList) Add(value int) {
	l.ensureUnique()
	l.ensureCapacity(l.data.size)
	l.data.values[l.data.size] = value
	l.data.size++
}

// Get returns the value at index.
//
// Panics if index is out of range [0, Len()).
func (l *IntList) Get(index int) int {
	if index < 0 || index >= l.data.size {
		panic(fmt.Sprintf("rowpattern: IntList.Get index %d out of range [0, %d)", index, l.data.size))
	}
	return l.data.values[index]
}

// Set writes value at index, materializing first if storage is shared and
// growing the buffer if needed. If index >= Len(), the logical size becomes
// index+1.
//
// Positions in the gap [old Len(), index) are NOT zero-filled: they retain
// whatever the (possibly reused) buffer held at those offsets. Callers must
// not read positions they never wrote.
//
// Panics if index is negative.
func (l *IntList) Set(index, value int) {
	if index < 0 {
		panic(fmt.Sprintf("rowpattern: IntList.Set negative index %d", index))
	}
	l.ensureUnique()
	l.ensureCapacity(index)
	l.data.values[index] = value
	if index+1 > l.data.size {
		l.data.size = index + 1
	}
}

// Len returns the number of elements logically stored in the list.
func (l *IntList) Len() int {
	return l.data.size
}

// Clear resets the logical size to 0, materializing first if storage is
// shared so that clearing one COW sibling never truncates another.
func (l *IntList) Clear() {
	l.ensureUnique()
	l.data.size = 0
}

// Copy returns a logical copy that shares the backing buffer, in O(1).
// The first subsequent write through either handle materializes an
// independent buffer for the writer only.
func (l *IntList) Copy() *IntList {
	l.data.refs++
	return &IntList{data: l.data}
}

// ToArrayView returns a read-only view over the first Len() elements of the
// current buffer.
func (l *IntList) ToArrayView() ArrayView {
	return ArrayView{values: l.data.values[:l.data.size]}
}

// Release decrements the buffer's reference count, if positive. Releasing
// more times than the handle was copied is a no-op; the count never goes
// negative. A released handle must not be used again by its owner, though
// other handles sharing the buffer remain valid.
func (l *IntList) Release() {
	if l.data.refs > 0 {
		l.data.refs--
	}
}

// SizeInBytes returns the estimated memory footprint of this handle.
// Over-counting is acceptable, but shared buffers must not be double
// counted: the backing array is included only when uniquely owned.
func (l *IntList) SizeInBytes() int64 {
	var arrayBytes int64
	if l.data.refs == 1 {
		arrayBytes = int64(len(l.data.values)) * bytesPerInt
	}
	return intListInstanceSize + arrayBytes
}

// ensureUnique materializes an independent backing buffer if this handle
// shares storage with others (refs > 1). Only the logical prefix is copied,
// never the full capacity. Every mutating entry point must call this before
// touching the buffer.
func (l *IntList) ensureUnique() {
	if l.data.refs > 1 {
		l.data.refs--
		values := make([]int, l.data.size)
		copy(values, l.data.values[:l.data.size])
		l.data = &refCountedIntArray{
			values: values,
			size:   l.data.size,
			refs:   1,
		}
	}
}

// ensureCapacity grows the backing buffer so it can address index, doubling
// its length or growing to exactly index+1, whichever is larger. Does not
// change the logical size. Callers invoke ensureUnique first so growth never
// happens on a shared buffer.
func (l *IntList) ensureCapacity(index int) {
	if index >= len(l.data.values) {
		newCap := 2 * len(l.data.values)
		if index+1 > newCap {
			newCap = index + 1
		}
		grown := make([]int, newCap)
		copy(grown, l.data.values)
		l.data.values = grown
	}
}
