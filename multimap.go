package rowpattern

import (
	"unsafe"

	"github.com/coregx/rowpattern/internal/conv"
	"github.com/coregx/rowpattern/internal/sparse"
)

// IntMultimap is a sparse multimap from small non-negative integer keys
// (matcher thread IDs) to lists of ints, with copy-on-write semantics for
// the values.
//
//   - Values are IntList instances that share storage on Copy and
//     materialize on first write.
//   - Copy(parent, child) shares the parent's list with the child. Any
//     subsequent mutation of either causes an independent copy for the
//     mutating side only.
//   - Clear releases all lists and resets accounting without reallocating
//     the key array, because thread IDs are reused across matching attempts
//     on the same partition.
//
// Key presence is additionally tracked in a sparse set so that Clear costs
// O(live keys) rather than O(key capacity).
//
// Not safe for concurrent use.
type IntMultimap struct {
	values       []*IntList
	listCapacity int
	valuesSize   int64
	live         *sparse.Set
}

const intMultimapInstanceSize = int64(unsafe.Sizeof(IntMultimap{}))

// NewIntMultimap creates a multimap with room for keys in
// [0, capacity) and per-list initial capacity listCapacity. The key space
// grows automatically when larger keys are used.
func NewIntMultimap(capacity, listCapacity int) *IntMultimap {
	return &IntMultimap{
		values:       make([]*IntList, capacity),
		listCapacity: listCapacity,
		live:         sparse.NewSet(capacity),
	}
}

// Add appends value to the list at key, creating the list on demand.
// Adjusts memory accounting by the delta the write caused in the affected
// list (list header, materialization, and any capacity growth).
func (m *IntMultimap) Add(key, value int) {
	m.ensureCapacity(key)
	list := m.values[key]
	var sizeBefore int64
	if list == nil {
		list = NewIntList(m.listCapacity)
		m.values[key] = list
		m.live.Insert(conv.IntToUint32(key))
	} else {
		sizeBefore = list.SizeInBytes()
	}
	list.Add(value)
	m.valuesSize += list.SizeInBytes() - sizeBefore
}

// Copy makes the list at child a COW duplicate of the list at parent, in
// O(1). If parent has no list, the child's list (if any) is released and
// the child key becomes absent. If the child already held a distinct list,
// that list is released before the new reference is installed.
func (m *IntMultimap) Copy(parent, child int) {
	m.ensureCapacity(child)
	var parentList *IntList
	if parent >= 0 && parent < len(m.values) {
		parentList = m.values[parent]
	}
	old := m.values[child]

	if parentList == nil {
		if old != nil {
			m.valuesSize -= old.SizeInBytes()
			old.Release()
			m.values[child] = nil
			m.live.Remove(conv.IntToUint32(child))
		}
		return
	}

	var sizeBefore int64
	if old != nil {
		sizeBefore = old.SizeInBytes()
		old.Release()
	} else {
		m.live.Insert(conv.IntToUint32(child))
	}
	m.values[child] = parentList.Copy()
	m.valuesSize += m.values[child].SizeInBytes() - sizeBefore
}

// ArrayView returns an immutable view of the list at key. If the key is
// absent or outside the current key range, the empty view is returned.
func (m *IntMultimap) ArrayView(key int) ArrayView {
	if key < 0 || key >= len(m.values) || m.values[key] == nil {
		return EmptyArrayView
	}
	return m.values[key].ToArrayView()
}

// Release releases the list at key and marks the key absent. Memory
// accounting is updated by subtracting the list's contribution. Releasing
// an absent key is a no-op.
func (m *IntMultimap) Release(key int) {
	if key >= 0 && key < len(m.values) && m.values[key] != nil {
		m.valuesSize -= m.values[key].SizeInBytes()
		m.values[key].Release()
		m.values[key] = nil
		m.live.Remove(conv.IntToUint32(key))
	}
}

// Clear releases every live key's list and marks all keys absent, without
// shrinking the key array. Lists are released (not just dropped) to keep
// copy-on-write reference counts correct for any shared backing data.
func (m *IntMultimap) Clear() {
	for _, key := range m.live.Values() {
		m.values[key].Release()
		m.values[key] = nil
	}
	m.live.Clear()
	m.valuesSize = 0
}

// SizeInBytes returns the estimated memory footprint: instance header, key
// array, live-key index, and the running total of the stored lists' unique
// sizes.
func (m *IntMultimap) SizeInBytes() int64 {
	return intMultimapInstanceSize +
		int64(len(m.values))*bytesPerPtr +
		int64(m.live.MemoryUsage()) +
		m.valuesSize
}

// ensureCapacity grows the key array so it can address key, doubling its
// length or growing to exactly key+1, whichever is larger.
func (m *IntMultimap) ensureCapacity(key int) {
	if key >= len(m.values) {
		newLen := 2 * len(m.values)
		if key+1 > newLen {
			newLen = key + 1
		}
		grown := make([]*IntList, newLen)
		copy(grown, m.values)
		m.values = grown
	}
}
