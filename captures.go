// Package rowpattern provides copy-on-write per-thread state storage for a
// backtracking row-pattern matcher (the engine behind MATCH_RECOGNIZE-style
// SQL operators).
//
// When the matcher explores alternative matches it forks a computation
// thread, duplicating all accumulated state, at every branching decision
// point (a split in a Thompson-style backtracking VM). Forking can happen
// once per input row per alternative, so eager copying of thread state is
// prohibitively expensive. This package makes the fork a reference-count
// bump:
//   - IntList: growable int sequence with refcounted shared storage; O(1)
//     logical copy, materialization deferred to the first divergent write.
//   - IntMultimap: sparse map from thread IDs to IntLists with O(1)
//     "duplicate key A into key B".
//   - Captures: the per-thread aggregate pairing capture boundaries with
//     matched labels, so a thread's state always forks as one unit.
//   - ArrayView: the read-only, zero-copy window handed back to the matcher.
//
// Basic usage:
//
//	captures := rowpattern.NewCaptures(16, 8, 16)
//
//	captures.SaveLabel(threadID, labelID)  // record a matched label
//	captures.Save(threadID, position)      // record an exclusion boundary
//	captures.Copy(threadID, forkedID)      // fork: O(1), copy-on-write
//	labels := captures.GetLabels(forkedID) // read back when finalizing
//	captures.Release(threadID)             // thread died
//
// The package is not safe for concurrent use: all state is confined to a
// single operator instance processing a single partition, which is
// inherently sequential. There are no locks because there is no contention
// by design.
package rowpattern

import "unsafe"

// Captures aggregates the per-thread state of the row pattern matcher.
//
// It holds two IntMultimaps:
//   - captures: start/end indices delimiting excluded subsequences
//   - labels: matched label IDs for each position in the input
//
// Both maps are keyed by the same thread-ID space and are only ever forked
// and released together, so a thread's captures and labels cannot drift out
// of sync across a fork. The individual maps are never exposed.
//
// Not safe for concurrent use.
type Captures struct {
	captures *IntMultimap
	labels   *IntMultimap
}

const capturesInstanceSize = int64(unsafe.Sizeof(Captures{}))

// NewCaptures creates per-thread capture state with room for
// initialCapacity thread IDs, slotCount initial capacity per capture list,
// and labelCount initial capacity per label list.
func NewCaptures(initialCapacity, slotCount, labelCount int) *Captures {
	return &Captures{
		captures: NewIntMultimap(initialCapacity, slotCount),
		labels:   NewIntMultimap(initialCapacity, labelCount),
	}
}

// Save records an exclusion/capture boundary for the given thread.
func (c *Captures) Save(threadID, value int) {
	c.captures.Add(threadID, value)
}

// SaveLabel records a matched label for the given thread.
func (c *Captures) SaveLabel(threadID, value int) {
	c.labels.Add(threadID, value)
}

// Copy forks per-thread state from parent to child. Both the capture and
// the label lists are duplicated, sharing storage with the parent until the
// first write on either side (copy-on-write).
func (c *Captures) Copy(parent, child int) {
	c.captures.Copy(parent, child)
	c.labels.Copy(parent, child)
}

// GetCaptures returns a view of the capture boundaries recorded for a
// thread, or the empty view if none were recorded.
func (c *Captures) GetCaptures(threadID int) ArrayView {
	return c.captures.ArrayView(threadID)
}

// GetLabels returns a view of the labels matched by a thread, or the empty
// view if none were recorded.
func (c *Captures) GetLabels(threadID int) ArrayView {
	return c.labels.ArrayView(threadID)
}

// Release drops per-thread state for a finished thread from both maps.
// Releasing an unknown or already-released thread ID is a no-op.
func (c *Captures) Release(threadID int) {
	c.captures.Release(threadID)
	c.labels.Release(threadID)
}

// Clear releases the state of every live thread in both maps while keeping
// the key arrays allocated, ready for the next matching attempt.
func (c *Captures) Clear() {
	c.captures.Clear()
	c.labels.Clear()
}

// SizeInBytes returns the estimated memory footprint of this structure and
// the two maps it owns. The surrounding operator polls this to enforce
// query memory limits; the estimate may slightly over-count but never
// double-counts a shared buffer.
func (c *Captures) SizeInBytes() int64 {
	return capturesInstanceSize + c.captures.SizeInBytes() + c.labels.SizeInBytes()
}
