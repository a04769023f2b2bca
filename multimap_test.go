package rowpattern

import "testing"

// viewValues flattens an ArrayView for comparison.
func viewValues(v ArrayView) []int {
	out := make([]int, v.Len())
	for i := range out {
		out[i] = v.Get(i)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestIntMultimap_CopySharesUntilMutation(t *testing.T) {
	m := NewIntMultimap(2, 2)
	m.Add(1, 10)

	// create child 2 that shares with parent 1
	m.Copy(1, 2)
	if got := viewValues(m.ArrayView(2)); !equalInts(got, []int{10}) {
		t.Fatalf("child view = %v, want [10]", got)
	}

	// mutate child list
	m.Add(2, 11)
	if got := viewValues(m.ArrayView(2)); !equalInts(got, []int{10, 11}) {
		t.Errorf("child view after Add = %v, want [10, 11]", got)
	}

	// parent remains intact
	if got := viewValues(m.ArrayView(1)); !equalInts(got, []int{10}) {
		t.Errorf("parent view = %v, want [10]", got)
	}
}

func TestIntMultimap_ForkIndependence(t *testing.T) {
	m := NewIntMultimap(4, 4)
	m.Add(0, 1)

	m.Copy(0, 1)
	m.Add(1, 2)

	if got := viewValues(m.ArrayView(0)); !equalInts(got, []int{1}) {
		t.Errorf("view(A) = %v, want [1]", got)
	}
	if got := viewValues(m.ArrayView(1)); !equalInts(got, []int{1, 2}) {
		t.Errorf("view(B) = %v, want [1, 2]", got)
	}
}

func TestIntMultimap_ClearResetsButKeepsCapacity(t *testing.T) {
	m := NewIntMultimap(2, 2)
	m.Add(0, 1)
	m.Add(1, 2)
	m.Clear()

	if m.ArrayView(0).Len() != 0 || m.ArrayView(1).Len() != 0 {
		t.Fatal("views not empty after Clear")
	}

	// should behave as a fresh map after clear
	m.Add(1, 3)
	if got := viewValues(m.ArrayView(1)); !equalInts(got, []int{3}) {
		t.Errorf("view(1) after Clear+Add = %v, want [3]", got)
	}
}

func TestIntMultimap_CopyFromEmptyOverExistingChild(t *testing.T) {
	m := NewIntMultimap(2, 2)
	m.Add(1, 7)  // child initially has a list
	m.Copy(0, 1) // parent key 0 is empty; copying must null out the child

	if got := m.ArrayView(1).Len(); got != 0 {
		t.Errorf("view(1).Len() = %d, want 0", got)
	}
}

func TestIntMultimap_CopyFromOutOfRangeParent(t *testing.T) {
	m := NewIntMultimap(2, 2)
	m.Add(1, 7)
	// Key 50 was never touched; it behaves like any absent parent.
	m.Copy(50, 1)

	if got := m.ArrayView(1).Len(); got != 0 {
		t.Errorf("view(1).Len() = %d, want 0", got)
	}
}

func TestIntMultimap_MultipleCopiesAndWrites(t *testing.T) {
	m := NewIntMultimap(2, 2)
	m.Add(0, 5)

	// create two children from the same parent
	m.Copy(0, 1)
	m.Copy(0, 2)

	// write to child 1
	m.Add(1, 6)
	if got := viewValues(m.ArrayView(1)); !equalInts(got, []int{5, 6}) {
		t.Errorf("view(1) = %v, want [5, 6]", got)
	}

	// parent remains size 1
	if got := m.ArrayView(0).Len(); got != 1 {
		t.Errorf("view(0).Len() = %d, want 1", got)
	}

	// write to child 2 independently
	m.Add(2, 7)
	if got := viewValues(m.ArrayView(2)); !equalInts(got, []int{5, 7}) {
		t.Errorf("view(2) = %v, want [5, 7]", got)
	}
}

func TestIntMultimap_ClearDoesNotAffectSharedBacking(t *testing.T) {
	// Hierarchy: key 0 as parent, keys 1 and 2 copied from the parent.
	m := NewIntMultimap(2, 2)
	m.Add(0, 1)
	m.Copy(0, 1)
	m.Copy(0, 2)

	// Mutate child 1 so it COWs away from the parent.
	m.Add(1, 9)
	if got := m.ArrayView(1).Len(); got != 2 {
		t.Fatalf("view(1).Len() = %d, want 2", got)
	}

	// Clear releases child lists but must not mutate any shared backing.
	m.Clear()

	// Reconstruct a child from the parent again; semantics must be intact.
	m.Add(0, 1)
	m.Copy(0, 1)
	if got := viewValues(m.ArrayView(1)); !equalInts(got, []int{1}) {
		t.Errorf("view(1) = %v, want [1]", got)
	}
}

func TestIntMultimap_CopyOverDistinctChildReplacesIt(t *testing.T) {
	m := NewIntMultimap(4, 2)
	m.Add(0, 1)
	m.Add(1, 100)
	m.Add(1, 200)

	m.Copy(0, 1)
	if got := viewValues(m.ArrayView(1)); !equalInts(got, []int{1}) {
		t.Errorf("view(1) = %v, want [1]", got)
	}
}

func TestIntMultimap_KeyArrayGrowth(t *testing.T) {
	m := NewIntMultimap(1, 1)

	m.Add(37, 1)
	m.Copy(37, 99)
	m.Add(99, 2)

	if got := viewValues(m.ArrayView(37)); !equalInts(got, []int{1}) {
		t.Errorf("view(37) = %v, want [1]", got)
	}
	if got := viewValues(m.ArrayView(99)); !equalInts(got, []int{1, 2}) {
		t.Errorf("view(99) = %v, want [1, 2]", got)
	}
}

func TestIntMultimap_ViewOfAbsentKey(t *testing.T) {
	m := NewIntMultimap(2, 2)
	m.Add(0, 1)

	tests := []struct {
		name string
		key  int
	}{
		{"never used", 1},
		{"beyond key array", 1000},
		{"negative", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.ArrayView(tt.key).Len(); got != 0 {
				t.Errorf("ArrayView(%d).Len() = %d, want 0", tt.key, got)
			}
		})
	}
}

func TestIntMultimap_ReleaseIsIdempotent(t *testing.T) {
	m := NewIntMultimap(2, 2)
	m.Add(0, 1)

	m.Release(0)
	m.Release(0) // speculative cleanup re-release
	m.Release(7) // never existed

	if got := m.ArrayView(0).Len(); got != 0 {
		t.Errorf("view(0).Len() = %d, want 0", got)
	}

	// key stays usable after release
	m.Add(0, 2)
	if got := viewValues(m.ArrayView(0)); !equalInts(got, []int{2}) {
		t.Errorf("view(0) = %v, want [2]", got)
	}
}

func TestIntMultimap_SizeInBytesNoDoubleCounting(t *testing.T) {
	m := NewIntMultimap(4, 1024)
	m.Add(0, 1)
	baseline := m.SizeInBytes()

	// Forking shares the 1024-slot buffer; the increase must stay in the
	// order of a list header, nowhere near another full buffer.
	m.Copy(0, 1)
	grownBy := m.SizeInBytes() - baseline
	if grownBy >= 1024*bytesPerInt {
		t.Errorf("fork grew estimate by %d bytes, shared buffer was double-counted", grownBy)
	}
	if m.SizeInBytes() < 0 {
		t.Error("negative size estimate")
	}
}

func TestIntMultimap_SizeInBytesLifecycle(t *testing.T) {
	m := NewIntMultimap(4, 8)
	empty := m.SizeInBytes()

	m.Add(0, 1)
	withList := m.SizeInBytes()
	if withList <= empty {
		t.Errorf("estimate did not grow on Add: %d -> %d", empty, withList)
	}

	m.Release(0)
	if got := m.SizeInBytes(); got != empty {
		t.Errorf("estimate after Release = %d, want %d", got, empty)
	}

	m.Add(1, 1)
	m.Add(2, 2)
	m.Clear()
	if got := m.SizeInBytes(); got != empty {
		t.Errorf("estimate after Clear = %d, want %d", got, empty)
	}
}
