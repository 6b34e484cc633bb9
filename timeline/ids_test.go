package timeline

import "testing"

func TestAllocatorElementIDs(t *testing.T) {
	a := NewAllocator()
	for want := FirstElementID; want < FirstElementID+5; want++ {
		if got := a.NextElementID(); got != want {
			t.Fatalf("NextElementID() = %d, want %d", got, want)
		}
	}
}

func TestAllocatorFileIDsStablePerSource(t *testing.T) {
	a := NewAllocator()

	first, fresh := a.FileIDsFor("a.mov")
	if !fresh || first.FileID != 1 || first.MasterclipID != 1 {
		t.Fatalf("first allocation = %+v fresh=%v", first, fresh)
	}
	for i := 0; i < 10; i++ {
		again, fresh := a.FileIDsFor("a.mov")
		if fresh || again != first {
			t.Fatalf("repeat lookup %d = %+v fresh=%v, want %+v", i, again, fresh, first)
		}
	}

	second, fresh := a.FileIDsFor("b.mov")
	if !fresh || second.FileID != 2 {
		t.Fatalf("second source = %+v fresh=%v", second, fresh)
	}
	if second == first {
		t.Error("distinct sources must get distinct ids")
	}

	// File allocation does not consume element ids.
	if got := a.NextElementID(); got != FirstElementID {
		t.Errorf("NextElementID() = %d after file allocations", got)
	}
}

func TestFreshAllocatorsAreIndependent(t *testing.T) {
	a, b := NewAllocator(), NewAllocator()
	a.NextElementID()
	a.FileIDsFor("x")
	if got := b.NextElementID(); got != FirstElementID {
		t.Errorf("second allocator NextElementID() = %d", got)
	}
	if ids, _ := b.FileIDsFor("y"); ids.FileID != 1 {
		t.Errorf("second allocator FileID = %d", ids.FileID)
	}
}

func TestDissolve(t *testing.T) {
	for _, boundary := range []int{0, 7, 210, 9900, 12345} {
		for _, d := range []int{DefaultTransitionFrames, 16, 30} {
			tr := Dissolve(boundary, d)
			if tr.End-tr.Start != d {
				t.Errorf("Dissolve(%d, %d) length = %d", boundary, d, tr.End-tr.Start)
			}
			if (tr.Start+tr.End)/2 != boundary {
				t.Errorf("Dissolve(%d, %d) not centered: %+v", boundary, d, tr)
			}
		}
	}
	tr := Dissolve(300, 15)
	if tr.Start != 293 || tr.End != 308 {
		t.Errorf("Dissolve(300, 15) = %+v, want 293..308", tr)
	}
}
